// neo forwards a single prompt to a locally-hosted Ollama server or to the
// OpenAI API, selected by persisted configuration.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/sebrandon1/neo/cmd"
)

func main() {
	// Load .env if present; real environment variables still win.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
