package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the resolved configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := NewConfigStore()
		// No prompting from info; it only reports what is already there.
		store.Prompter = nil
		return printInfo(cmd.Context(), store, cmd.OutOrStdout())
	},
}

func printInfo(ctx context.Context, store *ConfigStore, out io.Writer) error {
	useOllama, err := UseOllama(ctx, store)
	if err != nil {
		return err
	}
	providerName := "openai"
	if useOllama {
		providerName = "ollama"
	}

	host, err := store.Resolve(ctx, KeyOllamaHost, ResolveOpts{Default: DefaultOllamaHost})
	if err != nil {
		return err
	}
	apiKey, err := store.Resolve(ctx, KeyAPIKey, ResolveOpts{})
	if err != nil {
		return err
	}
	model, err := store.Resolve(ctx, KeyModel, ResolveOpts{Default: "(not set)"})
	if err != nil {
		return err
	}
	contextText, err := store.Resolve(ctx, KeyContext, ResolveOpts{Default: "(not set)"})
	if err != nil {
		return err
	}
	logLevel, err := store.Resolve(ctx, KeyLogLevel, ResolveOpts{Default: "info"})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "config file: %s\n", store.Path)
	fmt.Fprintf(out, "provider:    %s\n", providerName)
	fmt.Fprintf(out, "ollama host: %s\n", host)
	fmt.Fprintf(out, "api key:     %s\n", maskSecret(apiKey))
	fmt.Fprintf(out, "model:       %s\n", model)
	fmt.Fprintf(out, "context:     %s\n", contextText)
	fmt.Fprintf(out, "log level:   %s\n", logLevel)
	return nil
}

// maskSecret keeps a short prefix so the user can tell keys apart without
// printing the whole credential.
func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 6 {
		return "****"
	}
	return s[:4] + "****"
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
