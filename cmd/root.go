package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "neo <message...>",
	Short: "Ask a question of your configured model",
	Long: `neo forwards a prompt to a locally-hosted Ollama server or to the
OpenAI API, selected by persisted configuration (~/` + ConfigFileName + `).

All arguments are joined into a single prompt:

  neo how do I list open ports on linux`,
	SilenceErrors: true,
	Args:          cobra.ArbitraryArgs,
	// Subcommands resolve settings too, so logging is configured for all of
	// them, not just the root run.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd.Context(), NewConfigStore())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := strings.TrimSpace(strings.Join(args, " "))
		if prompt == "" {
			_ = cmd.Usage()
			return errors.New("no message provided")
		}

		store := NewConfigStore()
		return runPrompt(cmd.Context(), store, nil, nil, cmd.OutOrStdout(), prompt)
	},
}

// runPrompt resolves settings, ensures a model is selected, dispatches the
// conversation, and prints the reply. A nil provider or picker gets the real
// one; tests inject both.
func runPrompt(ctx context.Context, store *ConfigStore, provider Provider, pick ModelPicker, out io.Writer, prompt string) error {
	var err error
	if provider == nil {
		provider, err = SelectProvider(ctx, store)
		if err != nil {
			return err
		}
	}
	if pick == nil {
		pick = NewMenuPicker(store.Prompter, os.Stderr)
	}

	model, err := EnsureModel(ctx, store, provider, pick)
	if err != nil {
		return err
	}

	conversation, err := buildConversation(ctx, store, prompt)
	if err != nil {
		return err
	}

	reply, err := Dispatch(ctx, provider, model, conversation)
	if err != nil {
		// Rendered into the reply; the command still exits zero.
		log.Debug().Err(err).Msg("dispatch failed")
	}
	fmt.Fprintf(out, "\n%s\n\n", reply)
	return nil
}

// buildConversation assembles the per-invocation message list: the persisted
// free-text context as a leading system message when set, then the prompt.
func buildConversation(ctx context.Context, store *ConfigStore, prompt string) ([]Message, error) {
	contextText, err := store.Resolve(ctx, KeyContext, ResolveOpts{})
	if err != nil {
		return nil, err
	}
	var messages []Message
	if contextText != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: contextText})
	}
	messages = append(messages, Message{Role: RoleUser, Content: prompt})
	return messages, nil
}

// Dispatch performs one chat round trip. A failed call is converted into a
// printable reply carrying a provider-identifying diagnostic; the underlying
// error is returned alongside so callers can still tell the difference.
func Dispatch(ctx context.Context, provider Provider, model string, messages []Message) (string, error) {
	reply, err := provider.Chat(ctx, model, messages)
	if err != nil {
		cause := err
		var perr *ProviderError
		if errors.As(err, &perr) {
			cause = perr.Err
		}
		return fmt.Sprintf("[%s] request failed: %v", provider.Name(), cause), err
	}
	return strings.TrimSpace(reply), nil
}

// Execute runs the root command. An interrupt cancels the command context,
// which aborts in-flight requests and any pending interactive prompt.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Cancelled.")
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return err
	}
	return nil
}
