package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change persisted settings",
}

var updateUseCmd = &cobra.Command{
	Use:       "use {ollama|openai}",
	Short:     "Select which provider answers prompts",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"ollama", "openai"},
	RunE: func(cmd *cobra.Command, args []string) error {
		store := NewConfigStore()
		value := "false"
		switch args[0] {
		case "ollama":
			value = "true"
		case "openai":
		default:
			return fmt.Errorf("unknown provider %q (expected ollama or openai)", args[0])
		}
		if err := store.Persist(KeyUseOllama, value); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Now using %s.\n", args[0])
		return nil
	},
}

var updateModelCmd = &cobra.Command{
	Use:       "model {ollama|openai}",
	Short:     "Pick a model for the given provider from its catalog",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"ollama", "openai"},
	RunE: func(cmd *cobra.Command, args []string) error {
		store := NewConfigStore()
		provider, err := ProviderByName(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}
		pick := NewMenuPicker(store.Prompter, os.Stderr)
		model, err := ChooseModel(cmd.Context(), store, provider, pick)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Model set to %s.\n", model)
		return nil
	},
}

var updateContextCmd = &cobra.Command{
	Use:   "context",
	Short: "Set the free-text context sent as the system message",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := NewConfigStore()
		answer, err := store.Prompter.Input(cmd.Context(), "Context (empty to clear)")
		if err != nil {
			return fmt.Errorf("input cancelled: %w", err)
		}
		if err := store.Persist(KeyContext, answer); err != nil {
			return err
		}
		if answer == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Context cleared.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Context updated.")
		}
		return nil
	},
}

var updateLogCmd = &cobra.Command{
	Use:       "log {debug|info}",
	Short:     "Set the log level",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"debug", "info"},
	RunE: func(cmd *cobra.Command, args []string) error {
		level := args[0]
		if level != "debug" && level != "info" {
			return fmt.Errorf("unknown log level %q (expected debug or info)", level)
		}
		store := NewConfigStore()
		if err := store.Persist(KeyLogLevel, level); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Log level set to %s.\n", level)
		return nil
	},
}

func init() {
	updateCmd.AddCommand(updateUseCmd)
	updateCmd.AddCommand(updateModelCmd)
	updateCmd.AddCommand(updateContextCmd)
	updateCmd.AddCommand(updateLogCmd)
	rootCmd.AddCommand(updateCmd)
}
