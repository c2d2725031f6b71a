package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// maxMenuAttempts bounds the re-prompt loop on invalid menu input.
const maxMenuAttempts = 10

// ModelPicker chooses an index into a non-empty model list. The interactive
// implementation shows a numbered menu; headless callers inject their own.
type ModelPicker func(ctx context.Context, models []string) (int, error)

// EnsureModel returns the configured model name, running the selection menu
// and persisting the choice when none is configured yet.
func EnsureModel(ctx context.Context, store *ConfigStore, provider Provider, pick ModelPicker) (string, error) {
	model, err := store.Resolve(ctx, KeyModel, ResolveOpts{})
	if err != nil {
		return "", err
	}
	if model != "" {
		return model, nil
	}
	return ChooseModel(ctx, store, provider, pick)
}

// ChooseModel lists the provider's models, has the user pick one, and
// persists the choice as NEO_MODEL. A failed listing is reported and treated
// as an empty list; an empty list is a setup failure.
func ChooseModel(ctx context.Context, store *ConfigStore, provider Provider, pick ModelPicker) (string, error) {
	models, err := provider.ListModels(ctx)
	if err != nil {
		log.Warn().Err(err).Str("provider", provider.Name()).Msg("model listing failed")
		models = nil
	}
	if len(models) == 0 {
		return "", fmt.Errorf("no models available from %s", provider.Name())
	}

	idx, err := pick(ctx, models)
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(models) {
		return "", fmt.Errorf("model selection out of range")
	}

	model := models[idx]
	if err := store.Persist(KeyModel, model); err != nil {
		return "", err
	}
	return model, nil
}

// NewMenuPicker returns an interactive ModelPicker: a 1-indexed menu written
// to out, re-prompting on invalid input a bounded number of times.
func NewMenuPicker(prompter Prompter, out io.Writer) ModelPicker {
	return func(ctx context.Context, models []string) (int, error) {
		fmt.Fprintln(out, "Available models:")
		for i, m := range models {
			fmt.Fprintf(out, "  %d. %s\n", i+1, m)
		}
		for attempt := 0; attempt < maxMenuAttempts; attempt++ {
			answer, err := prompter.Input(ctx, fmt.Sprintf("Select a model (1-%d)", len(models)))
			if err != nil {
				return 0, fmt.Errorf("input cancelled: %w", err)
			}
			idx, err := strconv.Atoi(strings.TrimSpace(answer))
			if err != nil || idx < 1 || idx > len(models) {
				fmt.Fprintf(out, "Please enter a number between 1 and %d.\n", len(models))
				continue
			}
			return idx - 1, nil
		}
		return 0, fmt.Errorf("no valid selection after %d attempts", maxMenuAttempts)
	}
}
