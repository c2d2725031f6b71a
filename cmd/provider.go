package cmd

import (
	"context"
	"fmt"
	"strings"
)

// Message roles understood by both providers.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one role-tagged entry of the conversation sent to a provider.
type Message struct {
	Role    string
	Content string
}

// Provider defines a provider-agnostic interface for chat completions.
// Implementations are Ollama (local host) and OpenAI (remote API).
type Provider interface {
	// Name returns the provider name for display and diagnostics.
	Name() string
	// ListModels returns the model identifiers available to this provider.
	ListModels(ctx context.Context) ([]string, error)
	// Chat sends one conversation and returns the assistant's reply.
	Chat(ctx context.Context, model string, messages []Message) (string, error)
}

// ProviderError wraps a failed provider call with the provider's name so the
// rendered diagnostic identifies which backend failed.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// UseOllama reports whether the NEO_USE_OLLAMA setting selects the local
// provider. Only a case-insensitive "true" does; anything else, including an
// absent setting, selects OpenAI.
func UseOllama(ctx context.Context, store *ConfigStore) (bool, error) {
	v, err := store.Resolve(ctx, KeyUseOllama, ResolveOpts{Default: "false"})
	if err != nil {
		return false, err
	}
	return strings.EqualFold(v, "true"), nil
}

// SelectProvider resolves the provider choice and the host or credential it
// needs, prompting for whichever is missing, and returns the ready provider.
func SelectProvider(ctx context.Context, store *ConfigStore) (Provider, error) {
	useOllama, err := UseOllama(ctx, store)
	if err != nil {
		return nil, err
	}
	if useOllama {
		return ProviderByName(ctx, store, "ollama")
	}
	return ProviderByName(ctx, store, "openai")
}

// ProviderByName builds the named provider, prompting for its missing host or
// credential. The set of names is closed: "ollama" and "openai".
func ProviderByName(ctx context.Context, store *ConfigStore, name string) (Provider, error) {
	switch name {
	case "ollama":
		host, err := store.Resolve(ctx, KeyOllamaHost, ResolveOpts{
			Prompt:  "Ollama host",
			Default: DefaultOllamaHost,
		})
		if err != nil {
			return nil, err
		}
		return NewOllamaProvider(host)
	case "openai":
		apiKey, err := store.Resolve(ctx, KeyAPIKey, ResolveOpts{
			Prompt: "OpenAI API key",
			Secret: true,
		})
		if err != nil {
			return nil, err
		}
		if apiKey == "" {
			return nil, fmt.Errorf("no OpenAI API key configured; set %s and retry", KeyAPIKey)
		}
		return NewOpenAIProvider(apiKey), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (expected ollama or openai)", name)
	}
}
