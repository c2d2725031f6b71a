package cmd

import (
	"context"
	"strings"

	ollama "github.com/ollama/ollama/api"
	"github.com/rs/zerolog/log"
)

// OllamaProvider implements Provider against a locally-hosted Ollama server.
type OllamaProvider struct {
	client OllamaClient
}

// NewOllamaProvider creates an OllamaProvider for the given host URL.
func NewOllamaProvider(host string) (*OllamaProvider, error) {
	client, err := NewRealOllamaClient(host)
	if err != nil {
		return nil, err
	}
	return &OllamaProvider{client: client}, nil
}

// NewOllamaProviderFromClient creates an OllamaProvider from an existing OllamaClient.
// Used for testing with MockOllamaClient.
func NewOllamaProviderFromClient(client OllamaClient) *OllamaProvider {
	return &OllamaProvider{client: client}
}

// Name implements Provider.Name.
func (o *OllamaProvider) Name() string {
	return "ollama"
}

// ListModels implements Provider.ListModels via the Ollama tags endpoint.
func (o *OllamaProvider) ListModels(ctx context.Context) ([]string, error) {
	resp, err := o.client.List(ctx)
	if err != nil {
		return nil, &ProviderError{Provider: o.Name(), Err: err}
	}
	models := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		models = append(models, m.Name)
	}
	return models, nil
}

// Chat implements Provider.Chat. The request goes to {host}/api/chat with
// streaming disabled, so the callback fires exactly once with the full reply.
func (o *OllamaProvider) Chat(ctx context.Context, model string, messages []Message) (string, error) {
	msgs := make([]ollama.Message, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, ollama.Message{Role: m.Role, Content: m.Content})
	}

	stream := false
	req := &ollama.ChatRequest{
		Model:    model,
		Messages: msgs,
		Stream:   &stream,
	}
	log.Debug().Str("provider", o.Name()).Str("model", model).Int("messages", len(msgs)).Msg("chat request")

	var reply string
	err := o.client.Chat(ctx, req, func(resp ollama.ChatResponse) error {
		reply += resp.Message.Content
		return nil
	})
	if err != nil {
		return "", &ProviderError{Provider: o.Name(), Err: err}
	}
	return strings.TrimSpace(reply), nil
}
