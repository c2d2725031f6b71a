package cmd

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"
)

// OpenAIProvider implements Provider using the OpenAI SDK.
type OpenAIProvider struct {
	client openai.Client
}

// NewOpenAIProvider creates an OpenAIProvider with the given API key. Extra
// request options (e.g. a base URL override) are appended after the defaults,
// which tests use to point the client at a local server.
func NewOpenAIProvider(apiKey string, opts ...option.RequestOption) *OpenAIProvider {
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: requestTimeout}),
		// A failed call is rendered as the reply, never retried.
		option.WithMaxRetries(0),
	}
	options = append(options, opts...)
	return &OpenAIProvider{client: openai.NewClient(options...)}
}

// Name implements Provider.Name.
func (o *OpenAIProvider) Name() string {
	return "openai"
}

// ListModels implements Provider.ListModels against the account's model
// catalog, keeping only chat-capable identifiers (those containing "gpt").
func (o *OpenAIProvider) ListModels(ctx context.Context) ([]string, error) {
	page, err := o.client.Models.List(ctx)
	if err != nil {
		return nil, &ProviderError{Provider: o.Name(), Err: err}
	}
	var models []string
	for _, m := range page.Data {
		if strings.Contains(m.ID, "gpt") {
			models = append(models, m.ID)
		}
	}
	return models, nil
}

// Chat implements Provider.Chat via the chat completions endpoint.
func (o *OpenAIProvider) Chat(ctx context.Context, model string, messages []Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
	}
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}
	log.Debug().Str("provider", o.Name()).Str("model", model).Int("messages", len(params.Messages)).Msg("chat request")

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", &ProviderError{Provider: o.Name(), Err: err}
	}
	if len(completion.Choices) == 0 {
		return "", &ProviderError{Provider: o.Name(), Err: errors.New("response contained no choices")}
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
