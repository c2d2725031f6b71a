package cmd

import (
	"context"

	ollama "github.com/ollama/ollama/api"
)

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	// ProviderName is returned from Name(). Defaults to "mock".
	ProviderName string
	// Models is returned from ListModels.
	Models []string
	// ListErr, when set, makes ListModels fail.
	ListErr error
	// Reply is returned from Chat.
	Reply string
	// ChatErr, when set, makes Chat fail.
	ChatErr error

	// LastModel and LastMessages record the most recent Chat call.
	LastModel    string
	LastMessages []Message
	// ChatCalls counts Chat invocations.
	ChatCalls int
}

// Name implements Provider.Name for the mock.
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// ListModels implements Provider.ListModels for the mock.
func (m *MockProvider) ListModels(context.Context) ([]string, error) {
	if m.ListErr != nil {
		return nil, &ProviderError{Provider: m.Name(), Err: m.ListErr}
	}
	return m.Models, nil
}

// Chat implements Provider.Chat for the mock.
func (m *MockProvider) Chat(_ context.Context, model string, messages []Message) (string, error) {
	m.ChatCalls++
	m.LastModel = model
	m.LastMessages = messages
	if m.ChatErr != nil {
		return "", &ProviderError{Provider: m.Name(), Err: m.ChatErr}
	}
	return m.Reply, nil
}

// MockOllamaClient is a mock implementation of OllamaClient for testing the
// Ollama provider's request shaping.
type MockOllamaClient struct {
	// Reply is the chat response content.
	Reply string
	// AvailableModels are returned from List().
	AvailableModels []string
	// Err, when set, fails both calls.
	Err error

	// LastRequest records the most recent Chat request.
	LastRequest *ollama.ChatRequest
}

// Chat implements OllamaClient.Chat for the mock.
func (m *MockOllamaClient) Chat(_ context.Context, req *ollama.ChatRequest, fn func(ollama.ChatResponse) error) error {
	if m.Err != nil {
		return m.Err
	}
	m.LastRequest = req
	return fn(ollama.ChatResponse{
		Message: ollama.Message{
			Role:    "assistant",
			Content: m.Reply,
		},
	})
}

// List implements OllamaClient.List for the mock.
func (m *MockOllamaClient) List(context.Context) (*ollama.ListResponse, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	models := make([]ollama.ListModelResponse, len(m.AvailableModels))
	for i, name := range m.AvailableModels {
		models[i] = ollama.ListModelResponse{Name: name}
	}
	return &ollama.ListResponse{Models: models}, nil
}
