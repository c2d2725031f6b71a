package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestOpenAIServer serves minimal chat-completion and model-list responses.
func newTestOpenAIServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]any{
						"role":    "assistant",
						"content": "  hello from the api \n",
					},
				},
			},
		})
	})
	mux.HandleFunc("/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"id": "gpt-4o", "object": "model"},
				{"id": "gpt-4o-mini", "object": "model"},
				{"id": "whisper-1", "object": "model"},
				{"id": "text-embedding-3-small", "object": "model"},
			},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestOpenAIChat(t *testing.T) {
	server := newTestOpenAIServer(t)
	provider := NewOpenAIProvider("sk-test", option.WithBaseURL(server.URL))

	reply, err := provider.Chat(context.Background(), "gpt-4o", []Message{
		{Role: RoleSystem, Content: "be terse"},
		{Role: RoleUser, Content: "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello from the api", reply)
}

func TestOpenAIListModelsFiltersToGPT(t *testing.T) {
	server := newTestOpenAIServer(t)
	provider := NewOpenAIProvider("sk-test", option.WithBaseURL(server.URL))

	models, err := provider.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o", "gpt-4o-mini"}, models)
}

func TestOpenAIConnectionErrorIsProviderError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close() // connections now refused

	provider := NewOpenAIProvider("sk-test", option.WithBaseURL(url))
	_, err := provider.Chat(context.Background(), "gpt-4o", []Message{{Role: RoleUser, Content: "hi"}})

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "openai", perr.Provider)
}

func TestOpenAIEmptyChoicesIsError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-test","object":"chat.completion","choices":[]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	provider := NewOpenAIProvider("sk-test", option.WithBaseURL(server.URL))
	_, err := provider.Chat(context.Background(), "gpt-4o", []Message{{Role: RoleUser, Content: "hi"}})

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "no choices")
}
