package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaChatRequestShape(t *testing.T) {
	client := &MockOllamaClient{Reply: "  the answer \n"}
	provider := NewOllamaProviderFromClient(client)

	reply, err := provider.Chat(context.Background(), "llama3.2:latest", []Message{
		{Role: RoleSystem, Content: "be terse"},
		{Role: RoleUser, Content: "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "the answer", reply)

	req := client.LastRequest
	require.NotNil(t, req)
	assert.Equal(t, "llama3.2:latest", req.Model)
	require.NotNil(t, req.Stream)
	assert.False(t, *req.Stream, "chat requests must not stream")
	require.Len(t, req.Messages, 2)
	assert.Equal(t, RoleSystem, req.Messages[0].Role)
	assert.Equal(t, "be terse", req.Messages[0].Content)
	assert.Equal(t, RoleUser, req.Messages[1].Role)
	assert.Equal(t, "hello", req.Messages[1].Content)
}

func TestOllamaChatErrorIsProviderError(t *testing.T) {
	client := &MockOllamaClient{Err: errors.New("connection refused")}
	provider := NewOllamaProviderFromClient(client)

	_, err := provider.Chat(context.Background(), "llama3.2:latest", []Message{{Role: RoleUser, Content: "hi"}})
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "ollama", perr.Provider)
}

func TestOllamaListModels(t *testing.T) {
	client := &MockOllamaClient{AvailableModels: []string{"llama3.2:latest", "mistral:7b"}}
	provider := NewOllamaProviderFromClient(client)

	models, err := provider.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3.2:latest", "mistral:7b"}, models)
}

func TestNewOllamaProviderRejectsBadHost(t *testing.T) {
	_, err := NewOllamaProvider("localhost:11434") // missing scheme
	assert.Error(t, err)

	_, err = NewOllamaProvider(DefaultOllamaHost)
	assert.NoError(t, err)
}
