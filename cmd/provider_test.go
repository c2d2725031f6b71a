package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseOllama(t *testing.T) {
	testCases := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"True", true},
		{"false", false},
		{"", false},
		{"yes", false},
		{"1", false},
	}
	for _, tc := range testCases {
		store := testStore(t, map[string]string{KeyUseOllama: tc.value})
		got, err := UseOllama(context.Background(), store)
		assert.NoError(t, err)
		assert.Equal(t, tc.expected, got, "value %q", tc.value)
	}
}

func TestSelectProviderLocal(t *testing.T) {
	store := testStore(t, map[string]string{
		KeyUseOllama:  "true",
		KeyOllamaHost: "http://localhost:11434",
	})

	p, err := SelectProvider(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, "ollama", p.Name())
	assert.IsType(t, &OllamaProvider{}, p)
}

func TestSelectProviderRemote(t *testing.T) {
	store := testStore(t, map[string]string{KeyAPIKey: "sk-test"})

	p, err := SelectProvider(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
	assert.IsType(t, &OpenAIProvider{}, p)
}

func TestSelectProviderRemoteWithoutKey(t *testing.T) {
	store := testStore(t, nil) // no key, no prompter

	_, err := SelectProvider(context.Background(), store)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), KeyAPIKey)
}

func TestProviderByNameUnknown(t *testing.T) {
	store := testStore(t, nil)

	_, err := ProviderByName(context.Background(), store, "gemini")
	assert.Error(t, err)
}

func TestProviderByNameBadHost(t *testing.T) {
	store := testStore(t, map[string]string{KeyOllamaHost: "not a url"})

	_, err := ProviderByName(context.Background(), store, "ollama")
	assert.Error(t, err)
}
