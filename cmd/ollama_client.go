package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	ollama "github.com/ollama/ollama/api"
)

// DefaultOllamaHost is used when no host is configured or entered.
const DefaultOllamaHost = "http://localhost:11434"

// requestTimeout bounds every outbound provider call.
const requestTimeout = 30 * time.Second

// OllamaClient defines the interface for interacting with Ollama.
// This allows us to mock the client for testing purposes.
type OllamaClient interface {
	Chat(ctx context.Context, req *ollama.ChatRequest, fn func(ollama.ChatResponse) error) error
	List(ctx context.Context) (*ollama.ListResponse, error)
}

// RealOllamaClient is a wrapper around the actual Ollama client that implements OllamaClient.
type RealOllamaClient struct {
	client *ollama.Client
}

// NewRealOllamaClient creates a client for the given base URL
// (e.g. "http://localhost:11434").
func NewRealOllamaClient(host string) (*RealOllamaClient, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama host %q: %w", host, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid Ollama host %q: expected a URL like %s", host, DefaultOllamaHost)
	}
	httpClient := &http.Client{Timeout: requestTimeout}
	return &RealOllamaClient{client: ollama.NewClient(base, httpClient)}, nil
}

// Chat implements OllamaClient.Chat
func (r *RealOllamaClient) Chat(ctx context.Context, req *ollama.ChatRequest, fn func(ollama.ChatResponse) error) error {
	return r.client.Chat(ctx, req, fn)
}

// List implements OllamaClient.List
func (r *RealOllamaClient) List(ctx context.Context) (*ollama.ListResponse, error) {
	return r.client.List(ctx)
}
