// Package api implements the client for the Gemini generateContent REST API.
package api

import (
	"fmt"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/ragu/kaiwa/internal/models"
)

// Client talks to the generateContent endpoint. The API key travels in a
// request header, never in the URL.
type Client struct {
	httpClient tls_client.HttpClient
	apiKey     string
	baseURL    string
	model      string
	language   string
	timeout    time.Duration
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithModel sets the model for the client
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = models.ResolveModel(model)
	}
}

// WithBaseURL overrides the API base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTargetLanguage sets the reply language used in the system instruction
func WithTargetLanguage(language string) ClientOption {
	return func(c *Client) {
		c.language = language
	}
}

// WithTimeout sets an overall request timeout. Zero keeps the default.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient injects a pre-built HTTP client, mainly for tests.
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Client
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := &Client{
		apiKey:   apiKey,
		baseURL:  models.DefaultBaseURL,
		model:    models.DefaultModel,
		language: models.DefaultLanguage,
		timeout:  300 * time.Second,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout.Seconds())),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Model returns the client's model name
func (c *Client) Model() string {
	return c.model
}

// Language returns the target reply language
func (c *Client) Language() string {
	return c.language
}
