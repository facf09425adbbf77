package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	ai "github.com/spetersoncode/relay"
	"github.com/spetersoncode/relay/internal/provider/anthropic"
	"github.com/spetersoncode/relay/internal/provider/google"
	"github.com/spetersoncode/relay/internal/provider/openai"
)

// APIKeys holds API keys for different providers.
// Only the key for the configured model's provider is required.
type APIKeys struct {
	Anthropic string
	OpenAI    string
	Google    string
}

// BaseURLs overrides vendor endpoints. Empty fields use the SDK defaults.
type BaseURLs struct {
	Anthropic string
	OpenAI    string
	Google    string
}

// Config holds configuration for creating a client.
type Config struct {
	// APIKeys contains authentication keys for each provider.
	APIKeys APIKeys

	// Model is used for every request that does not name its own.
	Model ai.Model

	// BaseURLs optionally points providers at compatible endpoints.
	BaseURLs BaseURLs
}

// ErrMissingAPIKey is returned when a model is used but no API key
// is configured for that model's provider.
type ErrMissingAPIKey struct {
	Provider string
	Model    string
}

func (e *ErrMissingAPIKey) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("no API key configured for %s (required by model %q)", e.Provider, e.Model)
	}
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

// ErrNoModel is returned when no model is specified and no default is configured.
var ErrNoModel = errors.New("no model specified: set client.Config Model or use relay.WithModel()")

// ErrUnsupportedProvider is returned for models whose provider has no backend.
type ErrUnsupportedProvider struct {
	Provider ai.Provider
}

func (e *ErrUnsupportedProvider) Error() string {
	return fmt.Sprintf("unsupported provider: %s", e.Provider)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultMaxTokens sets the default max tokens for chat requests.
// Per-request options override this default.
func WithDefaultMaxTokens(n int) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithMaxTokens(n))
	}
}

// Client routes chat requests to the vendor of its configured model.
// Provider clients are lazily initialized when first needed.
type Client struct {
	apiKeys         APIKeys
	baseURLs        BaseURLs
	model           ai.Model
	defaultChatOpts []ai.Option

	// Lazy-initialized providers (protected by mutex)
	mu              sync.RWMutex
	anthropicClient *anthropic.Client
	openaiClient    *openai.Client
	googleClient    *google.Client
	googleInitErr   error
}

// New creates a client with the given configuration.
func New(cfg Config, opts ...ClientOption) *Client {
	c := &Client{
		apiKeys:  cfg.APIKeys,
		baseURLs: cfg.BaseURLs,
		model:    cfg.Model,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the configured default model, or nil.
func (c *Client) Model() ai.Model {
	return c.model
}

// Check verifies that a provider backend can be built for the configured
// model without making a request.
func (c *Client) Check(ctx context.Context) error {
	if c.model == nil {
		return ErrNoModel
	}
	_, err := c.getChatProvider(ctx, c.model)
	return err
}

// getAnthropicClient returns the Anthropic client, initializing it if needed.
func (c *Client) getAnthropicClient(model ai.Model) (*anthropic.Client, error) {
	c.mu.RLock()
	if c.anthropicClient != nil {
		defer c.mu.RUnlock()
		return c.anthropicClient, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.anthropicClient != nil {
		return c.anthropicClient, nil
	}

	if c.apiKeys.Anthropic == "" {
		return nil, &ErrMissingAPIKey{Provider: "anthropic", Model: model.String()}
	}

	opts := []anthropic.ClientOption{anthropic.WithModel(model.String())}
	if c.baseURLs.Anthropic != "" {
		opts = append(opts, anthropic.WithBaseURL(c.baseURLs.Anthropic))
	}
	c.anthropicClient = anthropic.New(c.apiKeys.Anthropic, opts...)
	return c.anthropicClient, nil
}

// getOpenAIClient returns the OpenAI client, initializing it if needed.
func (c *Client) getOpenAIClient(model ai.Model) (*openai.Client, error) {
	c.mu.RLock()
	if c.openaiClient != nil {
		defer c.mu.RUnlock()
		return c.openaiClient, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.openaiClient != nil {
		return c.openaiClient, nil
	}

	if c.apiKeys.OpenAI == "" {
		return nil, &ErrMissingAPIKey{Provider: "openai", Model: model.String()}
	}

	opts := []openai.ClientOption{openai.WithModel(model.String())}
	if c.baseURLs.OpenAI != "" {
		opts = append(opts, openai.WithBaseURL(c.baseURLs.OpenAI))
	}
	c.openaiClient = openai.New(c.apiKeys.OpenAI, opts...)
	return c.openaiClient, nil
}

// getGoogleClient returns the Google client, initializing it if needed.
func (c *Client) getGoogleClient(ctx context.Context, model ai.Model) (*google.Client, error) {
	c.mu.RLock()
	if c.googleClient != nil {
		defer c.mu.RUnlock()
		return c.googleClient, nil
	}
	if c.googleInitErr != nil {
		defer c.mu.RUnlock()
		return nil, c.googleInitErr
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.googleClient != nil {
		return c.googleClient, nil
	}
	if c.googleInitErr != nil {
		return nil, c.googleInitErr
	}

	if c.apiKeys.Google == "" {
		return nil, &ErrMissingAPIKey{Provider: "google", Model: model.String()}
	}

	opts := []google.ClientOption{google.WithModel(model.String())}
	if c.baseURLs.Google != "" {
		opts = append(opts, google.WithBaseURL(c.baseURLs.Google))
	}
	client, err := google.New(ctx, c.apiKeys.Google, opts...)
	if err != nil {
		c.googleInitErr = fmt.Errorf("failed to initialize Google client: %w", err)
		return nil, c.googleInitErr
	}

	c.googleClient = client
	return c.googleClient, nil
}

// getChatProvider returns the chat provider for the given model.
func (c *Client) getChatProvider(ctx context.Context, model ai.Model) (ai.ChatProvider, error) {
	switch provider := model.Provider(); provider {
	case ai.ProviderAnthropic:
		return c.getAnthropicClient(model)
	case ai.ProviderOpenAI:
		return c.getOpenAIClient(model)
	case ai.ProviderGoogle:
		return c.getGoogleClient(ctx, model)
	default:
		return nil, &ErrUnsupportedProvider{Provider: provider}
	}
}

// Chat sends a conversation and returns a complete response.
// The model can be specified via WithModel option, or the configured model is used.
// The request is attempted exactly once.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	// Prepend default options so per-request options override them
	opts = append(append([]ai.Option{}, c.defaultChatOpts...), opts...)
	options := ai.ApplyOptions(opts...)

	model := options.Model
	if model == nil {
		model = c.model
	}
	if model == nil {
		return nil, ErrNoModel
	}

	chatProvider, err := c.getChatProvider(ctx, model)
	if err != nil {
		return nil, err
	}
	return chatProvider.Chat(ctx, messages, opts...)
}

var _ ai.ChatProvider = (*Client)(nil)
