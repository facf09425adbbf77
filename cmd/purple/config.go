package main

import (
	"fmt"
	"log/slog"
	"time"

	ai "github.com/spetersoncode/relay"
	"github.com/spetersoncode/relay/client"
	"github.com/spetersoncode/relay/model"
)

// minIdleTTL is the shortest idle TTL accepted for conversations.
const minIdleTTL = time.Minute

// CLI holds the server configuration. Every flag can also be set through
// its environment variable or a .env file.
type CLI struct {
	// Server
	Host    string `help:"Host to bind the server." default:"127.0.0.1" env:"PURPLE_HOST"`
	Port    int    `help:"Port to bind the server." default:"9009" env:"PURPLE_PORT"`
	CardURL string `name:"card-url" help:"URL to advertise in the agent card." env:"PURPLE_CARD_URL"`
	Metrics bool   `help:"Serve Prometheus metrics at /metrics." default:"true" negatable:"" env:"PURPLE_METRICS"`

	// Completion
	Model     string        `help:"Model identifier as provider/name." default:"openai/gpt-4o" env:"PURPLE_MODEL"`
	Timeout   time.Duration `help:"Per-completion timeout (0 disables)." default:"0s" env:"PURPLE_TIMEOUT"`
	IdleTTL   time.Duration `name:"idle-ttl" help:"Forget conversations idle this long (0 keeps them, otherwise at least 1m)." default:"0s" env:"PURPLE_IDLE_TTL"`
	MaxTokens int           `name:"max-tokens" help:"Completion token limit (0 uses the provider default)." default:"0" env:"PURPLE_MAX_TOKENS"`

	// Logging
	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info" enum:"debug,info,warn,error" env:"PURPLE_LOG_LEVEL"`
	LogFormat string `help:"Log format (text, json)." default:"text" enum:"text,json" env:"PURPLE_LOG_FORMAT"`

	// API Keys
	OpenAIKey    string `name:"openai-api-key" help:"OpenAI API key." env:"OPENAI_API_KEY"`
	AnthropicKey string `name:"anthropic-api-key" help:"Anthropic API key." env:"ANTHROPIC_API_KEY"`
	GoogleKey    string `name:"google-api-key" help:"Google API key." env:"GOOGLE_API_KEY"`

	// Endpoint overrides
	OpenAIBaseURL    string `name:"openai-base-url" help:"OpenAI-compatible API base URL." env:"OPENAI_BASE_URL"`
	AnthropicBaseURL string `name:"anthropic-base-url" help:"Anthropic API base URL." env:"ANTHROPIC_BASE_URL"`
	GoogleBaseURL    string `name:"google-base-url" help:"Gemini API base URL." env:"GOOGLE_BASE_URL"`
}

// Validate checks that required configuration is present.
func (c *CLI) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.IdleTTL < 0 {
		return fmt.Errorf("idle-ttl must not be negative")
	}
	if c.IdleTTL > 0 && c.IdleTTL < minIdleTTL {
		return fmt.Errorf("idle-ttl must be 0 or at least %s, got %s", minIdleTTL, c.IdleTTL)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max-tokens must not be negative")
	}

	m, err := model.Parse(c.Model)
	if err != nil {
		return err
	}

	switch m.Provider() {
	case ai.ProviderAnthropic:
		if c.AnthropicKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for model %s", m.Qualified())
		}
	case ai.ProviderOpenAI:
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for model %s", m.Qualified())
		}
	case ai.ProviderGoogle:
		if c.GoogleKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required for model %s", m.Qualified())
		}
	}

	return nil
}

// clientOptions returns the client options derived from the flags.
func (c *CLI) clientOptions() []client.ClientOption {
	var opts []client.ClientOption
	if c.MaxTokens > 0 {
		opts = append(opts, client.WithDefaultMaxTokens(c.MaxTokens))
	}
	return opts
}

// clientConfig builds the completion client configuration. Validate must
// have succeeded.
func (c *CLI) clientConfig() client.Config {
	return client.Config{
		APIKeys: client.APIKeys{
			Anthropic: c.AnthropicKey,
			OpenAI:    c.OpenAIKey,
			Google:    c.GoogleKey,
		},
		Model: model.MustParse(c.Model),
		BaseURLs: client.BaseURLs{
			Anthropic: c.AnthropicBaseURL,
			OpenAI:    c.OpenAIBaseURL,
			Google:    c.GoogleBaseURL,
		},
	}
}

// parseLevel converts a level name to a slog.Level.
func parseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}
