// Command purple serves the FHIR purple agent: an A2A relay that answers
// each message with one language-model completion over the conversation
// held for its context.
//
// Configuration comes from flags, environment variables or a .env file:
//
//	PURPLE_HOST        - Bind host (default: 127.0.0.1)
//	PURPLE_PORT        - Bind port (default: 9009)
//	PURPLE_CARD_URL    - URL advertised in the agent card
//	PURPLE_MODEL       - provider/model (default: openai/gpt-4o)
//	PURPLE_TIMEOUT     - Per-completion timeout (default: none)
//	PURPLE_IDLE_TTL    - Forget idle conversations after this long (default: never)
//	PURPLE_LOG_LEVEL   - debug, info, warn, error (default: info)
//	PURPLE_LOG_FORMAT  - text or json (default: text)
//	OPENAI_API_KEY     - OpenAI API key
//	ANTHROPIC_API_KEY  - Anthropic API key
//	GOOGLE_API_KEY     - Google API key
//
// Usage:
//
//	go run ./cmd/purple --host 0.0.0.0 --port 9009 --card-url http://purple:9009/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spetersoncode/relay/client"
	"github.com/spetersoncode/relay/dialogue"
	"github.com/spetersoncode/relay/executor"
	"github.com/spetersoncode/relay/internal/metrics"
	"github.com/spetersoncode/relay/server"
)

func main() {
	_ = godotenv.Load() // Load .env file if present

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("purple"),
		kong.Description("FHIR purple agent: conversational A2A relay to a language model."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

// Run starts the server and blocks until SIGINT or SIGTERM.
func (c *CLI) Run() error {
	if err := c.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(os.Stderr, c.LogLevel, c.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := c.clientConfig()
	llm := client.New(cfg, c.clientOptions()...)
	if err := llm.Check(ctx); err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rec, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	registry := executor.NewRegistry(
		func(contextID string) *dialogue.Engine {
			return dialogue.New(contextID, llm,
				dialogue.WithTimeout(c.Timeout),
				dialogue.WithLogger(logger),
				dialogue.WithObserver(rec),
			)
		},
		executor.WithIdleTTL(c.IdleTTL),
		executor.WithSizeObserver(rec.SetEngines),
	)
	go registry.Run(ctx)

	exec := executor.New(registry,
		executor.WithLogger(logger),
		executor.WithMetrics(rec),
	)

	srvCfg := server.Config{
		Host:    c.Host,
		Port:    c.Port,
		CardURL: c.CardURL,
		Logger:  logger,
	}
	if c.Metrics {
		srvCfg.Gatherer = reg
	}

	logger.Info("starting purple agent",
		"model", cfg.Model.String(),
		"provider", cfg.Model.Provider(),
		"timeout", c.Timeout,
		"idle_ttl", c.IdleTTL,
		"max_tokens", c.MaxTokens,
	)
	return server.New(srvCfg, exec).Run(ctx)
}
