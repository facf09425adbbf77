// Command ask sends one message to an A2A agent and prints the artifacts
// it answers with. Pass --context-id to continue an earlier conversation.
//
// Usage:
//
//	go run ./cmd/ask --url http://127.0.0.1:9009 "What conditions does patient 42 have?"
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2aclient"
	"github.com/a2aproject/a2a-go/a2aclient/agentcard"
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/spetersoncode/relay/executor"
)

// CLI holds the client configuration.
type CLI struct {
	URL       string        `help:"Agent base URL." default:"http://127.0.0.1:9009" env:"PURPLE_URL"`
	ContextID string        `name:"context-id" short:"c" help:"Context to continue."`
	Timeout   time.Duration `help:"Overall request timeout." default:"2m"`
	Message   string        `arg:"" help:"Message text to send."`
}

func main() {
	_ = godotenv.Load() // Load .env file if present

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("ask"),
		kong.Description("Send one message to an A2A agent."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

// Run resolves the agent card, sends the message and prints the result.
func (c *CLI) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	card, err := agentcard.DefaultResolver.Resolve(ctx, c.URL)
	if err != nil {
		return fmt.Errorf("failed to resolve agent card: %w", err)
	}

	client, err := a2aclient.NewFromCard(ctx, card)
	if err != nil {
		return fmt.Errorf("failed to create a2a client: %w", err)
	}
	defer client.Destroy()

	msg := a2a.NewMessage(a2a.MessageRoleUser, a2a.TextPart{Text: c.Message})
	if c.ContextID != "" {
		msg.ContextID = c.ContextID
	}

	result, err := client.SendMessage(ctx, &a2a.MessageSendParams{Message: msg})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return printResult(os.Stdout, result)
}

// printResult writes a task's state and artifacts, or a direct reply message.
func printResult(w io.Writer, result a2a.SendMessageResult) error {
	switch r := result.(type) {
	case *a2a.Task:
		printTask(w, r)
		return nil
	case *a2a.Message:
		fmt.Fprintf(w, "context: %s\n%s\n", r.ContextID, executor.ExtractText(r))
		return nil
	default:
		return fmt.Errorf("unexpected result type %T", result)
	}
}

func printTask(w io.Writer, task *a2a.Task) {
	fmt.Fprintf(w, "context: %s\ntask:    %s\nstate:   %s\n", task.ContextID, task.ID, task.Status.State)
	for _, artifact := range task.Artifacts {
		text := executor.ExtractText(&a2a.Message{Parts: artifact.Parts})
		fmt.Fprintf(w, "\n[%s]\n%s\n", artifact.Name, text)
	}
}
