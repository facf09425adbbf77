// Package relay provides the shared vocabulary of the conversational relay:
// conversation turns, the single completion capability, sampling options and
// categorized provider errors.
//
// The relay receives A2A task requests, forwards the accumulated dialogue of
// the request's context to one fixed language model, and reports the model's
// answer back as a task artifact. It holds no domain knowledge of its own.
//
// # Packages
//
//   - [github.com/spetersoncode/relay/dialogue]: per-context conversation state
//     and the dialogue engine that mediates the completion call
//   - [github.com/spetersoncode/relay/executor]: the A2A task lifecycle adapter
//   - [github.com/spetersoncode/relay/client]: the fixed-model completion client
//   - [github.com/spetersoncode/relay/model]: model identifiers such as "openai/gpt-4o"
//   - [github.com/spetersoncode/relay/server]: HTTP wiring and the agent card
//
// # Basic Usage
//
// Send a conversation to the configured model:
//
//	c := client.New(client.Config{
//	    APIKeys: client.APIKeys{OpenAI: os.Getenv("OPENAI_API_KEY")},
//	    Model:   model.Default,
//	})
//
//	messages := []relay.Message{
//	    {Role: relay.RoleSystem, Content: dialogue.DefaultSystemPrompt},
//	    {Role: relay.RoleUser, Content: "Which observations exist for patient 42?"},
//	}
//
//	resp, err := c.Chat(ctx, messages, relay.Deterministic()...)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Content)
//
// # Error Handling
//
// Provider failures are returned as [*Error] values categorized as transient,
// permanent or user input. A provider that answers without any choice returns
// [ErrNoChoices]. Callers never see raw provider text across the A2A boundary;
// see the dialogue package.
package relay
