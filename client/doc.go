// Package client provides the fixed-model completion client used by the relay.
//
// The Client is configured with one model and the API keys of the vendors it
// may need. The vendor client matching the model's provider is built lazily on
// the first call. Every Chat call is a single attempt: transient failures are
// returned to the caller rather than retried.
//
//	c := client.New(client.Config{
//	    APIKeys: client.APIKeys{OpenAI: os.Getenv("OPENAI_API_KEY")},
//	    Model:   model.Default,
//	}, client.WithDefaultMaxTokens(1024))
//
//	resp, err := c.Chat(ctx, []relay.Message{
//	    {Role: relay.RoleUser, Content: "Hello!"},
//	}, relay.Deterministic()...)
package client
