// Package anthropic provides an Anthropic Claude client implementing
// [relay.ChatProvider].
//
// System turns are sent through the Messages API system slot. The API has
// no seed parameter and Claude 4.5 models refuse temperature together with
// top_p, so temperature is forwarded and top_p only when temperature is unset.
//
//	client := anthropic.New(os.Getenv("ANTHROPIC_API_KEY"),
//	    anthropic.WithModel("claude-sonnet-4-5"))
//	resp, err := client.Chat(ctx, messages, relay.Deterministic()...)
package anthropic
