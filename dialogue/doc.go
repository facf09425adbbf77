// Package dialogue holds per-context conversation state and the engine that
// mediates one completion round-trip per inbound user turn.
//
// A [Conversation] is an append-only log seeded with exactly one system turn.
// An [Engine] owns one Conversation. Each call to [Engine.Respond] appends the
// user turn, asks the provider once for a completion over the whole log, and
// on success appends the assistant turn. The outcome is reported as an
// [Artifact] named "Response" or "Error"; failures never add an assistant
// turn and never expose provider error text.
//
//	engine := dialogue.New(contextID, provider)
//	artifact := engine.Respond(ctx, "Which medications is patient 42 on?")
//	if artifact.OK() {
//	    fmt.Println(artifact.Text())
//	}
package dialogue
