// Package openai provides an OpenAI chat completion client implementing
// [relay.ChatProvider].
//
// The client forwards the full conversation, including the system turn, to
// the Chat Completions API together with the pinned sampling options
// (temperature, top_p and seed). SDK-level retries are disabled: one failed
// attempt is reported as one failure.
package openai
