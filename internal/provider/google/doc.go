// Package google provides a Google Gemini client implementing
// [relay.ChatProvider] over the google.golang.org/genai SDK.
//
// System turns are sent as the request's SystemInstruction; assistant turns
// use the "model" role.
package google
