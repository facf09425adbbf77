// Package model defines the chat model identifiers understood by the relay.
//
// Identifiers use the "provider/name" form, for example "openai/gpt-4o" or
// "anthropic/claude-sonnet-4-5". The provider prefix selects which vendor SDK
// carries the completion call:
//
//	m, err := model.Parse("openai/gpt-4o")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(m.Provider(), m.String()) // openai gpt-4o
//
// A bare name without a prefix is treated as an OpenAI model.
package model
