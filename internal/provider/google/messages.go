package google

import (
	ai "github.com/spetersoncode/relay"
	"google.golang.org/genai"
)

// convertMessages maps turns onto Gemini contents. System turns are collected
// into a single instruction; nil is returned when there are none.
func convertMessages(messages []ai.Message) ([]*genai.Content, *genai.Content) {
	var contents []*genai.Content
	var system *genai.Content

	for _, msg := range messages {
		if msg.Content == "" {
			continue
		}
		part := &genai.Part{Text: msg.Content}
		switch msg.Role {
		case ai.RoleSystem:
			if system == nil {
				system = &genai.Content{}
			}
			system.Parts = append(system.Parts, part)
		case ai.RoleAssistant:
			contents = append(contents, &genai.Content{Role: "model", Parts: []*genai.Part{part}})
		default:
			contents = append(contents, &genai.Content{Role: "user", Parts: []*genai.Part{part}})
		}
	}

	return contents, system
}
