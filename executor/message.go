package executor

import (
	"strings"

	"github.com/a2aproject/a2a-go/a2a"
)

// ExtractText joins the text parts of msg with newlines. Non-text parts are ignored.
func ExtractText(msg *a2a.Message) string {
	if msg == nil {
		return ""
	}

	var texts []string
	for _, part := range msg.Parts {
		switch p := part.(type) {
		case a2a.TextPart:
			texts = append(texts, p.Text)
		case *a2a.TextPart:
			if p != nil {
				texts = append(texts, p.Text)
			}
		}
	}
	return strings.Join(texts, "\n")
}
