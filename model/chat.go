package model

import (
	"fmt"
	"strings"

	ai "github.com/spetersoncode/relay"
)

// ChatModel represents a chat/completion model from any provider.
type ChatModel struct {
	id       string
	provider ai.Provider
}

// New creates a ChatModel for the given provider and provider-side name.
func New(provider ai.Provider, id string) ChatModel {
	return ChatModel{id: id, provider: provider}
}

// String returns the API identifier for this model.
func (m ChatModel) String() string { return m.id }

// Provider returns which provider this model belongs to.
func (m ChatModel) Provider() ai.Provider { return m.provider }

// Qualified returns the "provider/name" form of the model.
func (m ChatModel) Qualified() string {
	return m.provider.String() + "/" + m.id
}

var _ ai.Model = ChatModel{}

var (
	GPT4o          = ChatModel{id: "gpt-4o", provider: ai.ProviderOpenAI}
	GPT4oMini      = ChatModel{id: "gpt-4o-mini", provider: ai.ProviderOpenAI}
	ClaudeSonnet45 = ChatModel{id: "claude-sonnet-4-5", provider: ai.ProviderAnthropic}
	Gemini25Flash  = ChatModel{id: "gemini-2.5-flash", provider: ai.ProviderGoogle}

	// Default is the model the relay answers with unless configured otherwise.
	Default = GPT4o
)

// ErrInvalidModel is returned by Parse for identifiers it cannot route.
type ErrInvalidModel struct {
	ID     string
	Reason string
}

func (e *ErrInvalidModel) Error() string {
	return fmt.Sprintf("invalid model %q: %s", e.ID, e.Reason)
}

// Parse converts a "provider/name" identifier into a ChatModel.
// Only the first slash separates the provider, so names may contain slashes.
func Parse(id string) (ChatModel, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ChatModel{}, &ErrInvalidModel{ID: id, Reason: "empty identifier"}
	}

	prefix, name, found := strings.Cut(id, "/")
	if !found {
		return ChatModel{id: id, provider: ai.ProviderOpenAI}, nil
	}
	if prefix == "" || name == "" {
		return ChatModel{}, &ErrInvalidModel{ID: id, Reason: "expected provider/name"}
	}

	provider := ai.Provider(strings.ToLower(prefix))
	if provider == "gemini" {
		provider = ai.ProviderGoogle
	}
	if !provider.Known() {
		return ChatModel{}, &ErrInvalidModel{ID: id, Reason: fmt.Sprintf("unknown provider %q", prefix)}
	}

	return ChatModel{id: name, provider: provider}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(id string) ChatModel {
	m, err := Parse(id)
	if err != nil {
		panic(err)
	}
	return m
}
