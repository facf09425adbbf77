package dialogue

import (
	"errors"
	"fmt"
	"sync"

	ai "github.com/spetersoncode/relay"
)

// ErrSystemTurn is returned when a system turn is appended after creation.
var ErrSystemTurn = errors.New("dialogue: system turn is set only at creation")

// Conversation is the ordered turn log for one context.
// turns[0] is always the system turn.
type Conversation struct {
	contextID string

	mu    sync.RWMutex
	turns []ai.Message
}

// NewConversation creates a conversation holding only the system turn.
func NewConversation(contextID, systemPrompt string) *Conversation {
	return &Conversation{
		contextID: contextID,
		turns:     []ai.Message{{Role: ai.RoleSystem, Content: systemPrompt}},
	}
}

// ContextID returns the identifier of the context this conversation belongs to.
func (c *Conversation) ContextID() string {
	return c.contextID
}

// Append adds a user or assistant turn.
func (c *Conversation) Append(turn ai.Message) error {
	if !turn.Role.Valid() {
		return fmt.Errorf("dialogue: invalid role %q", turn.Role)
	}
	if turn.Role == ai.RoleSystem {
		return ErrSystemTurn
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, turn)
	return nil
}

// Turns returns a copy of all turns.
func (c *Conversation) Turns() []ai.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]ai.Message, len(c.turns))
	copy(result, c.turns)
	return result
}

// Len returns the number of turns, including the system turn.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.turns)
}
