package dialogue

import (
	"context"
	"errors"
	"fmt"

	ai "github.com/spetersoncode/relay"
)

// ErrorKind classifies a failed completion.
type ErrorKind string

const (
	// KindProvider covers transport, auth, rate-limit and request errors.
	KindProvider ErrorKind = "provider"
	// KindNoChoices means the provider answered without any choice.
	KindNoChoices ErrorKind = "no_choices"
	// KindEmptyContent means the first choice had no text.
	KindEmptyContent ErrorKind = "empty_content"
	// KindTimeout means the call outlived its deadline.
	KindTimeout ErrorKind = "timeout"
)

// CompletionError is the failure half of a completion result. Category and
// Status are copied from a categorized provider error and are empty otherwise.
type CompletionError struct {
	Kind     ErrorKind
	Category ai.ErrorCategory
	Status   int
	Err      error
}

func (e *CompletionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("completion failed: %s", e.Kind)
	}
	return fmt.Sprintf("completion failed: %s: %v", e.Kind, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// classify maps a provider error onto a CompletionError.
func classify(err error) *CompletionError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &CompletionError{Kind: KindTimeout, Err: err}
	case errors.Is(err, ai.ErrNoChoices):
		return &CompletionError{Kind: KindNoChoices, Err: err}
	case errors.Is(err, ai.ErrEmptyContent):
		return &CompletionError{Kind: KindEmptyContent, Err: err}
	default:
		return &CompletionError{
			Kind:     KindProvider,
			Category: ai.CategoryOf(err),
			Status:   ai.StatusCodeOf(err),
			Err:      err,
		}
	}
}
