package google

import (
	"errors"

	ai "github.com/spetersoncode/relay"
	"google.golang.org/genai"
)

// wrapError wraps a Google GenAI error with relay error categorization.
// genai.APIError does not expose headers, so Retry-After is not available.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	return ai.NewStatusError("google request failed", apiErr.Code, 0, err)
}
