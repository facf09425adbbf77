package google

import (
	"errors"
	"net/http"
	"testing"

	ai "github.com/spetersoncode/relay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestConvertMessages(t *testing.T) {
	contents, system := convertMessages([]ai.Message{
		{Role: ai.RoleSystem, Content: "sys"},
		{Role: ai.RoleUser, Content: "q1"},
		{Role: ai.RoleAssistant, Content: "a1"},
		{Role: ai.RoleUser, Content: "q2"},
		{Role: ai.RoleAssistant, Content: ""},
	})

	require.NotNil(t, system)
	require.Len(t, system.Parts, 1)
	assert.Equal(t, "sys", system.Parts[0].Text)

	require.Len(t, contents, 3)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "q2", contents[2].Parts[0].Text)
}

func TestConvertMessagesWithoutSystem(t *testing.T) {
	_, system := convertMessages([]ai.Message{{Role: ai.RoleUser, Content: "q"}})
	assert.Nil(t, system)
}

func TestBuildConfigDeterministic(t *testing.T) {
	config := buildConfig(ai.ApplyOptions(ai.Deterministic()...))

	require.NotNil(t, config.Temperature)
	require.NotNil(t, config.TopP)
	require.NotNil(t, config.Seed)
	assert.Equal(t, float32(0), *config.Temperature)
	assert.Equal(t, float32(0), *config.TopP)
	assert.Equal(t, int32(0), *config.Seed)
	assert.Zero(t, config.MaxOutputTokens)
}

func TestBuildConfigEmpty(t *testing.T) {
	config := buildConfig(ai.ApplyOptions())
	assert.Nil(t, config.Temperature)
	assert.Nil(t, config.TopP)
	assert.Nil(t, config.Seed)
}

func TestWrapError(t *testing.T) {
	err := wrapError(genai.APIError{Code: http.StatusServiceUnavailable, Message: "overloaded"})
	assert.Equal(t, ai.ErrorTransient, ai.CategoryOf(err))
	assert.Equal(t, http.StatusServiceUnavailable, ai.StatusCodeOf(err))

	plain := errors.New("dial tcp: connection refused")
	assert.Same(t, plain, wrapError(plain))
	assert.NoError(t, wrapError(nil))
}
