package relay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testModel is a simple Model implementation for testing.
type testModel string

func (m testModel) String() string     { return string(m) }
func (m testModel) Provider() Provider { return ProviderOpenAI }

func TestApplyOptions(t *testing.T) {
	t.Run("returns empty options when no options provided", func(t *testing.T) {
		opts := ApplyOptions()
		assert.NotNil(t, opts)
		assert.Nil(t, opts.Model)
		assert.Zero(t, opts.MaxTokens)
		assert.Nil(t, opts.Temperature)
		assert.Nil(t, opts.TopP)
		assert.Nil(t, opts.Seed)
	})

	t.Run("applies multiple options", func(t *testing.T) {
		opts := ApplyOptions(
			WithModel(testModel("gpt-4o")),
			WithMaxTokens(1000),
			WithTemperature(0.7),
			WithTopP(0.9),
			WithSeed(42),
		)

		assert.Equal(t, "gpt-4o", opts.Model.String())
		assert.Equal(t, 1000, opts.MaxTokens)
		require.NotNil(t, opts.Temperature)
		assert.Equal(t, 0.7, *opts.Temperature)
		require.NotNil(t, opts.TopP)
		assert.Equal(t, 0.9, *opts.TopP)
		require.NotNil(t, opts.Seed)
		assert.Equal(t, int64(42), *opts.Seed)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		opts := ApplyOptions(WithTemperature(1), WithTemperature(0))
		require.NotNil(t, opts.Temperature)
		assert.Zero(t, *opts.Temperature)
	})
}

func TestDeterministic(t *testing.T) {
	opts := ApplyOptions(Deterministic()...)

	require.NotNil(t, opts.Temperature)
	require.NotNil(t, opts.TopP)
	require.NotNil(t, opts.Seed)
	assert.Zero(t, *opts.Temperature)
	assert.Zero(t, *opts.TopP)
	assert.Zero(t, *opts.Seed)
}

func TestChatFunc(t *testing.T) {
	var got []Message
	var provider ChatProvider = ChatFunc(func(ctx context.Context, messages []Message, opts ...Option) (*Response, error) {
		got = messages
		return &Response{Content: "ok"}, nil
	})

	resp, err := provider.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Len(t, got, 1)
}
