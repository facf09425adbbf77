package executor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	ai "github.com/spetersoncode/relay"
	"github.com/spetersoncode/relay/dialogue"
	"github.com/spetersoncode/relay/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProvider is a func-field ChatProvider for testing.
type mockProvider struct {
	chatFunc func(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error)
}

func (m *mockProvider) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	if m.chatFunc != nil {
		return m.chatFunc(ctx, messages, opts...)
	}
	return &ai.Response{Content: "ok"}, nil
}

func echo() *mockProvider {
	return &mockProvider{
		chatFunc: func(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
			return &ai.Response{Content: messages[len(messages)-1].Content}, nil
		},
	}
}

// recordingWriter captures events written by the executor.
type recordingWriter struct {
	mu     sync.Mutex
	events []a2a.Event
	err    error
}

func (w *recordingWriter) Write(ctx context.Context, event a2a.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.events = append(w.events, event)
	return nil
}

func (w *recordingWriter) states() []a2a.TaskState {
	var result []a2a.TaskState
	for _, ev := range w.events {
		if s, ok := ev.(*a2a.TaskStatusUpdateEvent); ok {
			result = append(result, s.Status.State)
		}
	}
	return result
}

func (w *recordingWriter) artifacts() []*a2a.TaskArtifactUpdateEvent {
	var result []*a2a.TaskArtifactUpdateEvent
	for _, ev := range w.events {
		if a, ok := ev.(*a2a.TaskArtifactUpdateEvent); ok {
			result = append(result, a)
		}
	}
	return result
}

func (w *recordingWriter) last() *a2a.TaskStatusUpdateEvent {
	s, _ := w.events[len(w.events)-1].(*a2a.TaskStatusUpdateEvent)
	return s
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newExecutor(p ai.ChatProvider, opts ...Option) *Executor {
	registry := NewRegistry(func(contextID string) *dialogue.Engine {
		return dialogue.New(contextID, p, dialogue.WithLogger(quietLogger()))
	})
	return New(registry, append([]Option{WithLogger(quietLogger())}, opts...)...)
}

func request(contextID, text string) *a2asrv.RequestContext {
	return &a2asrv.RequestContext{
		Message:   a2a.NewMessage(a2a.MessageRoleUser, a2a.TextPart{Text: text}),
		TaskID:    a2a.TaskID("task-" + text),
		ContextID: contextID,
	}
}

func artifactText(t *testing.T, ev *a2a.TaskArtifactUpdateEvent) string {
	t.Helper()
	require.Len(t, ev.Artifact.Parts, 1)
	part, ok := ev.Artifact.Parts[0].(a2a.TextPart)
	require.True(t, ok)
	return part.Text
}

func TestExecutor_ExecuteSuccess(t *testing.T) {
	exec := newExecutor(echo())
	w := &recordingWriter{}

	err := exec.execute(context.Background(), request("ctx-a", "X"), w)
	require.NoError(t, err)

	assert.Equal(t,
		[]a2a.TaskState{a2a.TaskStateSubmitted, a2a.TaskStateWorking, a2a.TaskStateCompleted},
		w.states())

	arts := w.artifacts()
	require.Len(t, arts, 1)
	assert.Equal(t, dialogue.ArtifactResponse, arts[0].Artifact.Name)
	assert.True(t, arts[0].LastChunk)
	assert.Equal(t, "X", artifactText(t, arts[0]))

	final := w.last()
	require.NotNil(t, final)
	assert.True(t, final.Final)
	assert.Nil(t, final.Status.Message)
}

func TestExecutor_EchoAcrossTurns(t *testing.T) {
	exec := newExecutor(echo())

	for _, text := range []string{"X", "Y"} {
		w := &recordingWriter{}
		require.NoError(t, exec.execute(context.Background(), request("ctx-a", text), w))

		arts := w.artifacts()
		require.Len(t, arts, 1)
		assert.Equal(t, dialogue.ArtifactResponse, arts[0].Artifact.Name)
		assert.Equal(t, text, artifactText(t, arts[0]))
	}

	engine, ok := exec.Registry().Get("ctx-a")
	require.True(t, ok)
	assert.Equal(t, 5, engine.Conversation().Len())
	assert.Equal(t, 1, exec.Registry().Len())
	assert.False(t, engine.Busy())
}

func TestExecutor_StoredTaskSkipsSubmitted(t *testing.T) {
	exec := newExecutor(echo())
	w := &recordingWriter{}
	req := request("ctx-a", "X")
	req.StoredTask = &a2a.Task{ID: req.TaskID, ContextID: req.ContextID}

	require.NoError(t, exec.execute(context.Background(), req, w))
	assert.Equal(t, []a2a.TaskState{a2a.TaskStateWorking, a2a.TaskStateCompleted}, w.states())
}

func TestExecutor_ContextIsolation(t *testing.T) {
	var mu sync.Mutex
	seen := map[string][]ai.Message{}
	p := &mockProvider{
		chatFunc: func(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
			mu.Lock()
			defer mu.Unlock()
			last := messages[len(messages)-1].Content
			seen[last] = messages
			return &ai.Response{Content: "ack " + last}, nil
		},
	}
	exec := newExecutor(p)

	require.NoError(t, exec.execute(context.Background(), request("ctx-a", "a1"), &recordingWriter{}))
	require.NoError(t, exec.execute(context.Background(), request("ctx-b", "b1"), &recordingWriter{}))
	require.NoError(t, exec.execute(context.Background(), request("ctx-a", "a2"), &recordingWriter{}))

	for _, turn := range seen["b1"] {
		assert.NotContains(t, turn.Content, "a1")
	}
	for _, turn := range seen["a2"] {
		assert.NotContains(t, turn.Content, "b1")
	}
	assert.Len(t, seen["a2"], 4)
	assert.Len(t, seen["b1"], 2)
}

func TestExecutor_Failures(t *testing.T) {
	tests := []struct {
		name     string
		provider *mockProvider
	}{
		{
			name: "provider error",
			provider: &mockProvider{chatFunc: func(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
				return nil, errors.New("connection reset by peer at 10.0.0.3")
			}},
		},
		{
			name: "empty content",
			provider: &mockProvider{chatFunc: func(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
				return &ai.Response{}, nil
			}},
		},
		{
			name: "no choices",
			provider: &mockProvider{chatFunc: func(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
				return nil, ai.ErrNoChoices
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := newExecutor(tt.provider)
			w := &recordingWriter{}

			require.NoError(t, exec.execute(context.Background(), request("ctx-a", "hello"), w))

			assert.Equal(t,
				[]a2a.TaskState{a2a.TaskStateSubmitted, a2a.TaskStateWorking, a2a.TaskStateFailed},
				w.states())
			arts := w.artifacts()
			require.Len(t, arts, 1)
			assert.Equal(t, dialogue.ArtifactError, arts[0].Artifact.Name)
			assert.NotContains(t, artifactText(t, arts[0]), "10.0.0.3")

			final := w.last()
			assert.True(t, final.Final)
			require.NotNil(t, final.Status.Message)

			engine, ok := exec.Registry().Get("ctx-a")
			require.True(t, ok)
			turns := engine.Conversation().Turns()
			require.Len(t, turns, 2)
			assert.Equal(t, ai.RoleUser, turns[1].Role)
		})
	}
}

func TestExecutor_MissingMessage(t *testing.T) {
	exec := newExecutor(echo())
	w := &recordingWriter{}

	req := &a2asrv.RequestContext{TaskID: "task-1", ContextID: "ctx-a"}
	require.NoError(t, exec.execute(context.Background(), req, w))

	assert.Equal(t, []a2a.TaskState{a2a.TaskStateSubmitted, a2a.TaskStateFailed}, w.states())
	require.Len(t, w.artifacts(), 1)
	assert.Equal(t, dialogue.ArtifactError, w.artifacts()[0].Artifact.Name)
	assert.Equal(t, 0, exec.Registry().Len())
}

func TestExecutor_EmptyText(t *testing.T) {
	called := false
	p := &mockProvider{
		chatFunc: func(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
			called = true
			return &ai.Response{Content: "x"}, nil
		},
	}
	exec := newExecutor(p)
	w := &recordingWriter{}

	req := request("ctx-a", "   ")
	require.NoError(t, exec.execute(context.Background(), req, w))

	assert.False(t, called)
	assert.Equal(t, a2a.TaskStateFailed, w.last().Status.State)
	assert.Equal(t, dialogue.ArtifactError, w.artifacts()[0].Artifact.Name)

	engine, ok := exec.Registry().Get("ctx-a")
	require.True(t, ok)
	assert.Equal(t, 1, engine.Conversation().Len())
	assert.False(t, engine.Busy())
}

func TestExecutor_RecoversPanic(t *testing.T) {
	p := &mockProvider{
		chatFunc: func(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
			panic("provider exploded")
		},
	}
	exec := newExecutor(p)
	w := &recordingWriter{}

	var err error
	require.NotPanics(t, func() {
		err = exec.execute(context.Background(), request("ctx-a", "hello"), w)
	})
	require.NoError(t, err)

	assert.Equal(t, a2a.TaskStateFailed, w.last().Status.State)
	require.Len(t, w.artifacts(), 1)
	assert.Equal(t, dialogue.ArtifactError, w.artifacts()[0].Artifact.Name)

	// The engine stays usable for the next message.
	engine, _ := exec.Registry().Get("ctx-a")
	assert.False(t, engine.Busy())
}

func TestExecutor_WriteErrorIsReturned(t *testing.T) {
	exec := newExecutor(echo())
	w := &recordingWriter{err: errors.New("queue closed")}

	err := exec.execute(context.Background(), request("ctx-a", "X"), w)
	assert.ErrorContains(t, err, "queue closed")
}

func TestExecutor_Cancel(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.New(reg)
	require.NoError(t, err)

	exec := newExecutor(echo(), WithMetrics(rec))
	w := &recordingWriter{}

	require.NoError(t, exec.cancel(context.Background(), request("ctx-a", "X"), w))

	require.Len(t, w.events, 1)
	ev := w.last()
	assert.Equal(t, a2a.TaskStateCanceled, ev.Status.State)
	assert.True(t, ev.Final)
	count, err := testutil.GatherAndCount(reg, "relay_tasks_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestExecutor_RecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.New(reg)
	require.NoError(t, err)

	exec := newExecutor(echo(), WithMetrics(rec))
	require.NoError(t, exec.execute(context.Background(), request("ctx-a", "X"), &recordingWriter{}))
	require.NoError(t, exec.execute(context.Background(), request("ctx-a", ""), &recordingWriter{}))

	expected := `
# HELP relay_tasks_total Total tasks finished, by outcome.
# TYPE relay_tasks_total counter
relay_tasks_total{outcome="completed"} 1
relay_tasks_total{outcome="failed"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "relay_tasks_total"))
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		msg  *a2a.Message
		want string
	}{
		{"nil message", nil, ""},
		{"single part", a2a.NewMessage(a2a.MessageRoleUser, a2a.TextPart{Text: "hello"}), "hello"},
		{
			name: "parts joined by newline",
			msg: a2a.NewMessage(a2a.MessageRoleUser,
				a2a.TextPart{Text: "Patient S1 question:"},
				&a2a.TextPart{Text: "What is the latest HbA1c?"},
			),
			want: "Patient S1 question:\nWhat is the latest HbA1c?",
		},
		{
			name: "non-text parts skipped",
			msg: a2a.NewMessage(a2a.MessageRoleUser,
				a2a.TextPart{Text: "Hello,"},
				a2a.DataPart{Data: map[string]any{"k": "v"}},
				&a2a.TextPart{Text: "world"},
			),
			want: "Hello,\nworld",
		},
		{
			name: "data only",
			msg:  a2a.NewMessage(a2a.MessageRoleUser, a2a.DataPart{Data: map[string]any{"k": "v"}}),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractText(tt.msg))
		})
	}
}
