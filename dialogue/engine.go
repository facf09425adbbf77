package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	ai "github.com/spetersoncode/relay"
)

// Observer receives the outcome of every completion call.
// err is nil on success.
type Observer interface {
	ObserveCompletion(elapsed time.Duration, err *CompletionError)
}

// Engine owns one Conversation and performs one completion per Respond call.
// Respond calls on the same engine are serialized.
type Engine struct {
	id       string
	provider ai.ChatProvider
	conv     *Conversation

	systemPrompt string
	chatOpts     []ai.Option
	timeout      time.Duration
	logger       *slog.Logger
	observer     Observer

	mu       sync.Mutex
	inflight atomic.Int32
	lastUsed atomic.Int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithSystemPrompt replaces DefaultSystemPrompt.
func WithSystemPrompt(prompt string) Option {
	return func(e *Engine) {
		e.systemPrompt = prompt
	}
}

// WithChatOptions replaces the sampling options sent with every completion.
// The default is relay.Deterministic().
func WithChatOptions(opts ...ai.Option) Option {
	return func(e *Engine) {
		e.chatOpts = opts
	}
}

// WithTimeout bounds each completion call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver reports completion outcomes to o.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// New creates an engine for contextID whose conversation holds only the
// system turn.
func New(contextID string, provider ai.ChatProvider, opts ...Option) *Engine {
	e := &Engine{
		id:           uuid.NewString(),
		provider:     provider,
		systemPrompt: DefaultSystemPrompt,
		chatOpts:     ai.Deterministic(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.conv = NewConversation(contextID, e.systemPrompt)
	e.logger = e.logger.With("engine_id", e.id, "context_id", contextID)
	e.touch()
	return e
}

// ID returns the engine's unique identifier.
func (e *Engine) ID() string {
	return e.id
}

// Conversation returns the engine's conversation.
func (e *Engine) Conversation() *Conversation {
	return e.conv
}

// Busy reports whether the engine is held or a Respond call is in progress
// or waiting.
func (e *Engine) Busy() bool {
	return e.inflight.Load() > 0
}

// LastActive returns when the engine was created or last finished a call.
func (e *Engine) LastActive() time.Time {
	return time.Unix(0, e.lastUsed.Load())
}

// Hold marks the engine busy until release is called, so that an idle sweep
// leaves it alone between lookup and Respond. release may be called more
// than once.
func (e *Engine) Hold() (release func()) {
	e.inflight.Add(1)
	var once sync.Once
	return func() {
		once.Do(func() {
			e.touch()
			e.inflight.Add(-1)
		})
	}
}

func (e *Engine) touch() {
	e.lastUsed.Store(time.Now().UnixNano())
}

// Respond appends userText as a user turn, requests one completion over the
// whole conversation and returns the outcome as an artifact. On failure the
// conversation keeps the user turn and gains no assistant turn.
func (e *Engine) Respond(ctx context.Context, userText string) Artifact {
	e.inflight.Add(1)
	e.mu.Lock()
	defer func() {
		e.touch()
		e.mu.Unlock()
		e.inflight.Add(-1)
	}()

	if err := e.conv.Append(ai.Message{Role: ai.RoleUser, Content: userText}); err != nil {
		e.logger.Error("failed to append user turn", "error", err)
		return ErrorArtifact()
	}
	e.logger.Debug("received message", "text", userText, "turns", e.conv.Len())

	start := time.Now()
	text, cerr := e.complete(ctx, e.conv.Turns())
	elapsed := time.Since(start)

	if cerr != nil {
		e.observe(elapsed, cerr)
		e.logger.Error("completion failed",
			"kind", cerr.Kind,
			"category", cerr.Category,
			"status", cerr.Status,
			"retry_after", ai.RetryAfterOf(cerr.Err),
			"error", cerr.Err,
			"duration", elapsed,
		)
		return ErrorArtifact()
	}
	e.observe(elapsed, nil)

	if err := e.conv.Append(ai.Message{Role: ai.RoleAssistant, Content: text}); err != nil {
		e.logger.Error("failed to append assistant turn", "error", err)
		return ErrorArtifact()
	}
	e.logger.Debug("responding", "text", text, "duration", elapsed)
	return ResponseArtifact(text)
}

// complete performs the single completion call and validates its result.
func (e *Engine) complete(ctx context.Context, turns []ai.Message) (string, *CompletionError) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.provider.Chat(ctx, turns, e.chatOpts...)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", &CompletionError{Kind: KindTimeout, Err: fmt.Errorf("%w: %w", ctx.Err(), err)}
		}
		return "", classify(err)
	}
	if resp == nil {
		return "", &CompletionError{Kind: KindNoChoices, Err: ai.ErrNoChoices}
	}
	if strings.TrimSpace(resp.Content) == "" {
		return "", &CompletionError{Kind: KindEmptyContent, Err: ai.ErrEmptyContent}
	}
	return resp.Content, nil
}

func (e *Engine) observe(elapsed time.Duration, cerr *CompletionError) {
	if e.observer != nil {
		e.observer.ObserveCompletion(elapsed, cerr)
	}
}
