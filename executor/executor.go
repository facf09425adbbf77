package executor

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/a2aproject/a2a-go/a2asrv/eventqueue"
	"github.com/spetersoncode/relay/dialogue"
	"github.com/spetersoncode/relay/internal/metrics"
)

// eventWriter is the part of eventqueue.Queue the executor uses.
type eventWriter interface {
	Write(ctx context.Context, event a2a.Event) error
}

// Executor implements a2asrv.AgentExecutor on top of a Registry.
//
// Event sequence for one message:
//   - new task: TaskStateSubmitted
//   - engine resolved: TaskStateWorking
//   - artifact named "Response" or "Error", LastChunk=true
//   - final TaskStateCompleted or TaskStateFailed
type Executor struct {
	registry *Registry
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records task outcomes on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Executor) {
		e.metrics = r
	}
}

// New creates an executor serving every context from registry.
func New(registry *Registry, opts ...Option) *Executor {
	e := &Executor{
		registry: registry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the executor's engine registry.
func (e *Executor) Registry() *Registry {
	return e.registry
}

// Execute implements a2asrv.AgentExecutor.
func (e *Executor) Execute(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	return e.execute(ctx, reqCtx, queue)
}

func (e *Executor) execute(ctx context.Context, reqCtx *a2asrv.RequestContext, w eventWriter) (err error) {
	logger := e.logger.With("task_id", reqCtx.TaskID, "context_id", reqCtx.ContextID)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("recovered panic while handling message",
				"panic", r,
				"stack", string(debug.Stack()),
			)
			err = e.finish(ctx, reqCtx, w, dialogue.ErrorArtifact(), logger)
		}
	}()

	if reqCtx.StoredTask == nil {
		if err := w.Write(ctx, a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateSubmitted, nil)); err != nil {
			return fmt.Errorf("failed to write submitted event: %w", err)
		}
	}

	if reqCtx.Message == nil {
		logger.Error("message not provided")
		return e.finish(ctx, reqCtx, w, dialogue.ErrorArtifact(), logger)
	}

	engine, release, created := e.registry.Resolve(reqCtx.ContextID)
	defer release()
	if created {
		logger.Info("created dialogue engine", "engine_id", engine.ID())
	}

	if err := w.Write(ctx, a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateWorking, nil)); err != nil {
		return fmt.Errorf("failed to write working event: %w", err)
	}

	text := ExtractText(reqCtx.Message)
	if strings.TrimSpace(text) == "" {
		logger.Warn("message has no text content", "parts", len(reqCtx.Message.Parts))
		return e.finish(ctx, reqCtx, w, dialogue.ErrorArtifact(), logger)
	}

	artifact := engine.Respond(ctx, text)
	return e.finish(ctx, reqCtx, w, artifact, logger)
}

// finish publishes the artifact and the final status derived from it.
func (e *Executor) finish(ctx context.Context, reqCtx *a2asrv.RequestContext, w eventWriter, artifact dialogue.Artifact, logger *slog.Logger) error {
	state := finalState(artifact)

	if err := w.Write(ctx, artifactEvent(reqCtx, artifact)); err != nil {
		return fmt.Errorf("failed to write artifact event: %w", err)
	}
	if err := w.Write(ctx, finalStatusEvent(reqCtx, state)); err != nil {
		return fmt.Errorf("failed to write %s event: %w", state, err)
	}

	e.metrics.TaskFinished(outcome(state))
	logger.Info("task finished", "state", state, "artifact", artifact.Name)
	return nil
}

// Cancel implements a2asrv.AgentExecutor. A completion already in flight is
// not interrupted; its result is discarded by the task store.
func (e *Executor) Cancel(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	return e.cancel(ctx, reqCtx, queue)
}

func (e *Executor) cancel(ctx context.Context, reqCtx *a2asrv.RequestContext, w eventWriter) error {
	ev := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateCanceled, nil)
	ev.Final = true
	if err := w.Write(ctx, ev); err != nil {
		return fmt.Errorf("failed to write canceled event: %w", err)
	}

	e.metrics.TaskFinished(metrics.OutcomeCanceled)
	e.logger.Info("task canceled", "task_id", reqCtx.TaskID, "context_id", reqCtx.ContextID)
	return nil
}

// Ensure Executor implements a2asrv.AgentExecutor
var _ a2asrv.AgentExecutor = (*Executor)(nil)
