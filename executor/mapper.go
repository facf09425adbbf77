package executor

import (
	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/spetersoncode/relay/dialogue"
	"github.com/spetersoncode/relay/internal/metrics"
)

// finalState maps an artifact onto the task state it ends in.
func finalState(artifact dialogue.Artifact) a2a.TaskState {
	if artifact.OK() {
		return a2a.TaskStateCompleted
	}
	return a2a.TaskStateFailed
}

// outcome maps a final task state onto its metrics label.
func outcome(state a2a.TaskState) string {
	switch state {
	case a2a.TaskStateCompleted:
		return metrics.OutcomeCompleted
	case a2a.TaskStateCanceled:
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeFailed
	}
}

// artifactEvent publishes artifact as one complete chunk.
func artifactEvent(reqCtx *a2asrv.RequestContext, artifact dialogue.Artifact) *a2a.TaskArtifactUpdateEvent {
	parts := make([]a2a.Part, 0, len(artifact.Parts))
	for _, text := range artifact.Parts {
		parts = append(parts, a2a.TextPart{Text: text})
	}

	ev := a2a.NewArtifactEvent(reqCtx, parts...)
	ev.Artifact.Name = artifact.Name
	ev.LastChunk = true
	return ev
}

// finalStatusEvent closes the task. Failed tasks carry the generic failure text.
func finalStatusEvent(reqCtx *a2asrv.RequestContext, state a2a.TaskState) *a2a.TaskStatusUpdateEvent {
	var msg *a2a.Message
	if state == a2a.TaskStateFailed {
		msg = a2a.NewMessageForTask(a2a.MessageRoleAgent, reqCtx, a2a.TextPart{Text: dialogue.FailureMessage})
	}

	ev := a2a.NewStatusUpdateEvent(reqCtx, state, msg)
	ev.Final = true
	return ev
}
