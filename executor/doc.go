// Package executor adapts dialogue engines to the A2A task lifecycle.
//
// [Executor] implements a2asrv.AgentExecutor. Each inbound message is routed
// to the engine owned by its context, the task is moved to working, and the
// engine's artifact is published before the final completed or failed status.
// Engine failures never surface as errors from Execute; only queue write
// failures do.
//
//	registry := executor.NewRegistry(func(contextID string) *dialogue.Engine {
//	    return dialogue.New(contextID, provider)
//	})
//	handler := a2asrv.NewHandler(executor.New(registry))
package executor
