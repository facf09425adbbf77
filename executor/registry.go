package executor

import (
	"context"
	"sync"
	"time"

	"github.com/spetersoncode/relay/dialogue"
)

// Factory builds the engine for a context seen for the first time.
type Factory func(contextID string) *dialogue.Engine

// Registry maps context identifiers to their dialogue engines.
// At most one engine exists per context.
type Registry struct {
	factory Factory
	ttl     time.Duration
	onSize  func(int)

	mu      sync.RWMutex
	engines map[string]*dialogue.Engine
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithIdleTTL lets Sweep retire engines idle for longer than ttl.
// Zero keeps every engine for the life of the process.
func WithIdleTTL(ttl time.Duration) RegistryOption {
	return func(r *Registry) {
		r.ttl = ttl
	}
}

// WithSizeObserver calls fn with the engine count after every change.
func WithSizeObserver(fn func(int)) RegistryOption {
	return func(r *Registry) {
		r.onSize = fn
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(factory Factory, opts ...RegistryOption) *Registry {
	r := &Registry{
		factory: factory,
		engines: make(map[string]*dialogue.Engine),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the engine for contextID, if any.
func (r *Registry) Get(contextID string) (*dialogue.Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.engines[contextID]
	return e, ok
}

// Resolve returns the engine for contextID, creating it on first use, and
// holds it until release is called. Sweep never removes a held engine.
// An empty contextID yields a fresh engine that is not registered.
func (r *Registry) Resolve(contextID string) (engine *dialogue.Engine, release func(), created bool) {
	if contextID == "" {
		engine = r.factory(contextID)
		return engine, engine.Hold(), true
	}

	// Holding under the lock keeps Sweep from seeing the engine idle.
	r.mu.RLock()
	engine, ok := r.engines[contextID]
	if ok {
		release = engine.Hold()
	}
	r.mu.RUnlock()
	if ok {
		return engine, release, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if engine, ok := r.engines[contextID]; ok {
		return engine, engine.Hold(), false
	}

	engine = r.factory(contextID)
	r.engines[contextID] = engine
	r.notify()
	return engine, engine.Hold(), true
}

// Len returns the number of registered engines.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.engines)
}

// Sweep removes engines that are idle since before now minus the TTL and
// have no call in progress. It returns the number removed.
func (r *Registry) Sweep(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}

	cutoff := now.Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, engine := range r.engines {
		if engine.Busy() || engine.LastActive().After(cutoff) {
			continue
		}
		delete(r.engines, id)
		removed++
	}
	if removed > 0 {
		r.notify()
	}
	return removed
}

// Run sweeps at half the TTL until ctx is done. It returns immediately when
// no TTL is configured.
func (r *Registry) Run(ctx context.Context) {
	if r.ttl <= 0 {
		return
	}

	ticker := time.NewTicker(r.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}

// notify must be called with mu held.
func (r *Registry) notify() {
	if r.onSize != nil {
		r.onSize(len(r.engines))
	}
}
