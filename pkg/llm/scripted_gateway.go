package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// ScriptEntry is a single scripted response consumed by ScriptedGateway.
// Exactly one of Value or Err should be set.
type ScriptEntry struct {
	Value any   // marshalled to JSON then unmarshalled into the caller's target
	Err   error // returned as-is (wrap with llm.Error to pick a Kind)
}

// ScriptedGateway is a deterministic, in-memory Gateway implementation
// used by the eval harness and unit tests, grounded on the teacher's
// test/e2e/mock_llm.go ScriptedLLMClient: calls are consumed in order from
// a queue so tests can script "O1 succeeds, O2 times out" style
// sequences without a real provider.
type ScriptedGateway struct {
	mu      sync.Mutex
	entries []ScriptEntry
	calls   int
}

// NewScriptedGateway creates an empty scripted gateway.
func NewScriptedGateway() *ScriptedGateway {
	return &ScriptedGateway{}
}

// Add appends an entry to the end of the queue, returning the gateway for
// chaining.
func (g *ScriptedGateway) Add(entry ScriptEntry) *ScriptedGateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = append(g.entries, entry)
	return g
}

// AddValue is shorthand for Add(ScriptEntry{Value: v}).
func (g *ScriptedGateway) AddValue(v any) *ScriptedGateway {
	return g.Add(ScriptEntry{Value: v})
}

// AddError is shorthand for Add(ScriptEntry{Err: err}).
func (g *ScriptedGateway) AddError(err error) *ScriptedGateway {
	return g.Add(ScriptEntry{Err: err})
}

// CallCount returns how many calls have been consumed so far.
func (g *ScriptedGateway) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// CallJSON implements Gateway by consuming the next scripted entry. If the
// queue is exhausted, it fails with KindTransport (treated the same as a
// real provider being unreachable).
func (g *ScriptedGateway) CallJSON(ctx context.Context, prompt string, target any, timeout time.Duration) error {
	g.mu.Lock()
	idx := g.calls
	g.calls++
	g.mu.Unlock()

	if ctx.Err() != nil {
		return transportErr("context cancelled", ctx.Err())
	}

	if idx >= len(g.entries) {
		return transportErr(fmt.Sprintf("scripted gateway exhausted after %d calls", idx), nil)
	}
	entry := g.entries[idx]

	if entry.Err != nil {
		return entry.Err
	}

	raw, err := json.Marshal(entry.Value)
	if err != nil {
		return parseErr("scripted value could not be marshalled", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return parseErr("scripted value did not match target schema", err)
	}
	return nil
}
