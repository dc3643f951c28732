// Package llm is the sole place model I/O happens (spec §4.1). Every
// other stage treats a Gateway as a synchronous call that either fills in
// a validated value or fails with one of three typed error Kinds — it
// never sees a partially-valid result.
package llm

import (
	"context"
	"time"
)

// Gateway is the model-call interface. CallJSON validates the model's
// JSON-mode output against target's shape (by unmarshalling into it) and
// returns an error with one of the three Kinds on any failure. target
// must be a pointer.
type Gateway interface {
	CallJSON(ctx context.Context, prompt string, target any, timeout time.Duration) error
}

// DefaultTimeout is used by callers that don't have a more specific
// per-stage budget (spec §6: "implementation-defined default, e.g., 30
// seconds").
const DefaultTimeout = 30 * time.Second
