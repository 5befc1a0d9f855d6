package vm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrProcedureNotFound is returned by ProcedureStore.Load/Delete when the
// token names no live procedure (unknown, expired, or the engine's
// equivalent, e.g. a completed/terminated Temporal workflow). Callers use
// errors.Is against this sentinel instead of matching backend-specific
// error text.
var ErrProcedureNotFound = errors.New("vm: procedure not found")

// ProcedureState is the suspended state of an async procedure invocation
// keyed by a `proc_<uuid>` token (spec §5/§9): enough to resume it later
// (via an engine backend — package engine/inmem or engine/temporal) without
// re-running everything from the start.
type ProcedureState struct {
	Token     string
	Function  string
	Scope     map[string]any
	Node      string // the procedure's body source, stored at creation and lowered again on each run
	Done      bool
	Result    any
	Err       error
	ExpiresAt time.Time // zero means no expiry
}

// ProcedureStore persists ProcedureState across the lifetime of a
// long-running/durable procedure call. package engine/inmem provides a
// process-local implementation; package engine/temporal durably persists
// state via Temporal workflows for restarts that must survive a process
// crash.
type ProcedureStore interface {
	New(ctx context.Context, function string, initial map[string]any) (*ProcedureState, error)
	Save(ctx context.Context, state *ProcedureState) error
	Load(ctx context.Context, token string) (*ProcedureState, error)
	Delete(ctx context.Context, token string) error
}

// NewProcedureToken mints a `proc_<uuid>` token (spec §9).
func NewProcedureToken() string {
	return "proc_" + uuid.NewString()
}
