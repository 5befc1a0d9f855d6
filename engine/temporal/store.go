// Package temporal provides a durable vm.ProcedureStore backed by Temporal
// workflows, for hosts that need procedure tokens to survive a process
// restart. Each token maps to one workflow execution that holds the
// procedure's state, answers Load as a query, and accepts Save as a
// signal, until its TTL elapses or it is explicitly Deleted.
package temporal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/tjs-lang/tjs/vm"
)

// DefaultTaskQueue is used when Options.TaskQueue is empty.
const DefaultTaskQueue = "tjs-procedures"

const (
	queryState = "state"
	signalSave = "save"
)

const defaultTTL = 5 * time.Minute

// Options configures a Store.
type Options struct {
	// Client is a pre-configured Temporal client. Required.
	Client client.Client

	// TaskQueue is the worker task queue procedure workflows run on.
	// Defaults to DefaultTaskQueue.
	TaskQueue string

	// DisableTracing skips installing the OTEL tracing interceptor on the
	// worker, for hosts that instrument Temporal some other way.
	DisableTracing bool
}

// Store is a durable vm.ProcedureStore backed by Temporal.
type Store struct {
	client    client.Client
	taskQueue string
	worker    worker.Worker
}

// New starts a worker registered for the procedure-holder workflow and
// returns a Store bound to it.
func New(opts Options) (*Store, error) {
	if opts.Client == nil {
		return nil, errors.New("engine/temporal: client is required")
	}
	taskQueue := opts.TaskQueue
	if taskQueue == "" {
		taskQueue = DefaultTaskQueue
	}
	workerOpts := worker.Options{}
	if !opts.DisableTracing {
		tracer, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{})
		if err != nil {
			return nil, fmt.Errorf("engine/temporal: configure tracing interceptor: %w", err)
		}
		workerOpts.Interceptors = []interceptor.WorkerInterceptor{tracer}
	}
	w := worker.New(opts.Client, taskQueue, workerOpts)
	w.RegisterWorkflow(procedureWorkflow)
	if err := w.Start(); err != nil {
		return nil, fmt.Errorf("engine/temporal: start worker: %w", err)
	}
	return &Store{client: opts.Client, taskQueue: taskQueue, worker: w}, nil
}

// Close stops the underlying worker.
func (s *Store) Close() {
	if s.worker != nil {
		s.worker.Stop()
	}
}

// New mints a ProcedureState and starts its holder workflow.
func (s *Store) New(ctx context.Context, function string, initial map[string]any) (*vm.ProcedureState, error) {
	state := &vm.ProcedureState{
		Token:     vm.NewProcedureToken(),
		Function:  function,
		Scope:     initial,
		ExpiresAt: time.Now().Add(defaultTTL),
	}
	_, err := s.client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        state.Token,
		TaskQueue: s.taskQueue,
	}, procedureWorkflow, state)
	if err != nil {
		return nil, fmt.Errorf("engine/temporal: start procedure workflow: %w", err)
	}
	return state, nil
}

// Save signals the token's holder workflow with the updated state.
func (s *Store) Save(ctx context.Context, state *vm.ProcedureState) error {
	if state == nil || state.Token == "" {
		return errors.New("engine/temporal: state with a token is required")
	}
	if err := s.client.SignalWorkflow(ctx, state.Token, "", signalSave, state); err != nil {
		return fmt.Errorf("engine/temporal: signal procedure workflow: %w", err)
	}
	return nil
}

// Load queries the token's holder workflow for its current state.
func (s *Store) Load(ctx context.Context, token string) (*vm.ProcedureState, error) {
	resp, err := s.client.QueryWorkflow(ctx, token, "", queryState)
	if err != nil {
		return nil, fmt.Errorf("engine/temporal: query procedure workflow %q: %w", token, mapStoreError(err))
	}
	var state vm.ProcedureState
	if err := resp.Get(&state); err != nil {
		return nil, fmt.Errorf("engine/temporal: decode procedure state %q: %w", token, err)
	}
	return &state, nil
}

// Delete terminates the token's holder workflow.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.TerminateWorkflow(ctx, token, "", "procedure deleted"); err != nil {
		mapped := mapStoreError(err)
		if errors.Is(mapped, vm.ErrProcedureNotFound) {
			return nil
		}
		return fmt.Errorf("engine/temporal: terminate procedure workflow %q: %w", token, mapped)
	}
	return nil
}

// mapStoreError translates Temporal's gRPC-derived service errors into
// vm.ErrProcedureNotFound so callers can use errors.Is instead of matching
// on Temporal-specific error types: a query/terminate against a token whose
// holder workflow already completed, was terminated, or never existed
// surfaces as serviceerror.NotFound or serviceerror.FailedPrecondition.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	var notFound *serviceerror.NotFound
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %w", vm.ErrProcedureNotFound, err)
	}
	var failedPrecondition *serviceerror.FailedPrecondition
	if errors.As(err, &failedPrecondition) {
		return fmt.Errorf("%w: %w", vm.ErrProcedureNotFound, err)
	}
	return err
}

// procedureWorkflow durably holds one ProcedureState, serving it via the
// "state" query and accepting updates via the "save" signal, until its
// ExpiresAt deadline elapses.
func procedureWorkflow(ctx workflow.Context, initial *vm.ProcedureState) error {
	state := *initial
	if err := workflow.SetQueryHandler(ctx, queryState, func() (*vm.ProcedureState, error) {
		return &state, nil
	}); err != nil {
		return err
	}

	saveCh := workflow.GetSignalChannel(ctx, signalSave)
	for {
		ttl := time.Until(state.ExpiresAt)
		if ttl <= 0 {
			return nil
		}
		timerCtx, cancel := workflow.WithCancel(ctx)
		timer := workflow.NewTimer(timerCtx, ttl)

		selector := workflow.NewSelector(ctx)
		expired := false
		selector.AddFuture(timer, func(workflow.Future) { expired = true })
		selector.AddReceive(saveCh, func(c workflow.ReceiveChannel, more bool) {
			var next vm.ProcedureState
			c.Receive(ctx, &next)
			state = next
		})
		selector.Select(ctx)
		cancel()
		if expired {
			return nil
		}
	}
}
