// Package batch drives the line processor over many image sources on a
// dedicated worker, with progress reporting, per-item failure isolation and
// aggregate statistics.
package batch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ocrtools/textpost/internal/engine"
	"github.com/ocrtools/textpost/internal/processor"
)

// ErrAlreadyRunning is returned by Start when a run is still in progress.
// Double-start is a caller contract violation, not a queued request.
var ErrAlreadyRunning = errors.New("batch run already in progress")

// State is the orchestrator's run state.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Status is the lifecycle state of one batch item. An item transitions
// pending -> success|failed exactly once.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Item tracks one unit of submitted work through the run.
type Item struct {
	SourceID string                    `json:"source_id"`
	Status   Status                    `json:"status"`
	Lines    []processor.ProcessedLine `json:"lines,omitempty"`
	Error    string                    `json:"error,omitempty"`
}

// Result aggregates a finished (or cancelled) run. Items keep submission
// order; after cancellation, items that never started remain pending.
type Result struct {
	RunID     string        `json:"run_id"`
	State     State         `json:"-"`
	Items     []Item        `json:"items"`
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration_ns"`
}

// Orchestrator runs one batch at a time on a dedicated goroutine. Progress
// and completion are delivered through the ProgressCallback; the caller is
// never blocked by Start.
type Orchestrator struct {
	mu        sync.Mutex
	state     State
	cancelled atomic.Bool
	done      chan struct{}
	result    *Result

	proc *processor.Processor
	cb   ProgressCallback
}

// NewOrchestrator creates an idle orchestrator. A nil callback disables
// notifications.
func NewOrchestrator(proc *processor.Processor, cb ProgressCallback) *Orchestrator {
	if cb == nil {
		cb = NoOpProgressCallback{}
	}
	return &Orchestrator{proc: proc, cb: cb}
}

// State returns the current run state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Start begins processing the given sources on a new worker goroutine,
// recognizing each source through eng and post-processing the resulting
// lines. It returns immediately; ErrAlreadyRunning is returned when a run is
// still in flight.
func (o *Orchestrator) Start(ctx context.Context, sources []string, eng engine.Engine) error {
	o.mu.Lock()
	if o.state == StateRunning {
		o.mu.Unlock()
		return ErrAlreadyRunning
	}
	o.state = StateRunning
	o.cancelled.Store(false)
	o.done = make(chan struct{})
	o.result = nil
	done := o.done
	o.mu.Unlock()

	go func() {
		defer close(done)
		o.run(ctx, sources, eng)
	}()
	return nil
}

// Cancel requests cooperative cancellation. The item in flight completes; no
// new items start. Safe to call in any state.
func (o *Orchestrator) Cancel() {
	o.cancelled.Store(true)
}

// Wait blocks until the current run reaches a terminal state and returns its
// result. It returns nil when no run was ever started.
func (o *Orchestrator) Wait() *Result {
	o.mu.Lock()
	done := o.done
	o.mu.Unlock()
	if done == nil {
		return nil
	}
	<-done

	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

func (o *Orchestrator) run(ctx context.Context, sources []string, eng engine.Engine) {
	start := time.Now()
	activeRuns.Inc()
	defer activeRuns.Dec()

	result := &Result{
		RunID: uuid.NewString(),
		Items: make([]Item, len(sources)),
		Total: len(sources),
	}
	for i, src := range sources {
		result.Items[i] = Item{SourceID: src, Status: StatusPending}
	}

	o.cb.OnStart(len(sources))

	completed := 0
	for i := range result.Items {
		if o.cancelled.Load() || ctx.Err() != nil {
			break
		}
		item := &result.Items[i]

		lines, err := eng.Recognize(ctx, item.SourceID)
		if err != nil {
			// One item's failure never aborts the batch.
			item.Status = StatusFailed
			item.Error = err.Error()
			result.Failed++
			itemsTotal.WithLabelValues("failed").Inc()
			o.cb.OnItemError(item.SourceID, err)
		} else {
			item.Status = StatusSuccess
			item.Lines = o.proc.ProcessMany(lines)
			result.Succeeded++
			itemsTotal.WithLabelValues("success").Inc()
		}

		completed++
		o.cb.OnProgress(completed, result.Total, item.SourceID)
	}

	result.Duration = time.Since(start)
	runDuration.Observe(result.Duration.Seconds())

	final := StateCompleted
	if completed < result.Total {
		final = StateCancelled
	}
	result.State = final

	o.mu.Lock()
	o.state = final
	o.result = result
	o.mu.Unlock()

	// Completion is delivered after the last progress notification.
	o.cb.OnComplete(result)
}
