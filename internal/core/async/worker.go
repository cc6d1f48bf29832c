package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/pdf-renamer/internal/common"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/rename"
)

// BatchRunner is the renamer as seen by the worker.
type BatchRunner interface {
	Run(ctx context.Context, job rename.Job) <-chan rename.Outcome
}

// Worker runs at most one rename batch at a time on a dedicated goroutine.
type Worker struct {
	runner  BatchRunner
	logger  *slog.Logger
	timeout time.Duration
	buffer  int

	wg sync.WaitGroup

	mu     sync.Mutex
	busy   bool
	closed bool
	cancel context.CancelFunc
}

type Option func(*Worker)

// WithBatchTimeout bounds a whole batch. Zero means no bound.
func WithBatchTimeout(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.timeout = d
		}
	}
}

// WithBuffer sizes the outcome channel handed to the caller.
func WithBuffer(n int) Option {
	return func(w *Worker) {
		if n >= 0 {
			w.buffer = n
		}
	}
}

func NewWorker(runner BatchRunner, logger *slog.Logger, opts ...Option) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Worker{runner: runner, logger: logger, buffer: 64}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Busy reports whether a batch is in flight.
func (w *Worker) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Start launches job and returns its outcome stream. The stream ends with a
// Done outcome and is closed; the worker is free again once it is closed.
// Starting while another batch is in flight returns common.ErrBatchInFlight.
func (w *Worker) Start(ctx context.Context, job rename.Job) (<-chan rename.Outcome, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, common.NewAppError("WORKER_CLOSED", "worker is shutting down", common.ErrBatchInFlight)
	}
	if w.busy {
		w.logger.Warn("batch.start.rejected", "folder", job.Folder, "reason", "in flight")
		return nil, common.ErrBatchInFlight
	}

	runID := common.RunIDFromContext(ctx)
	if runID == "" {
		runID = uuid.New().String()
	}
	// The batch outlives the request that started it; only Shutdown or the timeout stop it.
	runCtx := common.WithRunID(context.WithoutCancel(ctx), runID)
	var cancel context.CancelFunc
	if w.timeout > 0 {
		runCtx, cancel = context.WithTimeout(runCtx, w.timeout)
	} else {
		runCtx, cancel = context.WithCancel(runCtx)
	}

	w.busy = true
	w.cancel = cancel
	w.wg.Add(1)

	out := make(chan rename.Outcome, w.buffer)
	go func() {
		defer w.wg.Done()
		defer close(out)
		defer func() {
			cancel()
			w.mu.Lock()
			w.busy = false
			w.cancel = nil
			w.mu.Unlock()
		}()

		w.logger.Info("batch.worker.started", "run_id", runID, "folder", job.Folder)
		for o := range w.runner.Run(runCtx, job) {
			out <- o
		}
		w.logger.Info("batch.worker.finished", "run_id", runID)
	}()
	return out, nil
}

// Cancel stops the in-flight batch between files, if any.
func (w *Worker) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
	}
}

// Shutdown refuses new batches and waits for the in-flight one to drain.
// Callers must keep draining the outcome stream while waiting.
func (w *Worker) Shutdown(ctx context.Context) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); w.wg.Wait() }()

	select {
	case <-ctx.Done():
		w.logger.Warn("batch.worker.shutdown_interrupted")
		w.Cancel()
	case <-done:
		w.logger.Info("batch.worker.shutdown_complete")
	}
}
