package async

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/pdf-renamer/constants"
	"github.com/joseph-ayodele/pdf-renamer/internal/common"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/rename"
)

// gatedRunner emits one file outcome, waits for release, then emits Done.
type gatedRunner struct {
	release chan struct{}
	gotCtx  chan context.Context
}

func newGatedRunner() *gatedRunner {
	return &gatedRunner{release: make(chan struct{}), gotCtx: make(chan context.Context, 4)}
}

func (g *gatedRunner) Run(ctx context.Context, job rename.Job) <-chan rename.Outcome {
	g.gotCtx <- ctx
	out := make(chan rename.Outcome)
	go func() {
		defer close(out)
		out <- rename.Outcome{Kind: constants.OutcomeWouldRename, Source: "a.pdf", FinalName: "A.pdf"}
		select {
		case <-g.release:
			out <- rename.Outcome{Kind: constants.OutcomeDone}
		case <-ctx.Done():
			out <- rename.Outcome{Kind: constants.OutcomeDone, Reason: ctx.Err().Error()}
		}
	}()
	return out
}

func TestWorkerRejectsSecondBatch(t *testing.T) {
	g := newGatedRunner()
	w := NewWorker(g, nil)

	ch, err := w.Start(context.Background(), rename.Job{Folder: "/tmp/x"})
	require.NoError(t, err)
	first := <-ch
	assert.Equal(t, constants.OutcomeWouldRename, first.Kind)
	assert.True(t, w.Busy())

	_, err = w.Start(context.Background(), rename.Job{Folder: "/tmp/y"})
	require.ErrorIs(t, err, common.ErrBatchInFlight)

	close(g.release)
	var last rename.Outcome
	for o := range ch {
		last = o
	}
	assert.Equal(t, constants.OutcomeDone, last.Kind)
	assert.False(t, w.Busy())

	g.release = make(chan struct{})
	close(g.release)
	ch, err = w.Start(context.Background(), rename.Job{Folder: "/tmp/z"})
	require.NoError(t, err)
	for range ch {
	}
}

func TestWorkerBatchOutlivesStartContext(t *testing.T) {
	g := newGatedRunner()
	w := NewWorker(g, nil)

	ctx, cancel := context.WithCancel(common.WithRunID(context.Background(), "run-7"))
	ch, err := w.Start(ctx, rename.Job{})
	require.NoError(t, err)
	cancel()

	runCtx := <-g.gotCtx
	assert.NoError(t, runCtx.Err())
	assert.Equal(t, "run-7", common.RunIDFromContext(runCtx))

	close(g.release)
	for range ch {
	}
}

func TestWorkerCancel(t *testing.T) {
	g := newGatedRunner()
	w := NewWorker(g, nil)

	ch, err := w.Start(context.Background(), rename.Job{})
	require.NoError(t, err)
	<-ch
	w.Cancel()

	done := <-ch
	assert.Equal(t, constants.OutcomeDone, done.Kind)
	assert.Equal(t, context.Canceled.Error(), done.Reason)
	_, open := <-ch
	assert.False(t, open)
}

func TestWorkerShutdownWaitsAndRefuses(t *testing.T) {
	g := newGatedRunner()
	w := NewWorker(g, nil, WithBatchTimeout(time.Minute))

	ch, err := w.Start(context.Background(), rename.Job{})
	require.NoError(t, err)

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for range ch {
		}
	}()

	shut := make(chan struct{})
	go func() {
		defer close(shut)
		w.Shutdown(context.Background())
	}()

	close(g.release)
	<-drained
	<-shut

	_, err = w.Start(context.Background(), rename.Job{})
	require.ErrorIs(t, err, common.ErrBatchInFlight)
}
