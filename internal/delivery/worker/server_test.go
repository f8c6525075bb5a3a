package worker

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	domainerrors "routereel/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnimator struct {
	redrawErr error
	runs      atomic.Int32
	redraws   atomic.Int32
}

func (f *fakeAnimator) Run(ctx context.Context) error {
	f.runs.Add(1)
	<-ctx.Done()

	return nil
}

func (f *fakeAnimator) Redraw(_ context.Context) error {
	f.redraws.Add(1)

	return f.redrawErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnimatorWorker_ServeUntilStopped(t *testing.T) {
	animator := &fakeAnimator{}
	w := newAnimatorWorker(animator, discardLogger())

	served := make(chan error, 1)
	go func() { served <- w.Serve(context.Background()) }()

	require.Eventually(t, func() bool { return animator.runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, w.stop(context.Background()))

	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not return after stop")
	}
	assert.EqualValues(t, 1, animator.redraws.Load())
}

func TestAnimatorWorker_NoSurface(t *testing.T) {
	animator := &fakeAnimator{redrawErr: domainerrors.ErrNoSurface}
	w := newAnimatorWorker(animator, discardLogger())

	require.NoError(t, w.Serve(context.Background()))
	assert.Zero(t, animator.runs.Load())
	assert.NoError(t, w.stop(context.Background()))
}

func TestAnimatorWorker_StopBeforeServe(t *testing.T) {
	w := newAnimatorWorker(&fakeAnimator{}, discardLogger())

	assert.NoError(t, w.stop(context.Background()))
}
