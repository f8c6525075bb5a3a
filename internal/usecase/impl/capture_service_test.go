package impl

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"routereel/config"
	deliverycontext "routereel/internal/delivery/context"
	"routereel/internal/domain/entity"
	domainerrors "routereel/internal/domain/errors"
	"routereel/internal/domain/repository"
	"routereel/internal/domain/service"
	"routereel/internal/errors"
	"routereel/internal/infra/clock"
	mockRepo "routereel/internal/mocks/repository"
	mockService "routereel/internal/mocks/service"
	"routereel/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type captureFixture struct {
	cfg       *config.Config
	session   usecase.SessionUsecase
	surface   *fakeSurface
	encoder   *fakeEncoder
	artifacts *mockRepo.MockArtifactRepository
	publisher *mockService.MockEventPublisher
	requestID string
}

func newCaptureFixture(t *testing.T, duration time.Duration) *captureFixture {
	t.Helper()

	return &captureFixture{
		cfg:       newTestConfig(duration),
		session:   newSessionWithRoute(t, duration, [2]float64{-3.70, 40.42}, [2]float64{2.35, 48.86}, [2]float64{4.90, 52.37}),
		surface:   newFakeSurface(),
		encoder:   &fakeEncoder{},
		artifacts: mockRepo.NewMockArtifactRepository(t),
		publisher: mockService.NewMockEventPublisher(t),
	}
}

func (f *captureFixture) service() usecase.CaptureUsecase {
	params := CaptureServiceParams{
		Config:    f.cfg,
		Logger:    newDiscardLogger(),
		Session:   f.session,
		Encoder:   f.encoder,
		Artifacts: f.artifacts,
		Publisher: f.publisher,
	}
	if f.surface != nil {
		params.Surface = f.surface
	}

	return NewCaptureService(params)
}

func (f *captureFixture) expectArtifact(state entity.CaptureState) {
	f.artifacts.EXPECT().
		Save(mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "captures/") && strings.HasSuffix(key, ".webm")
		}), "video/webm", mock.Anything).
		RunAndReturn(func(_ context.Context, _, _ string, data io.Reader) (int64, error) {
			b, err := io.ReadAll(data)

			return int64(len(b)), err
		}).
		Once()
	f.publisher.EXPECT().
		PublishCaptureEvent(mock.Anything, mock.MatchedBy(func(e *service.CaptureEvent) bool {
			return e.State == string(state) && e.RequestID == f.requestID
		})).
		Return(nil).
		Once()
}

func waitCapture(t *testing.T, capture usecase.CaptureUsecase) *entity.Capture {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := capture.Wait(ctx)
	require.NoError(t, err)

	return result
}

func TestCaptureService_RecordsWholeRun(t *testing.T) {
	f := newCaptureFixture(t, time.Second)
	f.requestID = "req-42"
	f.expectArtifact(entity.CaptureCompleted)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	animator := NewAnimatorService(f.session, f.surface, clock.NewTicker(10*time.Millisecond), newDiscardLogger())
	go func() { _ = animator.Run(ctx) }()

	capture := f.service()
	started, err := capture.Start(deliverycontext.WithRequestID(ctx, f.requestID))
	require.NoError(t, err)
	assert.Equal(t, entity.CaptureRecording, started.State)
	assert.Equal(t, 30, started.FrameRate)

	result := waitCapture(t, capture)

	assert.Equal(t, entity.CaptureCompleted, result.State)
	assert.False(t, result.Truncated)
	assert.Empty(t, result.Error)
	assert.GreaterOrEqual(t, result.FramesCaptured, 27, "expected at least 90%% of frameRate*duration frames")
	assert.Equal(t, f.encoder.frameCount(), result.FramesCaptured)
	assert.InDelta(t, 1.0, result.Progress, 0.011)
	assert.Equal(t, "captures/"+result.ID.String()+".webm", result.ArtifactKey)
	assert.Equal(t, int64(4), result.ArtifactSize)
	assert.NotNil(t, result.FinishedAt)

	assert.Equal(t, service.EncoderOptions{Width: 64, Height: 36, FrameRate: 30, Bitrate: "1M"}, f.encoder.opts)
	assert.Equal(t, entity.PlaybackStopped, f.session.State().Status())
}

func TestCaptureService_SetupFailuresLeavePlaybackUntouched(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *captureFixture)
		wantErr error
	}{
		{
			name:    "missing surface",
			prepare: func(f *captureFixture) { f.surface = nil },
			wantErr: domainerrors.ErrNoSurface,
		},
		{
			name:    "unsupported encoder",
			prepare: func(f *captureFixture) { f.encoder.supported = errors.New("ffmpeg not found") },
			wantErr: domainerrors.ErrUnsupportedEncoder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCaptureFixture(t, 10*time.Second)
			tt.prepare(f)

			ctx := context.Background()
			_, err := f.session.Scrub(ctx, 0.3)
			require.NoError(t, err)
			before := f.session.State()

			capture := f.service()
			_, err = capture.Start(ctx)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))

			assert.Equal(t, before, f.session.State())
			assert.False(t, f.encoder.started)

			status, err := capture.Status(ctx)
			require.NoError(t, err)
			assert.Equal(t, entity.CaptureIdle, status.State)
		})
	}
}

func TestCaptureService_StartRejectsEmptyRoute(t *testing.T) {
	f := newCaptureFixture(t, 10*time.Second)
	f.session = NewSessionService(f.cfg, newDiscardLogger())

	_, err := f.service().Start(context.Background())
	assert.True(t, errors.Is(err, domainerrors.ErrEmptyRoute))
	assert.False(t, f.encoder.started)
}

func TestCaptureService_StopIsIdempotent(t *testing.T) {
	f := newCaptureFixture(t, 10*time.Second)
	f.expectArtifact(entity.CaptureCancelled)

	ctx := context.Background()
	capture := f.service()

	_, err := capture.Start(ctx)
	require.NoError(t, err)
	assert.True(t, f.session.State().IsPlaying)

	_, err = capture.Start(ctx)
	assert.True(t, errors.Is(err, domainerrors.ErrCaptureInProgress))

	first, err := capture.Stop(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.CaptureCancelled, first.State)
	assert.True(t, first.Truncated)
	assert.NotEmpty(t, first.ArtifactKey)

	second, err := capture.Stop(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, entity.PlaybackStopped, f.session.State().Status())
	assert.Equal(t, 1, f.encoder.stops)
}

func TestCaptureService_TimeoutForcesStop(t *testing.T) {
	f := newCaptureFixture(t, 10*time.Second)
	f.cfg.Capture.Timeout = 100 * time.Millisecond
	f.expectArtifact(entity.CaptureCompleted)

	capture := f.service()
	_, err := capture.Start(context.Background())
	require.NoError(t, err)

	result := waitCapture(t, capture)

	assert.Equal(t, entity.CaptureCompleted, result.State)
	assert.True(t, result.Truncated)
	assert.Equal(t, domainerrors.ErrCaptureTimeout.Error(), result.Error)
	assert.Less(t, result.Progress, 0.99)
	assert.Equal(t, entity.PlaybackStopped, f.session.State().Status())
}

func TestCaptureService_StorageFailureFailsCapture(t *testing.T) {
	f := newCaptureFixture(t, 10*time.Second)
	f.artifacts.EXPECT().
		Save(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), errors.New("bucket unavailable")).
		Once()
	f.publisher.EXPECT().
		PublishCaptureEvent(mock.Anything, mock.MatchedBy(func(e *service.CaptureEvent) bool {
			return e.State == string(entity.CaptureFailed) && e.Error != ""
		})).
		Return(nil).
		Once()

	capture := f.service()
	_, err := capture.Start(context.Background())
	require.NoError(t, err)

	result, err := capture.Stop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.CaptureFailed, result.State)
	assert.Contains(t, result.Error, "bucket unavailable")
	assert.Empty(t, result.ArtifactKey)
}

func TestCaptureService_MissingArtifactFailsCapture(t *testing.T) {
	f := newCaptureFixture(t, 10*time.Second)
	f.encoder.empty = true
	f.publisher.EXPECT().
		PublishCaptureEvent(mock.Anything, mock.MatchedBy(func(e *service.CaptureEvent) bool {
			return e.State == string(entity.CaptureFailed)
		})).
		Return(nil).
		Once()

	capture := f.service()
	_, err := capture.Start(context.Background())
	require.NoError(t, err)

	result, err := capture.Stop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.CaptureFailed, result.State)
	assert.Contains(t, result.Error, "without an artifact")
	assert.Empty(t, result.ArtifactKey)
}

func TestCaptureService_StopWithoutCapture(t *testing.T) {
	f := newCaptureFixture(t, 10*time.Second)

	_, err := f.service().Stop(context.Background())
	assert.True(t, errors.Is(err, domainerrors.ErrCaptureNotRunning))
}

func TestCaptureService_OpenArtifactNotFound(t *testing.T) {
	f := newCaptureFixture(t, 10*time.Second)
	f.artifacts.EXPECT().
		Open(mock.Anything, "captures/missing.webm").
		Return(nil, repository.ErrArtifactNotFound).
		Once()

	_, err := f.service().OpenArtifact(context.Background(), "captures/missing.webm")
	assert.True(t, errors.Is(err, domainerrors.ErrArtifactNotFound))
}
