package impl

import (
	"context"
	"image"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"routereel/config"
	"routereel/internal/domain/entity"
	"routereel/internal/domain/service"
	"routereel/internal/usecase"

	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(duration time.Duration) *config.Config {
	return &config.Config{
		Playback: &config.PlaybackConfig{
			Duration:    duration,
			Speed:       1,
			RefreshRate: 100,
		},
		Capture: &config.CaptureConfig{
			FrameRate:           30,
			Bitrate:             "1M",
			CompletionThreshold: 0.99,
			GracePeriod:         50 * time.Millisecond,
			Timeout:             5 * time.Second,
		},
		Routing: &config.RoutingConfig{
			MaxConcurrency: 2,
			Timeout:        time.Second,
		},
	}
}

// newSessionWithRoute builds a session holding a route through the given
// lon/lat pairs.
func newSessionWithRoute(t *testing.T, duration time.Duration, points ...[2]float64) usecase.SessionUsecase {
	t.Helper()

	session := NewSessionService(newTestConfig(duration), newDiscardLogger())
	for _, p := range points {
		_, err := session.AddWaypoint(context.Background(), &usecase.AddWaypointInput{Longitude: p[0], Latitude: p[1]})
		require.NoError(t, err)
	}

	return session
}

// fakeSurface records how often it was rendered.
type fakeSurface struct {
	mu      sync.Mutex
	renders int
	last    *entity.Frame
	img     *image.RGBA
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{img: image.NewRGBA(image.Rect(0, 0, 64, 36))}
}

func (s *fakeSurface) Render(_ *entity.Route, frame *entity.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.renders++
	s.last = frame

	return nil
}

func (s *fakeSurface) Snapshot() image.Image { return s.img }

func (s *fakeSurface) Size() (int, int) { return 64, 36 }

func (s *fakeSurface) renderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.renders
}

// fakeEncoder counts frames fed between Start and Stop.
type fakeEncoder struct {
	mu         sync.Mutex
	supported  error
	started    bool
	opts       service.EncoderOptions
	frames     int
	stops      int
	empty      bool
	onComplete func(*service.Artifact)
}

func (e *fakeEncoder) Supported() error { return e.supported }

func (e *fakeEncoder) Start(_ context.Context, opts service.EncoderOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.started = true
	e.opts = opts
	e.frames = 0

	return nil
}

func (e *fakeEncoder) Feed(_ image.Image) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.frames++

	return nil
}

func (e *fakeEncoder) Stop(_ context.Context) (*service.Artifact, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.started = false
	e.stops++
	if e.empty {
		return nil, nil
	}
	artifact := &service.Artifact{
		ContentType: "video/webm",
		Extension:   ".webm",
		Frames:      e.frames,
		Data:        []byte("webm"),
	}
	if e.onComplete != nil {
		e.onComplete(artifact)
	}

	return artifact, nil
}

func (e *fakeEncoder) OnComplete(fn func(*service.Artifact)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.onComplete = fn
}

func (e *fakeEncoder) frameCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.frames
}

// manualTicks is a tick source fed by the test. Sends block until the
// consumer receives, so a send also proves the previous tick was handled.
type manualTicks struct {
	ch chan time.Duration
}

func newManualTicks() *manualTicks {
	return &manualTicks{ch: make(chan time.Duration)}
}

func (m *manualTicks) Ticks(_ context.Context) <-chan time.Duration {
	return m.ch
}
