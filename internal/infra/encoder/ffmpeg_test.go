package encoder

import (
	"context"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"routereel/config"
	"routereel/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFFmpeg writes a shell script that drains stdin and prints a marker,
// standing in for the real binary.
func fakeFFmpeg(t *testing.T, body string) *FFmpeg {
	t.Helper()

	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("requires /bin/sh")
	}

	path := filepath.Join(t.TempDir(), "ffmpeg")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))

	return NewFFmpeg(&config.Config{Capture: &config.CaptureConfig{FFmpegPath: path}},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testOptions() service.EncoderOptions {
	return service.EncoderOptions{Width: 8, Height: 4, FrameRate: 30, Bitrate: "1M"}
}

func TestFFmpeg_Supported(t *testing.T) {
	missing := NewFFmpeg(&config.Config{Capture: &config.CaptureConfig{FFmpegPath: "/nonexistent/ffmpeg"}},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, missing.Supported())

	assert.NoError(t, fakeFFmpeg(t, "exit 0").Supported())
}

func TestFFmpeg_EncodeRun(t *testing.T) {
	enc := fakeFFmpeg(t, `cat > /dev/null; printf webm`)

	var completed *service.Artifact
	enc.OnComplete(func(a *service.Artifact) { completed = a })

	require.NoError(t, enc.Start(context.Background(), testOptions()))
	assert.ErrorIs(t, enc.Start(context.Background(), testOptions()), ErrAlreadyRunning)

	frame := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for range 3 {
		require.NoError(t, enc.Feed(frame))
	}
	assert.ErrorIs(t, enc.Feed(image.NewRGBA(image.Rect(0, 0, 2, 2))), ErrFrameSize)

	artifact, err := enc.Stop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "video/webm", artifact.ContentType)
	assert.Equal(t, ".webm", artifact.Extension)
	assert.Equal(t, 3, artifact.Frames)
	assert.Equal(t, []byte("webm"), artifact.Data)
	assert.Same(t, artifact, completed)

	_, err = enc.Stop(context.Background())
	assert.ErrorIs(t, err, ErrNotRunning)
	assert.ErrorIs(t, enc.Feed(frame), ErrNotRunning)
}

func TestFFmpeg_ProcessFailure(t *testing.T) {
	enc := fakeFFmpeg(t, `cat > /dev/null; echo "Unknown encoder" >&2; exit 1`)

	require.NoError(t, enc.Start(context.Background(), testOptions()))

	_, err := enc.Stop(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown encoder")
}

func TestFFmpeg_StopTimeoutKills(t *testing.T) {
	enc := fakeFFmpeg(t, `exec sleep 30`)

	require.NoError(t, enc.Start(context.Background(), testOptions()))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := enc.Stop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestFFmpeg_StartValidation(t *testing.T) {
	enc := fakeFFmpeg(t, "exit 0")

	assert.Error(t, enc.Start(context.Background(), service.EncoderOptions{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, enc.Start(ctx, testOptions()))
}

func TestBuildArgs(t *testing.T) {
	args := buildArgs(service.EncoderOptions{FrameRate: 24})

	assert.Contains(t, args, "image2pipe")
	assert.Contains(t, args, "libvpx-vp9")
	assert.Contains(t, args, "24")
	assert.Contains(t, args, "4M")
	assert.Equal(t, "pipe:1", args[len(args)-1])
}
