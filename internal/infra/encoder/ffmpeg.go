// Package encoder streams rendered frames through ffmpeg into a WebM video.
package encoder

import (
	"bufio"
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"routereel/config"
	"routereel/internal/domain/constants"
	"routereel/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	defaultBinary  = "ffmpeg"
	stderrLimit    = 4 << 10
	stdinBufferLen = 1 << 20
)

var (
	// ErrNotRunning is returned by Feed and Stop without a preceding Start.
	ErrNotRunning = errors.New("encoder is not running")
	// ErrAlreadyRunning is returned by Start while a run is in progress.
	ErrAlreadyRunning = errors.New("encoder is already running")
	// ErrFrameSize is returned for frames that do not match the configured size.
	ErrFrameSize = errors.New("frame size does not match encoder options")
)

// FFmpeg pipes PNG frames into ffmpeg's image2pipe demuxer and collects the
// VP9 WebM stream it writes to stdout.
type FFmpeg struct {
	binary string
	logger *slog.Logger

	mu        sync.Mutex
	run       *encodeRun
	callbacks []func(*service.Artifact)
}

type encodeRun struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	buf    *bufio.Writer
	stdout bytes.Buffer
	stderr limitedBuffer
	opts   service.EncoderOptions
	frames int
	png    png.Encoder
}

// NewFFmpeg creates an encoder using the configured ffmpeg binary.
func NewFFmpeg(cfg *config.Config, logger *slog.Logger) *FFmpeg {
	binary := defaultBinary
	if cfg != nil && cfg.Capture != nil && cfg.Capture.FFmpegPath != "" {
		binary = cfg.Capture.FFmpegPath
	}

	return &FFmpeg{
		binary: binary,
		logger: logger,
	}
}

// Supported reports whether the ffmpeg binary can be found.
func (e *FFmpeg) Supported() error {
	if _, err := exec.LookPath(e.binary); err != nil {
		return errors.Wrapf(err, "ffmpeg binary %q not available", e.binary)
	}

	return nil
}

// Start launches ffmpeg. The process outlives ctx; Stop finalizes it.
func (e *FFmpeg) Start(ctx context.Context, opts service.EncoderOptions) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	if opts.Width <= 0 || opts.Height <= 0 || opts.FrameRate <= 0 {
		return errors.Errorf("invalid encoder options %dx%d@%d", opts.Width, opts.Height, opts.FrameRate)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.run != nil {
		return ErrAlreadyRunning
	}

	run := &encodeRun{
		opts: opts,
		png:  png.Encoder{CompressionLevel: png.BestSpeed},
	}
	run.cmd = exec.Command(e.binary, buildArgs(opts)...)
	run.cmd.Stdout = &run.stdout
	run.cmd.Stderr = &run.stderr

	stdin, err := run.cmd.StdinPipe()
	if err != nil {
		return errors.Wrap(err, "failed to open ffmpeg stdin")
	}
	run.stdin = stdin
	run.buf = bufio.NewWriterSize(stdin, stdinBufferLen)

	if err := run.cmd.Start(); err != nil {
		return errors.Wrap(err, "failed to start ffmpeg")
	}

	e.logger.Debug("ffmpeg started",
		slog.Int("width", opts.Width),
		slog.Int("height", opts.Height),
		slog.Int("fps", opts.FrameRate),
		slog.String("bitrate", opts.Bitrate),
	)
	e.run = run

	return nil
}

// Feed appends one frame.
func (e *FFmpeg) Feed(frame image.Image) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	run := e.run
	if run == nil {
		return ErrNotRunning
	}

	size := frame.Bounds().Size()
	if size.X != run.opts.Width || size.Y != run.opts.Height {
		return errors.Wrapf(ErrFrameSize, "got %dx%d, want %dx%d", size.X, size.Y, run.opts.Width, run.opts.Height)
	}

	if err := run.png.Encode(run.buf, frame); err != nil {
		return errors.Wrapf(err, "failed to write frame %d: %s", run.frames, run.stderr.String())
	}
	run.frames++

	return nil
}

// Stop closes the input stream and waits for ffmpeg to finish the file. If
// ctx ends first the process is killed.
func (e *FFmpeg) Stop(ctx context.Context) (*service.Artifact, error) {
	e.mu.Lock()
	run := e.run
	e.run = nil
	callbacks := append([]func(*service.Artifact){}, e.callbacks...)
	e.mu.Unlock()

	if run == nil {
		return nil, ErrNotRunning
	}

	flushErr := run.buf.Flush()
	closeErr := run.stdin.Close()

	done := make(chan error, 1)
	go func() {
		done <- run.cmd.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			return nil, errors.Wrapf(err, "ffmpeg failed: %s", run.stderr.String())
		}
	case <-ctx.Done():
		_ = run.cmd.Process.Kill()
		<-done

		return nil, errors.Wrap(ctx.Err(), "ffmpeg did not finish in time")
	}

	if flushErr != nil {
		return nil, errors.Wrap(flushErr, "failed to flush frames")
	}
	if closeErr != nil {
		return nil, errors.Wrap(closeErr, "failed to close ffmpeg stdin")
	}

	artifact := &service.Artifact{
		ContentType: constants.ArtifactContentType,
		Extension:   constants.ArtifactExtension,
		Frames:      run.frames,
		Data:        run.stdout.Bytes(),
	}

	e.logger.Debug("ffmpeg finished",
		slog.Int("frames", artifact.Frames),
		slog.Int("bytes", len(artifact.Data)),
	)

	for _, fn := range callbacks {
		fn(artifact)
	}

	return artifact, nil
}

// OnComplete registers fn for every finished artifact.
func (e *FFmpeg) OnComplete(fn func(*service.Artifact)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.callbacks = append(e.callbacks, fn)
}

func buildArgs(opts service.EncoderOptions) []string {
	bitrate := opts.Bitrate
	if strings.TrimSpace(bitrate) == "" {
		bitrate = "4M"
	}

	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-f", "image2pipe",
		"-c:v", "png",
		"-framerate", strconv.Itoa(opts.FrameRate),
		"-i", "pipe:0",
		"-c:v", "libvpx-vp9",
		"-b:v", bitrate,
		"-pix_fmt", "yuv420p",
		"-deadline", "realtime",
		"-cpu-used", "8",
		"-f", "webm",
		"pipe:1",
	}
}

// limitedBuffer keeps the first stderrLimit bytes of ffmpeg's diagnostics.
type limitedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if room := stderrLimit - b.buf.Len(); room > 0 {
		b.buf.Write(p[:min(len(p), room)])
	}

	return len(p), nil
}

func (b *limitedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return strings.TrimSpace(b.buf.String())
}
