package service

import (
	"context"
	"image"
)

// EncoderOptions configures one encoding run
type EncoderOptions struct {
	Width     int
	Height    int
	FrameRate int
	Bitrate   string // e.g. "4M"
}

// Artifact is a finished media file
type Artifact struct {
	ContentType string
	Extension   string
	Frames      int
	Data        []byte
}

// Encoder turns a stream of bitmaps into a single media artifact
type Encoder interface {
	// Supported reports whether the encoder can run in this environment
	Supported() error

	// Start begins a new encoding run
	Start(ctx context.Context, opts EncoderOptions) error

	// Feed appends one frame
	Feed(frame image.Image) error

	// Stop finalizes the stream and returns the artifact
	Stop(ctx context.Context) (*Artifact, error)

	// OnComplete registers a callback invoked with every finished artifact
	OnComplete(fn func(*Artifact))
}
