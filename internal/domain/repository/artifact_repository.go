package repository

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

// ErrArtifactNotFound is returned when no artifact exists for a key.
var ErrArtifactNotFound = errors.New("artifact not found")

// ArtifactRepository stores finished capture artifacts.
type ArtifactRepository interface {
	// Save stores data under key and returns the number of bytes written.
	Save(ctx context.Context, key, contentType string, data io.Reader) (int64, error)

	// Open streams a stored artifact. Callers close the reader.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an artifact.
	Delete(ctx context.Context, key string) error
}
