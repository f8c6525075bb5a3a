package blobstore

import (
	"context"
	"io"

	"routereel/internal/domain/repository"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
)

// artifactRepository implements the repository.ArtifactRepository interface.
type artifactRepository struct {
	bucket *blob.Bucket
}

// NewArtifactRepository is the constructor for artifactRepository.
func NewArtifactRepository(buckets *Buckets) repository.ArtifactRepository {
	return &artifactRepository{
		bucket: buckets.Artifacts,
	}
}

// Save streams data into the bucket.
func (repo *artifactRepository) Save(ctx context.Context, key, contentType string, data io.Reader) (int64, error) {
	w, err := repo.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open artifact %q for writing", key)
	}

	n, err := io.Copy(w, data)
	if err != nil {
		_ = w.Close()

		return 0, errors.Wrapf(err, "failed to write artifact %q", key)
	}

	if err := w.Close(); err != nil {
		return 0, errors.Wrapf(err, "failed to commit artifact %q", key)
	}

	return n, nil
}

// Open streams a stored artifact.
func (repo *artifactRepository) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	r, err := repo.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrArtifactNotFound
		}

		return nil, errors.Wrapf(err, "failed to open artifact %q", key)
	}

	return r, nil
}

// Delete removes an artifact.
func (repo *artifactRepository) Delete(ctx context.Context, key string) error {
	if err := repo.bucket.Delete(ctx, key); err != nil {
		if isNotFound(err) {
			return repository.ErrArtifactNotFound
		}

		return errors.Wrapf(err, "failed to delete artifact %q", key)
	}

	return nil
}
