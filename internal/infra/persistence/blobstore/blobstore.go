// Package blobstore implements the persistence layer on gocloud.dev blob buckets.
package blobstore

import (
	"context"
	"log/slog"

	"routereel/config"
	"routereel/internal/domain/lifecycle"
	"routereel/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"
)

// Buckets holds the opened document and artifact buckets.
type Buckets struct {
	Documents *blob.Bucket
	Artifacts *blob.Bucket
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens both buckets and closes them when the application stops.
func New(params Params) (*Buckets, error) {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	buckets, err := Open(ctx, params.Config.Storage)
	if err != nil {
		return nil, err
	}

	params.Logger.Info("Blob storage opened",
		slog.String("documents", params.Config.Storage.DocumentsURL),
		slog.String("artifacts", params.Config.Storage.ArtifactsURL),
	)

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return buckets.Close()
		},
	})

	return buckets, nil
}

// Open opens the buckets named by cfg.
func Open(ctx context.Context, cfg *config.StorageConfig) (*Buckets, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}

	documents, err := blob.OpenBucket(ctx, cfg.DocumentsURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open documents bucket %q", cfg.DocumentsURL)
	}

	artifacts, err := blob.OpenBucket(ctx, cfg.ArtifactsURL)
	if err != nil {
		_ = documents.Close()

		return nil, errors.Wrapf(err, "failed to open artifacts bucket %q", cfg.ArtifactsURL)
	}

	return &Buckets{Documents: documents, Artifacts: artifacts}, nil
}

// Close closes both buckets.
func (b *Buckets) Close() error {
	return errors.Join(b.Documents.Close(), b.Artifacts.Close())
}

func isNotFound(err error) bool {
	return gcerrors.Code(err) == gcerrors.NotFound
}
