package usecase

import (
	"context"

	"routereel/internal/domain/entity"
	"routereel/internal/domain/repository"
)

// ExportedDocument is a route serialized into one of the supported formats
type ExportedDocument struct {
	Format      string
	ContentType string
	Filename    string
	Data        []byte
}

// DocumentUsecase saves, loads and converts route documents
type DocumentUsecase interface {
	Save(ctx context.Context, name string) (*repository.DocumentInfo, error)
	Load(ctx context.Context, name string) (*entity.Route, error)
	List(ctx context.Context) ([]repository.DocumentInfo, error)
	Delete(ctx context.Context, name string) error

	// Export serializes the current route
	Export(ctx context.Context, format string) (*ExportedDocument, error)

	// Import parses a document and makes it the current route
	Import(ctx context.Context, format string, data []byte) (*entity.Route, error)
}
