// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"routereel/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for route document persistence.
var (
	// ErrDocumentNotFound is returned when no document is stored under a name.
	ErrDocumentNotFound = errors.New("route document not found")
	// ErrInvalidName is returned for names that cannot be used as storage keys.
	ErrInvalidName = errors.New("invalid document name")
)

// DocumentInfo describes a stored route document.
type DocumentInfo struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RouteRepository stores route documents by name.
type RouteRepository interface {
	// Save writes the route under the given name, replacing any previous document.
	Save(ctx context.Context, name string, route *entity.Route) error

	// Find loads the document stored under name.
	Find(ctx context.Context, name string) (*entity.Route, error)

	// List returns every stored document ordered by name.
	List(ctx context.Context) ([]DocumentInfo, error)

	// Delete removes a document.
	Delete(ctx context.Context, name string) error
}
