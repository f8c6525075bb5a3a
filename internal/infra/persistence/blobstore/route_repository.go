package blobstore

import (
	"context"
	"encoding/json"
	"io"
	"regexp"
	"sort"
	"strings"

	"routereel/internal/domain/entity"
	"routereel/internal/domain/repository"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
)

const (
	documentPrefix    = "routes/"
	documentExtension = ".json"
)

var documentNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ._-]{0,127}$`)

// routeRepository implements the repository.RouteRepository interface.
type routeRepository struct {
	bucket *blob.Bucket
}

// NewRouteRepository is the constructor for routeRepository.
func NewRouteRepository(buckets *Buckets) repository.RouteRepository {
	return &routeRepository{
		bucket: buckets.Documents,
	}
}

// Save writes the route as an indented JSON document.
func (repo *routeRepository) Save(ctx context.Context, name string, route *entity.Route) error {
	key, err := documentKey(name)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(route, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode route document")
	}

	if err := repo.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: "application/json"}); err != nil {
		return errors.Wrapf(err, "failed to write route document %q", name)
	}

	return nil
}

// Find loads the document stored under name.
func (repo *routeRepository) Find(ctx context.Context, name string) (*entity.Route, error) {
	key, err := documentKey(name)
	if err != nil {
		return nil, err
	}

	data, err := repo.bucket.ReadAll(ctx, key)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrDocumentNotFound
		}

		return nil, errors.Wrapf(err, "failed to read route document %q", name)
	}

	var route entity.Route
	if err := json.Unmarshal(data, &route); err != nil {
		return nil, errors.Wrapf(err, "failed to decode route document %q", name)
	}

	return &route, nil
}

// List returns every stored document ordered by name.
func (repo *routeRepository) List(ctx context.Context) ([]repository.DocumentInfo, error) {
	infos := make([]repository.DocumentInfo, 0)

	iter := repo.bucket.List(&blob.ListOptions{Prefix: documentPrefix})
	for {
		obj, err := iter.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list route documents")
		}
		if obj.IsDir || !strings.HasSuffix(obj.Key, documentExtension) {
			continue
		}

		name := strings.TrimSuffix(strings.TrimPrefix(obj.Key, documentPrefix), documentExtension)
		infos = append(infos, repository.DocumentInfo{
			Name:      name,
			Size:      obj.Size,
			UpdatedAt: obj.ModTime,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})

	return infos, nil
}

// Delete removes a document.
func (repo *routeRepository) Delete(ctx context.Context, name string) error {
	key, err := documentKey(name)
	if err != nil {
		return err
	}

	if err := repo.bucket.Delete(ctx, key); err != nil {
		if isNotFound(err) {
			return repository.ErrDocumentNotFound
		}

		return errors.Wrapf(err, "failed to delete route document %q", name)
	}

	return nil
}

func documentKey(name string) (string, error) {
	name = strings.TrimSpace(name)
	if !documentNamePattern.MatchString(name) || strings.Contains(name, "..") {
		return "", errors.Wrapf(repository.ErrInvalidName, "%q", name)
	}

	return documentPrefix + name + documentExtension, nil
}
