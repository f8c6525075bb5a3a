package service

import (
	"routereel/internal/domain/entity"
)

// RouteCodec converts routes to and from one document format
type RouteCodec interface {
	// Format is the short name used in export requests, e.g. "gpx"
	Format() string

	// ContentType is the MIME type of encoded documents
	ContentType() string

	Encode(route *entity.Route) ([]byte, error)

	// Decode parses a document. Formats that carry no segment information
	// return a route without segments; callers rebuild them from the waypoints.
	Decode(data []byte) (*entity.Route, error)
}
