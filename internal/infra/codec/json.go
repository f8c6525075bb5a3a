package codec

import (
	"encoding/json"

	"routereel/internal/domain/constants"
	"routereel/internal/domain/entity"
	"routereel/internal/domain/service"

	"github.com/pkg/errors"
)

// JSONCodec reads and writes the native route document.
type JSONCodec struct{}

// NewJSONCodec creates the native document codec.
func NewJSONCodec() service.RouteCodec {
	return JSONCodec{}
}

func (JSONCodec) Format() string { return constants.FormatJSON }

func (JSONCodec) ContentType() string { return "application/json" }

func (JSONCodec) Encode(route *entity.Route) ([]byte, error) {
	data, err := json.MarshalIndent(route, "", "  ")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return data, nil
}

func (JSONCodec) Decode(data []byte) (*entity.Route, error) {
	var route entity.Route
	if err := json.Unmarshal(data, &route); err != nil {
		return nil, errors.Wrap(err, "invalid route document")
	}
	if len(route.Waypoints) == 0 {
		return nil, ErrEmptyDocument
	}

	sortWaypoints(route.Waypoints)
	if route.Segments == nil {
		route.Segments = []entity.Segment{}
	}

	return &route, nil
}
