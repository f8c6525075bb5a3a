package pmtiles

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	"routereel/internal/domain/entity"
	"routereel/internal/errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryTiles serves tiles from a map and counts reads.
type memoryTiles struct {
	mu    sync.Mutex
	tiles map[string][]byte
	reads int
}

func (m *memoryTiles) Get(_ context.Context, path string) (int, map[string]string, []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++
	if data, ok := m.tiles[path]; ok {
		return http.StatusOK, nil, data
	}

	return http.StatusNotFound, nil, nil
}

func tilePath(tile maptile.Tile) string {
	return fmt.Sprintf("/roads/%d/%d/%d.mvt", tile.Z, tile.X, tile.Y)
}

// newTestOracle serves one tile with a one-way primary road running west to
// east through the middle of the tile.
func newTestOracle(t *testing.T) (*Oracle, *memoryTiles, maptile.Tile) {
	t.Helper()

	tile := testTile()
	data := encodeTile(t, tile, "transportation",
		road("primary", true, tilePoint(tile, 0.1, 0.5), tilePoint(tile, 0.5, 0.5), tilePoint(tile, 0.9, 0.5)),
	)
	tiles := &memoryTiles{tiles: map[string][]byte{tilePath(tile): data}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return newOracle(tiles, "roads", "", 0, logger), tiles, tile
}

func TestOracle_Route(t *testing.T) {
	oracle, _, tile := newTestOracle(t)
	start, end := tilePoint(tile, 0.1, 0.5), tilePoint(tile, 0.9, 0.5)

	routed, err := oracle.Route(context.Background(), start, end, entity.TransportModeCar)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(routed.Path), 4)
	assert.Equal(t, start, routed.Path[0])
	assert.Equal(t, end, routed.Path[len(routed.Path)-1])
	assert.False(t, routed.Fallback)

	require.NotNil(t, routed.Distance)
	require.NotNil(t, routed.Duration)
	// 80% of a z14 tile at this latitude is roughly 1.3km
	assert.InDelta(t, 1.3, *routed.Distance, 0.2)
	assert.InDelta(t, *routed.Distance/60*3600, *routed.Duration, 5)
}

func TestOracle_Route_OneWay(t *testing.T) {
	oracle, _, tile := newTestOracle(t)
	start, end := tilePoint(tile, 0.9, 0.5), tilePoint(tile, 0.1, 0.5)

	_, err := oracle.Route(context.Background(), start, end, entity.TransportModeCar)
	assert.True(t, errors.Is(err, ErrUnreachable))

	routed, err := oracle.Route(context.Background(), start, end, entity.TransportModeWalk)
	require.NoError(t, err)
	assert.InDelta(t, *routed.Distance/5*3600, *routed.Duration, 5)
}

func TestOracle_Route_Errors(t *testing.T) {
	oracle, _, tile := newTestOracle(t)

	_, err := oracle.Route(context.Background(), orb.Point{0, 0}, orb.Point{0, 1}, entity.TransportModeTrain)
	assert.True(t, errors.Is(err, ErrUnsupportedMode))

	_, err = oracle.Route(context.Background(), orb.Point{2, 48}, orb.Point{3, 49}, entity.TransportModeCar)
	assert.True(t, errors.Is(err, ErrAreaTooLarge))

	// far off the road, still inside the tile
	_, err = oracle.Route(context.Background(), tilePoint(tile, 0.5, 0.01), tilePoint(tile, 0.9, 0.5), entity.TransportModeCar)
	assert.True(t, errors.Is(err, ErrNoRoad))
}

func TestOracle_TileCache(t *testing.T) {
	oracle, tiles, tile := newTestOracle(t)
	start, end := tilePoint(tile, 0.1, 0.5), tilePoint(tile, 0.9, 0.5)

	_, err := oracle.Route(context.Background(), start, end, entity.TransportModeCar)
	require.NoError(t, err)
	first := tiles.reads

	_, err = oracle.Route(context.Background(), start, end, entity.TransportModeCar)
	require.NoError(t, err)

	// only the missing neighbours are read again
	assert.Less(t, tiles.reads-first, first)
	assert.Len(t, oracle.tileCache, 1)
}

func TestParseSourcePath(t *testing.T) {
	tests := []struct {
		source, bucket, name string
	}{
		{"file:///data/tiles/walking.pmtiles", "file:///data/tiles", "walking"},
		{"/data/tiles/roads.pmtiles", "file:///data/tiles", "roads"},
		{"https://example.com/tiles/planet.pmtiles", "https://example.com/tiles", "planet"},
	}

	for _, tt := range tests {
		bucket, name := parseSourcePath(tt.source)
		assert.Equal(t, tt.bucket, bucket, tt.source)
		assert.Equal(t, tt.name, name, tt.source)
	}
}

func TestTilesForBound(t *testing.T) {
	tile := testTile()
	bound := orb.Bound{Min: tilePoint(tile, 0.2, 0.8), Max: tilePoint(tile, 0.8, 0.2)}

	assert.Equal(t, []maptile.Tile{tile}, tilesForBound(bound, tile.Z))

	wide := bound.Pad(tile.Bound().Top() - tile.Bound().Bottom())
	assert.Len(t, tilesForBound(wide, tile.Z), 9)
}
