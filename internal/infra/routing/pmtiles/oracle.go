// Package pmtiles routes ground segments over road networks read from
// PMTiles vector tile archives.
package pmtiles

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"routereel/config"
	"routereel/internal/domain/entity"
	"routereel/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/pkg/errors"
	"github.com/protomaps/go-pmtiles/pmtiles"
	"go.uber.org/fx"
)

const (
	defaultRoadLayer = "transportation"
	defaultZoomLevel = 14
	maxSnapMeters    = 500
	maxTiles         = 64
	paddingDegrees   = 0.005 // ~500m
	tileCacheSize    = 64
)

var (
	// ErrUnsupportedMode is returned for modes without a road profile.
	ErrUnsupportedMode = errors.New("transport mode has no road profile")
	// ErrAreaTooLarge is returned when a segment spans more tiles than allowed.
	ErrAreaTooLarge = errors.New("segment spans too many tiles")
	// ErrNoRoad is returned when an endpoint is too far from any road.
	ErrNoRoad = errors.New("no road near endpoint")
	// ErrUnreachable is returned when the endpoints are not connected.
	ErrUnreachable = errors.New("no road connection between endpoints")
)

// tileReader is the part of *pmtiles.Server the oracle needs.
type tileReader interface {
	Get(ctx context.Context, path string) (int, map[string]string, []byte)
}

// Oracle implements service.RoutingOracle over a PMTiles road layer
type Oracle struct {
	source      string
	tilesetName string
	zoomLevel   int
	reader      tileReader
	parser      *MVTParser
	logger      *slog.Logger

	tileCache   map[string][]RoadSegment
	tileCacheMu sync.RWMutex
}

// OracleParams holds dependencies for the PMTiles oracle
type OracleParams struct {
	fx.In

	Config *config.PMTilesConfig `optional:"true"`
	Logger *slog.Logger
}

// NewOracle opens the configured archive.
func NewOracle(params OracleParams) (*Oracle, error) {
	cfg := params.Config
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("PMTiles routing is disabled")
	}
	if cfg.Source == "" {
		return nil, errors.New("PMTiles source is required when enabled")
	}

	bucketPath, tilesetName := parseSourcePath(cfg.Source)

	// pmtiles wants a *log.Logger
	silentLogger := log.New(io.Discard, "", 0)
	server, err := pmtiles.NewServer(bucketPath, "", silentLogger, tileCacheSize, "")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PMTiles server")
	}
	server.Start()

	oracle := newOracle(server, tilesetName, cfg.RoadLayer, cfg.ZoomLevel, params.Logger)
	oracle.source = cfg.Source

	params.Logger.Info("PMTiles routing initialized",
		slog.String("source", cfg.Source),
		slog.String("tileset", tilesetName),
		slog.String("road_layer", oracle.parser.roadLayerName),
		slog.Int("zoom_level", oracle.zoomLevel),
	)

	return oracle, nil
}

func newOracle(reader tileReader, tilesetName, roadLayer string, zoomLevel int, logger *slog.Logger) *Oracle {
	if roadLayer == "" {
		roadLayer = defaultRoadLayer
	}
	if zoomLevel <= 0 {
		zoomLevel = defaultZoomLevel
	}

	return &Oracle{
		tilesetName: tilesetName,
		zoomLevel:   zoomLevel,
		reader:      reader,
		parser:      NewMVTParser(roadLayer),
		logger:      logger,
		tileCache:   make(map[string][]RoadSegment),
	}
}

// Route finds the shortest road path between start and end for mode. The
// returned path begins at start and ends at end; the snap legs are included
// in the distance.
func (o *Oracle) Route(ctx context.Context, start, end orb.Point, mode entity.TransportMode) (*service.RoutedPath, error) {
	profile, ok := ProfileFor(mode)
	if !ok {
		return nil, errors.Wrap(ErrUnsupportedMode, string(mode))
	}

	bound := orb.MultiPoint{start, end}.Bound().Pad(paddingDegrees)
	tiles := tilesForBound(bound, maptile.Zoom(o.zoomLevel))
	if len(tiles) > maxTiles {
		return nil, errors.Wrapf(ErrAreaTooLarge, "%d tiles", len(tiles))
	}

	graph := NewRoadGraph()
	for _, tile := range tiles {
		segments, err := o.loadTile(ctx, tile)
		if err != nil {
			o.logger.Debug("Failed to load tile", slog.String("tile", tileKey(tile)), slog.Any("error", err))

			continue
		}
		for i := range segments {
			segment := segments[i]
			if !profile.Allows(segment.Class) {
				continue
			}
			if profile.IgnoreOneWay {
				segment.OneWay = false
			}
			graph.AddSegment(&segment, profile.Speed(&segment))
		}
	}

	from, fromSnap, ok := graph.NearestNode(start)
	if !ok || fromSnap > maxSnapMeters {
		return nil, errors.Wrap(ErrNoRoad, "start")
	}
	to, toSnap, ok := graph.NearestNode(end)
	if !ok || toSnap > maxSnapMeters {
		return nil, errors.Wrap(ErrNoRoad, "end")
	}

	result := NewPathfinder(graph).ShortestPath(from, to)
	if !result.IsReachable {
		return nil, ErrUnreachable
	}

	path := make(orb.LineString, 0, len(result.Nodes)+2)
	path = append(path, start)
	path = append(path, result.Points(graph)...)
	path = append(path, end)

	snapSpeed := profile.SpeedKmh
	if snapSpeed <= 0 {
		snapSpeed = defaultSpeedKmh
	}
	distanceKm := (result.Distance + fromSnap + toSnap) / 1000
	durationSec := result.Duration + (fromSnap+toSnap)/1000/snapSpeed*3600

	return &service.RoutedPath{
		Path:     path,
		Distance: &distanceKm,
		Duration: &durationSec,
	}, nil
}

func (o *Oracle) loadTile(ctx context.Context, tile maptile.Tile) ([]RoadSegment, error) {
	key := tileKey(tile)

	o.tileCacheMu.RLock()
	segments, ok := o.tileCache[key]
	o.tileCacheMu.RUnlock()
	if ok {
		return segments, nil
	}

	data, err := o.fetchTile(ctx, tile)
	if err != nil {
		return nil, err
	}

	segments, err = o.parser.ParseTile(data, tile)
	if err != nil {
		return nil, err
	}

	o.tileCacheMu.Lock()
	o.tileCache[key] = segments
	o.tileCacheMu.Unlock()

	return segments, nil
}

// fetchTile reads /{tileset}/{z}/{x}/{y}.mvt through the pmtiles server,
// which issues range requests for remote archives.
func (o *Oracle) fetchTile(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	tilePath := fmt.Sprintf("/%s/%d/%d/%d.mvt", o.tilesetName, tile.Z, tile.X, tile.Y)

	status, _, data := o.reader.Get(ctx, tilePath)
	switch status {
	case http.StatusOK:
		return data, nil
	case http.StatusNoContent, http.StatusNotFound:
		return nil, errors.New("tile not found")
	default:
		return nil, errors.Errorf("unexpected status code: %d", status)
	}
}

func tileKey(tile maptile.Tile) string {
	return fmt.Sprintf("%d/%d/%d", tile.Z, tile.X, tile.Y)
}

// tilesForBound returns every tile covering the bound.
func tilesForBound(bound orb.Bound, zoom maptile.Zoom) []maptile.Tile {
	minTile := maptile.At(orb.Point{bound.Min.Lon(), bound.Max.Lat()}, zoom)
	maxTile := maptile.At(orb.Point{bound.Max.Lon(), bound.Min.Lat()}, zoom)

	tiles := make([]maptile.Tile, 0, int(maxTile.X-minTile.X+1)*int(maxTile.Y-minTile.Y+1))
	for x := minTile.X; x <= maxTile.X; x++ {
		for y := minTile.Y; y <= maxTile.Y; y++ {
			tiles = append(tiles, maptile.Tile{X: x, Y: y, Z: zoom})
		}
	}

	return tiles
}

// parseSourcePath splits a source into the bucket directory and tileset name.
// Examples:
//   - "file:///path/to/walking.pmtiles" -> ("file:///path/to", "walking")
//   - "/path/to/walking.pmtiles" -> ("file:///path/to", "walking")
//   - "https://example.com/tiles/walking.pmtiles" -> ("https://example.com/tiles", "walking")
func parseSourcePath(source string) (bucketPath, tilesetName string) {
	if path, ok := strings.CutPrefix(source, "file://"); ok {
		return "file://" + filepath.Dir(path), strings.TrimSuffix(filepath.Base(path), ".pmtiles")
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if lastSlash := strings.LastIndex(source, "/"); lastSlash > 0 {
			return source[:lastSlash], strings.TrimSuffix(source[lastSlash+1:], ".pmtiles")
		}
	}

	return "file://" + filepath.Dir(source), strings.TrimSuffix(filepath.Base(source), ".pmtiles")
}
