// Package render draws routes and playback frames onto an in-memory bitmap.
package render

import (
	"image"
	"image/draw"
	"sync"
	"time"

	"routereel/config"
	"routereel/internal/domain/entity"
	"routereel/internal/domain/service"
	"routereel/internal/domain/timeline"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	waypointRadius = 5.0
	progressHeight = 4.0
)

var pendingDash = []float64{10, 6}

var _ service.Surface = (*Surface)(nil)

// Surface renders onto an RGBA canvas of fixed size. It is safe for
// concurrent use: Render swaps in a finished bitmap, Snapshot copies it.
type Surface struct {
	cfg  config.RenderConfig
	face font.Face

	mu     sync.RWMutex
	canvas *image.RGBA

	// smoothed paths of the last route, rebuilt when the route changes
	cacheKey   routeKey
	cachePaths []orb.LineString
}

type routeKey struct {
	id        uuid.UUID
	updatedAt time.Time
	segments  int
}

// NewSurface creates a surface sized and styled by cfg.Render.
func NewSurface(cfg *config.Config) (*Surface, error) {
	if cfg.Render == nil {
		return nil, errors.New("render configuration is required")
	}
	renderCfg := *cfg.Render
	if renderCfg.Width <= 0 || renderCfg.Height <= 0 {
		return nil, errors.Errorf("invalid surface size %dx%d", renderCfg.Width, renderCfg.Height)
	}

	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse label font")
	}

	s := &Surface{
		cfg:    renderCfg,
		face:   truetype.NewFace(ttf, &truetype.Options{Size: renderCfg.FontSize}),
		canvas: image.NewRGBA(image.Rect(0, 0, renderCfg.Width, renderCfg.Height)),
	}

	dc := gg.NewContextForRGBA(s.canvas)
	dc.SetHexColor(renderCfg.Background)
	dc.Clear()

	return s, nil
}

// Size returns the bitmap dimensions.
func (s *Surface) Size() (width, height int) {
	return s.cfg.Width, s.cfg.Height
}

// Render draws the route, the travelled trail and the marker.
func (s *Surface) Render(route *entity.Route, frame *entity.Frame) error {
	dc := gg.NewContext(s.cfg.Width, s.cfg.Height)
	dc.SetHexColor(s.cfg.Background)
	dc.Clear()

	if route != nil && len(route.Waypoints) > 0 {
		paths := s.smoothedPaths(route)

		var frameTrail orb.LineString
		if frame != nil {
			frameTrail = frame.DrawnPath
		}
		view := newViewport(s.cfg, append(append([]orb.LineString(nil), paths...), waypointLine(route)))

		s.drawSegments(dc, view, route, paths)
		s.drawTrail(dc, view, frameTrail)
		s.drawWaypoints(dc, view, route)
		if frame != nil {
			s.drawMarker(dc, view, frame.MarkerPosition)
			s.drawProgress(dc, frame.Progress)
		}
	}

	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return errors.New("unexpected canvas type")
	}

	s.mu.Lock()
	s.canvas = img
	s.mu.Unlock()

	return nil
}

// Snapshot returns a copy of the last rendered bitmap.
func (s *Surface) Snapshot() image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := image.NewRGBA(s.canvas.Bounds())
	draw.Draw(out, out.Bounds(), s.canvas, image.Point{}, draw.Src)

	return out
}

func (s *Surface) smoothedPaths(route *entity.Route) []orb.LineString {
	key := routeKey{id: route.ID, updatedAt: route.UpdatedAt, segments: len(route.Segments)}

	s.mu.RLock()
	if s.cacheKey == key && s.cachePaths != nil {
		paths := s.cachePaths
		s.mu.RUnlock()

		return paths
	}
	s.mu.RUnlock()

	paths := make([]orb.LineString, len(route.Segments))
	for i, segment := range route.Segments {
		paths[i] = timeline.DisplayPath(segment)
	}

	s.mu.Lock()
	s.cacheKey = key
	s.cachePaths = paths
	s.mu.Unlock()

	return paths
}

func (s *Surface) drawSegments(dc *gg.Context, view viewport, route *entity.Route, paths []orb.LineString) {
	dc.SetHexColor(s.cfg.RouteColor)
	dc.SetLineWidth(s.cfg.LineWidth)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for i, path := range paths {
		if route.Segments[i].Pending || route.Segments[i].TransportMode.IsArc() {
			dc.SetDash(pendingDash...)
		} else {
			dc.SetDash()
		}
		strokePath(dc, view, path)
	}
	dc.SetDash()
}

func (s *Surface) drawTrail(dc *gg.Context, view viewport, trail orb.LineString) {
	if len(trail) < 2 {
		return
	}

	dc.SetHexColor(s.cfg.TrailColor)
	dc.SetLineWidth(s.cfg.LineWidth * 1.5)
	strokePath(dc, view, trail)
}

func (s *Surface) drawWaypoints(dc *gg.Context, view viewport, route *entity.Route) {
	dc.SetFontFace(s.face)

	for _, waypoint := range route.Waypoints {
		x, y := view.project(waypoint.Coordinates)

		dc.SetHexColor(s.cfg.RouteColor)
		dc.DrawCircle(x, y, waypointRadius)
		dc.Fill()

		if s.cfg.ShowLabels && waypoint.Label != "" {
			dc.SetHexColor(s.cfg.MarkerColor)
			dc.DrawStringAnchored(waypoint.Label, x, y-waypointRadius-4, 0.5, 0)
		}
	}
}

func (s *Surface) drawMarker(dc *gg.Context, view viewport, position orb.Point) {
	x, y := view.project(position)

	dc.SetHexColor(s.cfg.TrailColor)
	dc.DrawCircle(x, y, s.cfg.MarkerSize)
	dc.Fill()

	dc.SetHexColor(s.cfg.MarkerColor)
	dc.SetLineWidth(2)
	dc.DrawCircle(x, y, s.cfg.MarkerSize)
	dc.Stroke()
}

func (s *Surface) drawProgress(dc *gg.Context, progress float64) {
	progress = min(max(progress, 0), 1)
	if progress == 0 {
		return
	}

	dc.SetHexColor(s.cfg.TrailColor)
	dc.DrawRectangle(0, float64(s.cfg.Height)-progressHeight, float64(s.cfg.Width)*progress, progressHeight)
	dc.Fill()
}

func strokePath(dc *gg.Context, view viewport, path orb.LineString) {
	if len(path) < 2 {
		return
	}

	dc.NewSubPath()
	for i, p := range path {
		x, y := view.project(p)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()
}

func waypointLine(route *entity.Route) orb.LineString {
	line := make(orb.LineString, len(route.Waypoints))
	for i, waypoint := range route.Waypoints {
		line[i] = waypoint.Coordinates
	}

	return line
}
