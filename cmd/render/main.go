package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"routereel/config"
	"routereel/internal/domain/constants"

	"github.com/pkg/errors"
)

// renderOptions are the command line options of the headless renderer.
type renderOptions struct {
	input    string
	output   string
	format   string
	fps      int
	duration time.Duration
	width    int
	height   int
	routing  string
	osrmURL  string
	pmtiles  string
	logLevel string
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseOptions(args []string, output io.Writer) (*renderOptions, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, "Usage: render -in route.json|route.geojson|route.gpx -out video.webm [options]")
		fmt.Fprintln(output, "")
		fs.PrintDefaults()
	}

	opts := &renderOptions{}
	fs.StringVar(&opts.input, "in", "", "Route document to render")
	fs.StringVar(&opts.output, "out", "", "Output video file")
	fs.StringVar(&opts.format, "format", "", "Input format (json, geojson, gpx), detected from the extension when empty")
	fs.IntVar(&opts.fps, "fps", 30, "Capture frame rate")
	fs.DurationVar(&opts.duration, "duration", 10*time.Second, "Length of the animation")
	fs.IntVar(&opts.width, "width", 1280, "Frame width in pixels")
	fs.IntVar(&opts.height, "height", 720, "Frame height in pixels")
	fs.StringVar(&opts.routing, "routing", constants.RoutingProviderStraight, "Routing provider (straight, osrm, pmtiles)")
	fs.StringVar(&opts.osrmURL, "osrm-url", "", "OSRM base URL for the osrm provider")
	fs.StringVar(&opts.pmtiles, "pmtiles", "", "PMTiles source for the pmtiles provider")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.input == "" {
		return nil, errors.New("-in is required")
	}
	if opts.output == "" {
		return nil, errors.New("-out is required")
	}
	if opts.fps <= 0 || opts.fps > 120 {
		return nil, errors.Errorf("-fps must be in 1..120, got %d", opts.fps)
	}
	if opts.duration <= 0 {
		return nil, errors.New("-duration must be positive")
	}
	if opts.width < 16 || opts.height < 16 || opts.width%2 != 0 || opts.height%2 != 0 {
		return nil, errors.Errorf("frame size %dx%d must be even and at least 16x16", opts.width, opts.height)
	}
	if opts.format == "" {
		format, err := formatFromPath(opts.input)
		if err != nil {
			return nil, err
		}
		opts.format = format
	}

	return opts, nil
}

func formatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return constants.FormatJSON, nil
	case ".geojson":
		return constants.FormatGeoJSON, nil
	case ".gpx":
		return constants.FormatGPX, nil
	default:
		return "", errors.Errorf("cannot detect the format of %q, use -format", path)
	}
}

// config builds the application configuration from defaults and the options.
func (o *renderOptions) config() (*config.Config, error) {
	cfg := config.Default()
	cfg.Env.Log.Level = o.logLevel
	cfg.Env.Log.Pretty = true

	cfg.Playback.Duration = o.duration
	cfg.Playback.Speed = 1
	cfg.Capture.FrameRate = o.fps
	cfg.Render.Width = o.width
	cfg.Render.Height = o.height
	cfg.Render.ShowLabels = true

	cfg.Routing.Provider = o.routing
	if o.osrmURL != "" {
		cfg.OSRM = &config.OSRMConfig{BaseURL: o.osrmURL}
	}
	if o.pmtiles != "" {
		cfg.PMTiles = &config.PMTilesConfig{Enabled: true, Source: o.pmtiles}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
