package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "1MB"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port" validate:"gte=0,lte=65535"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Playback configuration for the animation engine
	Playback *PlaybackConfig `json:"playback" yaml:"playback" validate:"required"`

	// Capture configuration for video export
	Capture *CaptureConfig `json:"capture" yaml:"capture" validate:"required"`

	// Render configuration for the drawing surface
	Render *RenderConfig `json:"render" yaml:"render" validate:"required"`

	// Routing configuration for segment path resolution
	Routing *RoutingConfig `json:"routing" yaml:"routing" validate:"required"`

	// OSRM configuration for the HTTP routing oracle
	OSRM *OSRMConfig `json:"osrm" yaml:"osrm"`

	// PMTiles configuration for offline road-graph routing
	PMTiles *PMTilesConfig `json:"pmtiles" yaml:"pmtiles"`

	// Storage configuration for route documents and artifacts
	Storage *StorageConfig `json:"storage" yaml:"storage" validate:"required"`

	// PubSub configuration for event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// PlaybackConfig defines the default playback behaviour
type PlaybackConfig struct {
	// Length of a full run at speed 1
	Duration time.Duration `json:"duration" yaml:"duration" validate:"gt=0"`

	// Initial speed multiplier
	Speed float64 `json:"speed" yaml:"speed" validate:"gt=0"`

	// Animator tick rate in Hz
	RefreshRate int `json:"refreshRate" yaml:"refreshRate" validate:"gt=0,lte=240"`
}

// CaptureConfig defines video capture behaviour
type CaptureConfig struct {
	FrameRate int    `json:"frameRate" yaml:"frameRate" validate:"gt=0,lte=120"`
	Bitrate   string `json:"bitrate" yaml:"bitrate" validate:"required"`

	// Progress at which the run is considered finished
	CompletionThreshold float64 `json:"completionThreshold" yaml:"completionThreshold" validate:"gt=0,lte=1"`

	// Extra sampling time after completion to flush trailing frames
	GracePeriod time.Duration `json:"gracePeriod" yaml:"gracePeriod" validate:"gte=0"`

	// Hard limit for one capture
	Timeout time.Duration `json:"timeout" yaml:"timeout" validate:"gt=0"`

	// ffmpeg binary used by the encoder
	FFmpegPath string `json:"ffmpegPath" yaml:"ffmpegPath" validate:"required"`
}

// RenderConfig defines the drawing surface
type RenderConfig struct {
	Width       int     `json:"width" yaml:"width" validate:"gt=0,lte=7680"`
	Height      int     `json:"height" yaml:"height" validate:"gt=0,lte=4320"`
	Padding     float64 `json:"padding" yaml:"padding" validate:"gte=0"`
	LineWidth   float64 `json:"lineWidth" yaml:"lineWidth" validate:"gt=0"`
	MarkerSize  float64 `json:"markerSize" yaml:"markerSize" validate:"gt=0"`
	FontSize    float64 `json:"fontSize" yaml:"fontSize" validate:"gt=0"`
	ShowLabels  bool    `json:"showLabels" yaml:"showLabels"`
	Background  string  `json:"background" yaml:"background" validate:"hexcolor"`
	RouteColor  string  `json:"routeColor" yaml:"routeColor" validate:"hexcolor"`
	TrailColor  string  `json:"trailColor" yaml:"trailColor" validate:"hexcolor"`
	MarkerColor string  `json:"markerColor" yaml:"markerColor" validate:"hexcolor"`
}

// RoutingConfig defines how pending segment paths are resolved
type RoutingConfig struct {
	// Provider type: "osrm", "pmtiles" or "straight"
	Provider string `json:"provider" yaml:"provider" validate:"oneof=osrm pmtiles straight"`

	// Per-lookup timeout
	Timeout time.Duration `json:"timeout" yaml:"timeout" validate:"gt=0"`

	// Maximum number of concurrent lookups when refreshing a route
	MaxConcurrency int `json:"maxConcurrency" yaml:"maxConcurrency" validate:"gt=0"`

	// Speed in km/h used to estimate durations for straight-line paths
	DefaultSpeedKmh float64 `json:"defaultSpeedKmh" yaml:"defaultSpeedKmh" validate:"gt=0"`
}

// OSRMConfig defines the OSRM HTTP routing oracle
type OSRMConfig struct {
	BaseURL string `json:"baseUrl" yaml:"baseUrl" validate:"omitempty,url"`
}

// PMTilesConfig defines PMTiles routing configuration
type PMTilesConfig struct {
	// Enable PMTiles-based routing
	Enabled bool `json:"enabled" yaml:"enabled"`

	// PMTiles source URL (local file path, HTTP URL, or GCS URL)
	Source string `json:"source" yaml:"source"`

	// Road layer name in the MVT tiles
	RoadLayer string `json:"roadLayer" yaml:"roadLayer"`

	// Zoom level for tile queries
	ZoomLevel int `json:"zoomLevel" yaml:"zoomLevel" validate:"gte=0,lte=22"`
}

// StorageConfig defines the blob buckets (file:// or mem://)
type StorageConfig struct {
	DocumentsURL string `json:"documentsUrl" yaml:"documentsUrl" validate:"required"`
	ArtifactsURL string `json:"artifactsUrl" yaml:"artifactsUrl" validate:"required"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider" validate:"omitempty,oneof=local google"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: CAPTURE_FRAMERATE -> capture.frameRate (not capture.framerate)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// New loads config.yaml from the usual search paths, fills defaults and
// validates the result.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns a configuration made only of defaults, for headless tools
// running without a config file.
func Default() *Config {
	cfg := new(Config)
	applyDefaults(cfg)

	return cfg
}

// Validate checks every section against its constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Env.ServiceName == "" {
		cfg.Env.ServiceName = "routereel"
	}
	if cfg.Env.Log.Level == "" {
		cfg.Env.Log.Level = "info"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Playback == nil {
		cfg.Playback = new(PlaybackConfig)
	}
	setDuration(&cfg.Playback.Duration, 10*time.Second)
	setFloat(&cfg.Playback.Speed, 1)
	setInt(&cfg.Playback.RefreshRate, 60)

	if cfg.Capture == nil {
		cfg.Capture = new(CaptureConfig)
	}
	setInt(&cfg.Capture.FrameRate, 30)
	setString(&cfg.Capture.Bitrate, "4M")
	setFloat(&cfg.Capture.CompletionThreshold, 0.99)
	setDuration(&cfg.Capture.GracePeriod, 500*time.Millisecond)
	setDuration(&cfg.Capture.Timeout, 5*time.Minute)
	setString(&cfg.Capture.FFmpegPath, "ffmpeg")

	if cfg.Render == nil {
		cfg.Render = new(RenderConfig)
	}
	setInt(&cfg.Render.Width, 1280)
	setInt(&cfg.Render.Height, 720)
	setFloat(&cfg.Render.Padding, 48)
	setFloat(&cfg.Render.LineWidth, 4)
	setFloat(&cfg.Render.MarkerSize, 9)
	setFloat(&cfg.Render.FontSize, 18)
	setString(&cfg.Render.Background, "#10141c")
	setString(&cfg.Render.RouteColor, "#5a6478")
	setString(&cfg.Render.TrailColor, "#ff7a45")
	setString(&cfg.Render.MarkerColor, "#ffffff")

	if cfg.Routing == nil {
		cfg.Routing = new(RoutingConfig)
	}
	setString(&cfg.Routing.Provider, "straight")
	setDuration(&cfg.Routing.Timeout, 10*time.Second)
	setInt(&cfg.Routing.MaxConcurrency, 4)
	setFloat(&cfg.Routing.DefaultSpeedKmh, 50)

	if cfg.Storage == nil {
		cfg.Storage = new(StorageConfig)
	}
	setString(&cfg.Storage.DocumentsURL, "mem://")
	setString(&cfg.Storage.ArtifactsURL, "mem://")
}

func setString(dst *string, def string) {
	if strings.TrimSpace(*dst) == "" {
		*dst = def
	}
}

func setInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}

func setFloat(dst *float64, def float64) {
	if *dst == 0 {
		*dst = def
	}
}

func setDuration(dst *time.Duration, def time.Duration) {
	if *dst == 0 {
		*dst = def
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
