package routing

import (
	"log/slog"
	"time"

	"routereel/config"
	"routereel/internal/domain/constants"
	"routereel/internal/domain/service"
	"routereel/internal/infra/routing/osrm"
	"routereel/internal/infra/routing/pmtiles"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// OracleParams holds dependencies for the routing oracle, injected by Fx.
type OracleParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewRoutingOracle builds the configured oracle wrapped in a Resolver.
func NewRoutingOracle(params OracleParams) (service.RoutingOracle, error) {
	cfg := params.Config
	provider := constants.RoutingProviderStraight
	if cfg.Routing != nil && cfg.Routing.Provider != "" {
		provider = cfg.Routing.Provider
	}

	var oracle service.RoutingOracle
	switch provider {
	case constants.RoutingProviderOSRM:
		if cfg.OSRM == nil || cfg.OSRM.BaseURL == "" {
			return nil, errors.New("osrm.baseUrl is required for the osrm routing provider")
		}
		oracle = osrm.NewClient(cfg.OSRM.BaseURL, routingTimeout(cfg), params.Logger)
	case constants.RoutingProviderPMTiles:
		pmtilesOracle, err := pmtiles.NewOracle(pmtiles.OracleParams{Config: cfg.PMTiles, Logger: params.Logger})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create PMTiles oracle")
		}
		oracle = pmtilesOracle
	case constants.RoutingProviderStraight:
		oracle = StraightOracle{}
	default:
		return nil, errors.Errorf("unknown routing provider: %s", provider)
	}

	params.Logger.Info("Routing oracle initialized", slog.String("provider", provider))

	return NewResolver(oracle, cfg.Routing, params.Logger), nil
}

func routingTimeout(cfg *config.Config) time.Duration {
	if cfg.Routing != nil {
		return cfg.Routing.Timeout
	}

	return 0
}
