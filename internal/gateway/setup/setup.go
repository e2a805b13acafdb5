// Package setup builds the configured DataGateway. It lives outside the
// gateway package so the interface package never imports its
// implementations.
package setup

import (
	"context"
	"fmt"

	"github.com/vendasul/sugestao-vendedor/internal/gateway"
	"github.com/vendasul/sugestao-vendedor/internal/gateway/embedded"
	"github.com/vendasul/sugestao-vendedor/internal/gateway/rest"
	"github.com/vendasul/sugestao-vendedor/pkg/config"
	"github.com/vendasul/sugestao-vendedor/pkg/logger"
)

// New selects the backend from configuration and wraps it with the health
// probe cache. Callers receive the interface and never branch on the kind.
func New(cfg *config.Config, logg *logger.Logger) (gateway.DataGateway, error) {
	var (
		gw  gateway.DataGateway
		err error
	)
	switch cfg.Gateway.Kind {
	case config.GatewayKindRest:
		gw, err = rest.NewClient(cfg.API)
		if err != nil {
			return nil, err
		}
	case config.GatewayKindEmbedded:
		gw, err = embedded.New(cfg, logg)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported gateway kind %q", cfg.Gateway.Kind)
	}
	if logg != nil {
		logg.Info(logg.WithGateway(context.Background(), cfg.Gateway.Kind), "data gateway selected")
	}
	return gateway.WithHealthCache(gw, cfg.Cache.HealthTTL), nil
}
