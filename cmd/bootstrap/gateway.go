package bootstrap

import (
	"venuehub-api/internal/infra/gateway"
	"venuehub-api/internal/pkg/config"
	"venuehub-api/internal/usecase/shared"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewGatewayClient,
			fx.As(new(shared.Gateway)),
		),
	),
)

func NewGatewayClient(cfg config.PaymentConfig) *gateway.Client {
	return gateway.NewClient(cfg)
}
