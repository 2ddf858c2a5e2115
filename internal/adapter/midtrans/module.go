package midtrans

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/workhive/paymentd/internal/config"
)

// Module exposes the gateway client implementation to the fx graph.
var Module = fx.Provide(newGateway)

type gatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p gatewayParams) (Gateway, error) {
	return NewClient(p.Config.MidtransServerKey, p.Config.MidtransProduction, p.Config.GatewayStatusURL, p.Logger)
}
