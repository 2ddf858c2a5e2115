package events

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/workhive/paymentd/internal/config"
)

type publisherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newPublisher(p publisherParams) (Publisher, error) {
	if p.Config.AMQPAddress == "" {
		p.Logger.Info("amqp address not set, payment events disabled")
		return NopPublisher{}, nil
	}
	return NewAMQPPublisher(p.Config.AMQPAddress, p.Config.EventExchange, p.Logger)
}

// Module provides the payment event publisher.
var Module = fx.Provide(newPublisher)
