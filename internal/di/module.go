package di

import (
	"go.uber.org/fx"

	"github.com/workhive/paymentd/internal/adapter/events"
	"github.com/workhive/paymentd/internal/adapter/midtrans"
	"github.com/workhive/paymentd/internal/app"
	"github.com/workhive/paymentd/internal/config"
	"github.com/workhive/paymentd/internal/logger"
	"github.com/workhive/paymentd/internal/pkg/auth"
	"github.com/workhive/paymentd/internal/server/http/handlers"
	"github.com/workhive/paymentd/internal/server/http/router"
	"github.com/workhive/paymentd/internal/storage/postgres"
	"github.com/workhive/paymentd/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		midtrans.Module,
		events.Module,
		usecase.Module,
		fx.Provide(func(f *app.PaymentFacade) handlers.ServiceFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
