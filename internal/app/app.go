package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/workhive/paymentd/internal/adapter/events"
	"github.com/workhive/paymentd/internal/adapter/midtrans"
	"github.com/workhive/paymentd/internal/config"
	"github.com/workhive/paymentd/internal/pkg/urlhint"
	"github.com/workhive/paymentd/internal/poller"
	"github.com/workhive/paymentd/internal/usecase"
	"github.com/workhive/paymentd/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newPoller,
		newDebouncer,
		newFacade,
		newHTTPServer,
		newReconciler,
	),
	fx.Invoke(registerLifecycle),
)

type pollerParams struct {
	fx.In

	Gateway midtrans.Gateway
	Logger  *slog.Logger
}

func newPoller(p pollerParams) *poller.Poller {
	return poller.New(p.Gateway, p.Logger)
}

func newDebouncer(cfg *config.Config) *urlhint.Debouncer {
	return urlhint.NewDebouncer(cfg.HintDebounce)
}

type facadeParams struct {
	fx.In

	Auth          *usecase.AuthUseCase
	Checkout      *usecase.CheckoutUseCase
	Orders        *usecase.OrderUseCase
	Notifications *usecase.NotificationUseCase
	Poller        *poller.Poller
	Publisher     events.Publisher
	Debounce      *urlhint.Debouncer
	Logger        *slog.Logger
	Config        *config.Config
}

func newFacade(p facadeParams) *PaymentFacade {
	return NewPaymentFacade(
		p.Auth,
		p.Checkout,
		p.Orders,
		p.Notifications,
		p.Poller,
		p.Publisher,
		p.Debounce,
		p.Logger,
		poller.Options{MaxAttempts: p.Config.PollMaxAttempts, Interval: p.Config.PollInterval},
		p.Config.ReconcileInterval,
		p.Config.ReconcileBatch,
	)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *PaymentFacade
	Config *config.Config
	Logger *slog.Logger
}

func newReconciler(p workerParams) *worker.Reconciler {
	return worker.NewReconciler(
		p.Facade,
		p.Config.ReconcileInterval,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.Reconciler
	Publisher  events.Publisher
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting paymentd", slog.String("addr", p.Server.Addr))
			p.Worker.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			if err := p.Publisher.Close(); err != nil {
				p.Logger.Warn("close event publisher", slog.String("error", err.Error()))
			}
			p.Logger.Info("paymentd stopped")
			return nil
		},
	})
}
