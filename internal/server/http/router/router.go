package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/workhive/paymentd/internal/server/http/handlers"
	"github.com/workhive/paymentd/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ServiceFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	notificationHandler := handlers.NewNotificationHandler(facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	auth := api.Group("")
	auth.Use(middleware.AuthRequired(facade))

	payment := auth.Group("/payment")
	payment.POST("/midtrans/create", paymentHandler.Create)
	payment.GET("/midtrans/status/:orderID", paymentHandler.Status)
	payment.POST("/midtrans/events", paymentHandler.PageEvent)
	payment.POST("/midtrans/poll/:orderID", paymentHandler.StartPoll)
	payment.DELETE("/midtrans/poll/:orderID", paymentHandler.CancelPoll)
	payment.PUT("/orders/:orderID/status", paymentHandler.UpdateStatus)

	auth.GET("/orders", orderHandler.List)
	auth.GET("/orders/:orderID", orderHandler.Get)

	auth.POST("/notifications/payment-success", notificationHandler.PaymentSuccess)
	auth.GET("/notifications", notificationHandler.List)

	return engine
}
