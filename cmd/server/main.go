package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/anyulbade/tbc-checkout/checkout"
	"github.com/anyulbade/tbc-checkout/internal/config"
	"github.com/anyulbade/tbc-checkout/internal/handler"
	"github.com/anyulbade/tbc-checkout/internal/middleware"
	"github.com/anyulbade/tbc-checkout/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg := config.Load()
	zerolog.SetGlobalLevel(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	authCtx, cancel := context.WithTimeout(ctx, cfg.TBCTimeout)
	client, err := checkout.New(authCtx, cfg.Credentials(),
		checkout.WithBaseURL(cfg.TBCBaseURL),
		checkout.WithTimeout(cfg.TBCTimeout),
		checkout.WithMetrics(checkout.NewMetrics(prometheus.DefaultRegisterer)),
	)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to authenticate with gateway")
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	svc := service.NewPaymentService(client)

	healthHandler := handler.NewHealthHandler(svc)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.SetupSwagger(router)
	setupAPIRoutes(router, svc)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.TBCTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("gateway", client.Endpoints().Base).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server exited")
}

func setupAPIRoutes(router *gin.Engine, svc *service.PaymentService) {
	paymentHandler := handler.NewPaymentHandler(svc)
	authHandler := handler.NewAuthHandler(svc)

	api := router.Group("/api/v1")
	{
		api.POST("/payments", paymentHandler.Create)
		api.GET("/payments", paymentHandler.List)
		api.GET("/payments/:payId", paymentHandler.Get)
		api.POST("/payments/:payId/cancel", paymentHandler.Cancel)
		api.POST("/payments/:payId/completion", paymentHandler.Complete)
		api.POST("/auth/refresh", authHandler.Refresh)
	}
}
