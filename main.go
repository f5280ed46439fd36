package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"

	"github.com/eiasinprodhan/luxury-real-estate/config"
	"github.com/eiasinprodhan/luxury-real-estate/cron"
	"github.com/eiasinprodhan/luxury-real-estate/handlers"
	"github.com/eiasinprodhan/luxury-real-estate/middleware"
	"github.com/eiasinprodhan/luxury-real-estate/platform"
	"github.com/eiasinprodhan/luxury-real-estate/routes"
	"github.com/eiasinprodhan/luxury-real-estate/services/checkout"
	"github.com/eiasinprodhan/luxury-real-estate/services/payment"
	"github.com/eiasinprodhan/luxury-real-estate/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()
	stripe.Key = config.AppConfig.StripeSecretKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// Platform API client.
	platformClient := platform.NewHTTPClient(config.AppConfig.PlatformAPIURL, logger)

	// Reconcile retry queue.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	// Provider adapters.
	cardAdapter := payment.NewStripeAdapter(platformClient, config.AppConfig.StripeSecretKey, logger)
	walletAdapter := payment.NewBkashAdapter(platformClient, logger)

	// Checkout core.
	checkoutService := &checkout.DefaultCheckoutService{
		Resolver:   checkout.NewBookingResolver(platformClient, logger),
		Store:      checkout.NewRedisSessionStore(utils.GetSessionCacheClient()),
		Card:       cardAdapter,
		Wallet:     walletAdapter,
		Reconciler: checkout.NewReconciler(platformClient, queueClient, logger),
		Events:     &checkout.LogEventSink{Logger: logger},
		Logger:     logger,
	}

	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, logger)
	routes.RegisterCheckoutRoutes(router, checkoutHandler)

	// Background worker for deferred reconciliations.
	cron.InitReconcileWorker(platformClient)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("checkout service listening on :%s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down checkout service")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("forced shutdown: %v", err)
	}
}
