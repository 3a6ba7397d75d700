package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"expertbook/config"
	"expertbook/database"
	bookingRepoPkg "expertbook/database/repository/booking"
	expertRepoPkg "expertbook/database/repository/expert"
	"expertbook/handlers"
	"expertbook/middleware"
	"expertbook/realtime"
	"expertbook/routes"
	bookingSvc "expertbook/services/booking"
	expertSvc "expertbook/services/expert"
	"expertbook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(routes.CORSMiddleware())

	// The realtime hub fans booking events out to connected browsers.
	hub := realtime.NewHub(logger)
	go hub.Run()

	// repositories.
	expertRepo := expertRepoPkg.NewMongoExpertRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()

	// services.
	expertService := &expertSvc.DefaultExpertService{
		Repo:     expertRepo,
		Cache:    utils.GetCacheClient(),
		CacheTTL: config.AppConfig.ExpertCacheTTL,
		Logger:   logger,
	}
	bookingService := &bookingSvc.DefaultBookingService{
		ExpertRepo:  expertRepo,
		BookingRepo: bookingRepo,
		Publisher:   hub,
		Logger:      logger,
	}

	// handlers and routes.
	expertHandler := handlers.NewExpertHandler(expertService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, expertService, logger)

	routes.RegisterExpertRoutes(router, expertHandler)
	routes.RegisterBookingRoutes(router, bookingHandler)
	routes.RegisterRealtimeRoute(router, hub)
	routes.RegisterHealthRoute(router)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
