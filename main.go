// File: medibook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/catalog"
	"medibook/config"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/models"
	"medibook/routes"
	"medibook/services/assistant"
	"medibook/services/booking"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitContextCache()

	// Seed the catalogs. A structurally broken fixture is a startup
	// failure, never a request-time one.
	fixtureCfg := catalog.FixtureConfig{
		Seed:                 config.AppConfig.CatalogSeed,
		HomeCollectionFee:    config.AppConfig.HomeCollectionFee,
		FullBodyDiscount:     config.AppConfig.FullBodyDiscount,
		DiabetesCareDiscount: config.AppConfig.DiabetesCareDiscount,
		HeartHealthDiscount:  config.AppConfig.HeartHealthDiscount,
	}
	providerCatalog := catalog.NewInMemoryProviderCatalog(catalog.BuildProviders(fixtureCfg))

	centres := catalog.DefaultLabCentres()
	labTests := catalog.BuildLabTests(fixtureCfg, centres)
	labPackages, err := catalog.BuildLabPackages(fixtureCfg, labTests)
	if err != nil {
		logger.Sugar().Fatalf("main: broken lab package fixture: %v", err)
	}
	labCatalog, err := catalog.NewInMemoryLabCatalog(labTests, labPackages, centres, catalog.SlotConfig{
		HomeProbability: config.AppConfig.HomeSlotProbability,
		LabProbability:  config.AppConfig.LabSlotProbability,
		ClosedWeekday:   time.Sunday,
	})
	if err != nil {
		logger.Sugar().Fatalf("main: broken lab catalog fixture: %v", err)
	}

	defaultOrigin, err := models.NewCoordinates(config.AppConfig.DefaultLat, config.AppConfig.DefaultLng)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid default origin: %v", err)
	}

	// Core services.
	reservationEngine := booking.NewReservationEngine(providerCatalog)
	sessionStore := booking.NewSessionStore(config.AppConfig.HomeCollectionFee)
	executor := assistant.NewExecutor(providerCatalog, labCatalog, reservationEngine, sessionStore, defaultOrigin)

	geminiClient, err := assistant.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}
	classifier := assistant.NewGeminiClassifier(geminiClient)
	contextStore := assistant.NewRedisContextStore(utils.GetContextCacheClient(), 30*time.Minute)
	assistantService := assistant.NewAssistantService(classifier, executor, contextStore)

	handlers.SetAssistantService(assistantService)
	handlers.SetProviderCatalog(providerCatalog)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.SetupRoutes(router)

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
