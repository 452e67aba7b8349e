package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crewrecovery-service/internal/infrastructure/config"
	"crewrecovery-service/internal/infrastructure/oauth"
	"crewrecovery-service/internal/infrastructure/persistence"
	"crewrecovery-service/internal/infrastructure/router"
	"crewrecovery-service/internal/interface/opsfeed"
	ifaceRepo "crewrecovery-service/internal/interface/repository"
	"crewrecovery-service/internal/usecase"
	"crewrecovery-service/pkg/logger"
	"crewrecovery-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Crew Recovery Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Metrics registry
	m := metrics.NewMetrics("crewrecovery")

	// Set up reference data repositories
	crewRepo := ifaceRepo.NewGormCrewRepository(gormDB)
	flightRepo := ifaceRepo.NewGormFlightRepository(gormDB)
	repositionRepo := ifaceRepo.NewGormRepositionRepository(gormDB)
	hotelRepo := ifaceRepo.NewGormHotelRepository(gormDB)
	transportRepo := ifaceRepo.NewGormTransportRepository(gormDB)

	// Set up operational repositories
	disruptionRepo := ifaceRepo.NewMongoDisruptionRepository(db)
	recoveryLogRepo := ifaceRepo.NewMongoRecoveryLogRepository(db)

	// Set up advisor OAuth and external service clients
	advisorOAuth := oauth.NewAdvisorOAuth(
		cfg.AdvisorTokenURL,
		cfg.AdvisorClientID,
		cfg.AdvisorClientSecret,
		log,
	)
	apiClient := advisorOAuth.HTTPClient(ctx)

	advisorRepo := ifaceRepo.NewHTTPAdvisorRepository(log, apiClient, cfg.AdvisorBaseURL, cfg.AdvisorConfidenceThreshold)
	noticeRepo := ifaceRepo.NewHTTPNoticeRepository(log, cfg.NotifyServiceURL, cfg.NotifyToken)

	// Set up the recovery orchestrator
	orchestrator := usecase.NewRecoveryOrchestrator(
		crewRepo,
		flightRepo,
		repositionRepo,
		hotelRepo,
		transportRepo,
		recoveryLogRepo,
		advisorRepo,
		noticeRepo,
		cfg.DutyRules,
		cfg.ReportBufferMinutes,
		cfg.AdvisorTimeout,
		m,
		log,
	)

	// Register disruption handlers
	disruptionRouter := router.NewDisruptionRouter(log)
	disruptionRouter.Register(usecase.NewRecoveryHandlerAdapter(orchestrator, "crew_recovery", []string{
		"weather",
		"maintenance",
		"crew",
		"airport",
	}))

	dispatcher := usecase.NewDisruptionDispatcher(disruptionRepo, disruptionRouter, m, log)

	// Start ops feed polling when a feed URL is configured
	if cfg.OpsFeedURL != "" {
		feedService := opsfeed.NewFeedService(
			apiClient,
			cfg.OpsFeedURL,
			disruptionRepo,
			dispatcher,
			log,
			cfg.OpsFeedPollInterval,
		)
		go feedService.StartPolling(ctx)
	} else {
		log.Warn("No ops feed URL configured, relying on pushed events only")
	}

	// Sweep for pending disruptions in a goroutine
	go func() {
		processTicker := time.NewTicker(cfg.ProcessInterval)
		defer processTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Disruption processor stopped")
				return
			case <-processTicker.C:
				log.Info("Processing pending disruptions")
				if err := dispatcher.ProcessPendingDisruptions(ctx); err != nil {
					log.Error("Error processing disruptions", "error", err)
				}
			}
		}
	}()

	// Set up HTTP server
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	mux.Handle("/api/v1/disruptions", opsfeed.NewIngestHandler(disruptionRepo, dispatcher, log))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Crew Recovery Service stopped")
}
