package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flighthours-service/internal/domain/repository"
	"flighthours-service/internal/infrastructure/config"
	"flighthours-service/internal/infrastructure/persistence"
	"flighthours-service/internal/infrastructure/router"
	"flighthours-service/internal/interface/handler"
	reportRepo "flighthours-service/internal/interface/repository"
	flightUsecase "flighthours-service/internal/usecase"
	"flighthours-service/pkg/logger"
	"flighthours-service/pkg/metrics"
	"flighthours-service/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Flight Hours Service", "version", cfg.AppVersion)

	m := metrics.NewMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection when a component needs it
	var mongoClient *mongo.Client
	var db *mongo.Database
	if cfg.NeedsMongo() {
		log.Info("Connecting to MongoDB")
		mongoClient, db, err = persistence.NewMongoDatabase(ctx, persistence.MongoOptions{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDB,
			Username: cfg.MongoUser,
			Password: cfg.MongoPassword,
		})
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
	}

	parser := utils.NewTimestampParser(cfg.DateTimeLayouts)
	fileRepository := reportRepo.NewJSONFileRepository(cfg.InputFile, cfg.OutputFile, parser, cfg.MonthLocale, log)

	// Set up roster source
	var rosterRepository repository.RosterRepository = fileRepository
	if cfg.RosterSource == config.SourceMongo {
		rosterRepository = reportRepo.NewMongoRosterRepository(db)
	}

	// Set up report sinks. The first sink that can read reports back answers
	// crew lookups until the first run completes.
	sinkRouter := router.NewSinkRouter(m, log)
	var reportStore repository.MonthReportRepository
	useStore := func(store repository.MonthReportRepository) {
		if reportStore == nil {
			reportStore = store
		}
	}
	for _, sink := range cfg.ReportSinks {
		switch sink {
		case config.SinkFile:
			sinkRouter.Register(fileRepository)
		case config.SinkMongo:
			mongoRepository, err := reportRepo.NewMongoReportRepository(ctx, db)
			if err != nil {
				log.Fatal("Failed to prepare MongoDB report store", "error", err)
			}
			sinkRouter.Register(mongoRepository)
			useStore(mongoRepository)
		case config.SinkSQL:
			gormDB, err := persistence.NewGormDB(cfg.SQLDriver, cfg.SQLDSN)
			if err != nil {
				log.Fatal("Failed to connect to SQL database", "error", err)
			}
			sqlRepository, err := reportRepo.NewGormMonthReportRepository(gormDB)
			if err != nil {
				log.Fatal("Failed to migrate SQL report store", "error", err)
			}
			sinkRouter.Register(sqlRepository)
			useStore(sqlRepository)
		case config.SinkRedis:
			rdb, err := persistence.NewRedisClient(ctx, persistence.RedisOptions{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			if err != nil {
				log.Fatal("Failed to connect to Redis", "error", err)
			}
			defer rdb.Close()
			redisRepository := reportRepo.NewRedisReportRepository(rdb, cfg.RedisKeyPrefix, cfg.RedisChannel, cfg.MonthLocale)
			sinkRouter.Register(redisRepository)
			useStore(redisRepository)
		}
	}

	var runRepository repository.RunRepository
	if db != nil {
		runRepository, err = reportRepo.NewMongoRunRepository(ctx, db)
		if err != nil {
			log.Fatal("Failed to prepare MongoDB run log", "error", err)
		}
	}

	processor := flightUsecase.NewFlightTimeProcessor(flightUsecase.NewRecordValidator(), m, log, cfg.Workers)
	orchestrator := flightUsecase.NewReportOrchestrator(rosterRepository, runRepository, processor, sinkRouter, m, log)
	reportHandler := handler.NewReportHandler(cfg.MonthLocale, reportStore, log)

	// Serve the previous output file while the first run is computed
	if cfg.HasSink(config.SinkFile) {
		previous, err := fileRepository.LoadOutput(ctx)
		if err != nil {
			log.Info("No previous output to serve", "path", cfg.OutputFile, "error", err)
		} else {
			reportHandler.Seed(previous)
			log.Info("Serving previous output", "path", cfg.OutputFile, "crew", len(previous.Specialists))
		}
	}

	runOnce := func() {
		result, err := orchestrator.Run(ctx)
		if err != nil {
			log.Error("Report run failed", "error", err)
		}
		reportHandler.Update(result)
	}

	// Compute at startup, then on every tick
	go func() {
		runOnce()

		ticker := time.NewTicker(cfg.ReprocessInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Report processor stopped")
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()

	// Set up HTTP server for metrics and reports
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	reportHandler.Routes(mux)

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

	cancel()

	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	log.Info("Flight Hours Service stopped")
}
