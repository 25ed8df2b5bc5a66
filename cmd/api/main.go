package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/weg-assembly/docs"
	"github.com/johnquangdev/weg-assembly/internal/adapter/handler"
	"github.com/johnquangdev/weg-assembly/internal/adapter/repository"
	"github.com/johnquangdev/weg-assembly/internal/infrastructure/cache"
	"github.com/johnquangdev/weg-assembly/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/weg-assembly/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/weg-assembly/internal/infrastructure/metrics"
	"github.com/johnquangdev/weg-assembly/internal/infrastructure/storage"
	"github.com/johnquangdev/weg-assembly/internal/usecase/access"
	"github.com/johnquangdev/weg-assembly/internal/usecase/conduct"
	"github.com/johnquangdev/weg-assembly/internal/usecase/meeting"
	"github.com/johnquangdev/weg-assembly/pkg/config"
	"github.com/johnquangdev/weg-assembly/pkg/jwt"
	pkgvalidator "github.com/johnquangdev/weg-assembly/pkg/validator"
)

// @title           WEG Assembly API
// @version         1.0
// @description     API for conducting owners' meetings: attendance, quorum, resolutions and votes

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = handler.ErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("http.request",
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Accept-Language", "Cookie"},
		AllowCredentials: true,
	}))

	// Database
	db, err := database.NewPostgresDB(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.CloseDB(db); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			n, err := database.Migrate(db, migrate.Up, 0)
			if err != nil {
				logger.Fatal("failed to apply migrations", zap.Error(err))
			}
			logger.Info("migrations applied", zap.Int("count", n))
		} else if err := database.AutoMigrate(db); err != nil {
			logger.Fatal("failed to run AutoMigrate", zap.Error(err))
		}
	} else {
		logger.Info("skipping migrations; run cmd/migrate to manage the schema")
	}

	healthChecks := map[string]func(context.Context) error{}

	// Protocol cache
	var protocolCache conduct.KeyValueStore = cache.NewMemoryStore()
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisStore(ctx, cfg)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisStore.Close()
		protocolCache = redisStore
		healthChecks["redis"] = redisStore.Ping
		logger.Info("redis connected", zap.String("addr", cfg.GetRedisAddr()))
	}

	// Protocol archive
	var archive conduct.ProtocolArchive
	if cfg.Storage.Enabled {
		minioClient, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize object storage", zap.Error(err))
		}
		archive = minioClient
		healthChecks["storage"] = minioClient.Ping
		logger.Info("object storage ready", zap.String("bucket", cfg.Storage.BucketName))
	}

	// Metrics
	var recorder conduct.Recorder
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		recorder = metrics.NewRecorder(reg)
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	agendaRepo := repository.NewAgendaItemRepository(db)
	registryRepo := repository.NewRegistryRepository(db)

	// Use cases
	authorizer := access.NewAuthorizerService(meetingRepo, registryRepo, repository.NewMembershipRepository(db))
	meetingService := meeting.NewMeetingService(meetingRepo, agendaRepo, logger)
	conductService := conduct.NewConductService(conduct.Dependencies{
		Transactor:   repository.NewTransactor(db),
		Meetings:     meetingRepo,
		Leaders:      repository.NewLeaderRepository(db),
		Participants: repository.NewParticipantRepository(db),
		AgendaItems:  agendaRepo,
		Resolutions:  repository.NewResolutionRepository(db),
		Votes:        repository.NewVoteRepository(db),
		Registry:     registryRepo,
		Cache:        protocolCache,
		CacheTTL:     cfg.Redis.ProtocolCacheTTL,
		Archive:      archive,
		Metrics:      recorder,
		Logger:       logger,
	})

	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer)

	router := handler.NewRouter(handler.RouterDeps{
		Config:         cfg,
		DB:             db,
		AuthMiddleware: httpmw.EchoAuth(jwtManager, userRepo, logger),
		Authorizer:     authorizer,
		Metrics:        metricsHandler,
		HealthChecks:   healthChecks,
		Account:        handler.NewAccountHandler(logger),
		Meeting:        handler.NewMeetingHandler(meetingService, logger),
		Conduct:        handler.NewConductHandler(conductService, logger),
	})
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("starting server", zap.String("addr", addr), zap.String("environment", cfg.Server.Environment))

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
