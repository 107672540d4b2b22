package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fitback-api/config"
	"fitback-api/internal/application/ports"
	"fitback-api/internal/application/services"
	domainUser "fitback-api/internal/domain/user"
	"fitback-api/internal/infrastructure/db/postgres"
	"fitback-api/internal/infrastructure/db/postgres/session"
	"fitback-api/internal/infrastructure/db/postgres/user"
	"fitback-api/internal/infrastructure/jwt"
	"fitback-api/internal/infrastructure/metrics"
	"fitback-api/internal/infrastructure/mq"
	"fitback-api/internal/infrastructure/s3"
	"fitback-api/internal/interface/api/rest"
	"fitback-api/internal/interface/api/rest/middleware"
	"fitback-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	s3         ports.S3Client
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
	limiter    *middleware.RateLimiter
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}

	// config: .env is optional, the environment wins
	if err = godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("cannot read .env file", zap.Error(err))
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("AUTH_JWT_SECRET is required")
	}

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r, err := rest.NewRouter(logger, mCounter, cfg.App.TrustedProxies)
	if err != nil {
		return nil, err
	}

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		return nil, fmt.Errorf("DB config error: %w", err)
	}
	if err = postgres.Migrate(logger, dbDsn); err != nil {
		return nil, err
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		return nil, err
	}

	// blob storage
	s3Client, err := s3.New(ctx, logger, cfg.Blob)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to connect to blob storage: %w", err)
	}

	// rabbitMQ: error capture publisher
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("RabbitMQ config error: %w", err)
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to connect to rabbitMQ: %w", err)
	}
	if err = rbMQ.Init(); err != nil {
		dbPool.Close()
		_ = rbMQ.GetConn().Close()
		return nil, fmt.Errorf("failed init rabbitMQ: %w", err)
	}
	// rmqConsumer: capture sink
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger.Named("capture"), rbMQ.GetConn())
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		dbPool.Close()
		_ = rbMQ.GetConn().Close()
		return nil, fmt.Errorf("failed to connect rabbitMQ consumer: %w", err)
	}
	if err = rmqConsumer.Init(); err != nil {
		dbPool.Close()
		_ = rbMQ.GetConn().Close()
		return nil, fmt.Errorf("failed to init rabbitMQ consumer: %w", err)
	}

	return &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		s3:         s3Client,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         rbMQ,
		mqConsumer: rmqConsumer,
		limiter:    middleware.NewRateLimiter(logger, cfg.Logging.IngestRate, cfg.Logging.IngestBurst),
	}, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
	if a.mq != nil && a.mq.GetConn() != nil && !a.mq.GetConn().IsClosed() {
		_ = a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.mqConsumer.DeliveryWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.limiter.CleanupWorker(ctx)
		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	userRepo := user.NewRepository(a.db)
	sessionRepo := session.NewRepository(a.db)

	// services
	jwtService := jwt.New(a.cfg.Auth.JWTSecret)
	userService := services.NewUserService(userRepo)
	authLinkService := services.NewAuthLinkService(userRepo, a.mCounter)
	sessionService := services.NewSessionService(sessionRepo)
	logService := services.NewLogService(a.logger, a.mq, a.mCounter)
	uploadService := services.NewUploadService(a.logger, a.s3, sessionService, a.mCounter, a.cfg.Blob.UploadTokenTTL)
	imageService := services.NewImageService(a.s3)

	// controllers
	rest.NewSessionController(a.router, sessionService, a.logger)
	rest.NewLoggingController(a.router, logService, a.logger, a.limiter.Middleware())
	rest.NewUploadController(a.router, uploadService, a.logger)
	rest.NewAuthController(a.router, authLinkService, a.logger, jwtService)
	rest.NewAdminController(a.router, userService, a.logger, jwtService,
		domainUser.NewEmailAllowList(a.cfg.Auth.AdminEmails...))
	rest.NewImageController(a.router, imageService, a.logger)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
