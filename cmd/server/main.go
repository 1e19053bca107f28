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

	"github.com/yourorg/stock-tracker/internal/client"
	"github.com/yourorg/stock-tracker/internal/config"
	"github.com/yourorg/stock-tracker/internal/events"
	"github.com/yourorg/stock-tracker/internal/handler"
	"github.com/yourorg/stock-tracker/internal/mailer"
	"github.com/yourorg/stock-tracker/internal/middleware"
	"github.com/yourorg/stock-tracker/internal/repository"
	"github.com/yourorg/stock-tracker/internal/scheduler"
	"github.com/yourorg/stock-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := connectToDB(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Redis client (if enabled)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.URL,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logger.Warn("Failed to connect to Redis, running without cache", zap.Error(err))
			redisClient = nil
		} else {
			logger.Info("Connected to Redis", zap.String("address", cfg.Redis.URL))
		}
	}

	// Create repositories
	userRepo := repository.NewUserRepository(db, logger)
	watchlistRepo := repository.NewWatchlistRepository(db, logger)

	// Create clients
	finnhubClient := client.NewFinnhubClient(cfg.Finnhub, redisClient, logger)
	geminiClient := client.NewGeminiClient(cfg.Gemini, logger)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP, logger)

	// Initialize Kafka producer (if enabled)
	var producer *events.Producer
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) > 0 {
		producer = events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.UserEventsTopic, logger)
		defer producer.Close()
		logger.Info("Initialized Kafka producer", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	// Create services
	var publisher service.Publisher
	if producer != nil {
		publisher = producer
	}
	authService := service.NewAuthService(userRepo, publisher, cfg.Auth, logger)
	newsService := service.NewNewsService(finnhubClient, logger)
	watchlistService := service.NewWatchlistService(watchlistRepo, finnhubClient, userRepo, logger)
	searchService := service.NewSearchService(finnhubClient, watchlistService, logger)
	stockService := service.NewStockService(finnhubClient, watchlistService, logger)
	digestService := service.NewDigestService(
		userRepo,
		watchlistService,
		newsService,
		geminiClient,
		smtpMailer,
		cfg.Digest.MaxArticles,
		logger,
	)

	// Background workers share a cancelable context
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	// Start the digest scheduler
	digestScheduler := scheduler.NewScheduler(digestService, cfg.Digest.Hour, logger)
	go digestScheduler.Run(workerCtx)

	// Start the welcome-email consumer (if Kafka is enabled)
	var consumer *events.Consumer
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) > 0 {
		consumer = events.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.UserEventsTopic, cfg.Kafka.GroupID, digestService, logger)
		go func() {
			if err := consumer.Run(workerCtx); err != nil {
				logger.Error("event consumer stopped", zap.Error(err))
			}
		}()
	}

	// Create HTTP server
	router := setupRouter(
		cfg,
		authService,
		newsService,
		watchlistService,
		searchService,
		stockService,
		digestService,
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	stopWorkers()
	if consumer != nil {
		consumer.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

func createLogger(level string) (*zap.Logger, error) {
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

func connectToDB(dbConfig config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName,
		dbConfig.SSLMode,
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(dbConfig.MaxOpenConns)
	db.SetMaxIdleConns(dbConfig.MaxIdleConns)
	db.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	return db, nil
}

func setupRouter(
	cfg *config.Config,
	authService *service.AuthService,
	newsService *service.NewsService,
	watchlistService *service.WatchlistService,
	searchService *service.SearchService,
	stockService *service.StockService,
	digestService *service.DigestService,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := router.Group("/api/v1")
	{
		// ==================== AUTH ROUTES ====================
		auth := v1.Group("/auth")
		{
			authHandler := handler.NewAuthHandler(authService, logger)

			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// ==================== MARKET ROUTES ====================
		// Anonymous callers are welcome; a valid token adds personalization.
		market := v1.Group("")
		market.Use(middleware.OptionalAuthMiddleware(authService))
		{
			newsHandler := handler.NewNewsHandler(newsService, logger)
			searchHandler := handler.NewSearchHandler(searchService, logger)
			stockHandler := handler.NewStockHandler(stockService, logger)
			watchlistHandler := handler.NewWatchlistHandler(watchlistService, logger)

			market.GET("/news", newsHandler.GetNews)
			market.GET("/search", searchHandler.Search)
			market.GET("/stocks/:symbol", stockHandler.Details)

			market.GET("/watchlist", watchlistHandler.List)
			market.GET("/watchlist/status/:symbol", watchlistHandler.Status)
			market.POST("/watchlist", watchlistHandler.Add)
			market.DELETE("/watchlist/:symbol", watchlistHandler.Remove)
		}

		// ==================== SERVICE API ====================
		svc := v1.Group("/service")
		{
			svc.Use(middleware.ServiceAuthMiddleware(cfg.ServiceKey, logger))

			digestHandler := handler.NewDigestHandler(digestService, logger)
			svc.POST("/digest/run", digestHandler.Run)
		}
	}

	return router
}
