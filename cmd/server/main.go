package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/go-desk/internal/api"
	"github.com/hugh/go-desk/internal/auth"
	"github.com/hugh/go-desk/internal/blocklist"
	"github.com/hugh/go-desk/internal/company"
	"github.com/hugh/go-desk/internal/database"
	"github.com/hugh/go-desk/internal/realtime"
	"github.com/hugh/go-desk/internal/role"
	"github.com/hugh/go-desk/pkg/config"
	"github.com/hugh/go-desk/pkg/queue"
	"github.com/hugh/go-desk/pkg/util"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env)
	slog.SetDefault(logger)

	logger.Info("starting Go-Desk server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
	)

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("failed to connect to Redis", "error", err)
		redisClient = nil
	}

	// Blocklists live in Redis when available; defaults apply otherwise
	lists := blocklist.New(redisClient, logger)
	if redisClient != nil {
		if err := lists.Seed(context.Background()); err != nil {
			logger.Warn("failed to seed blocklists", "error", err)
		}
	}

	// Initialize Asynq client for background job enqueuing
	var asynqClient *asynq.Client
	if redisClient != nil {
		asynqClient = queue.NewClient(&cfg.Redis)
	}

	// Initialize services; the signing secret is injected here and nowhere
	// else
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	var enqueuer auth.TaskEnqueuer
	if asynqClient != nil {
		enqueuer = asynqClient
	}
	authService := auth.NewService(db, jwtService, lists, enqueuer)
	companyService := company.NewService(db, lists)
	roleService := role.NewService(db)

	// Realtime hub
	hub := realtime.NewHub(logger)
	go hub.Run()
	socketHandler := realtime.NewHandler(hub, jwtService, logger)

	// Create router
	router := api.NewRouter(api.RouterConfig{
		DB:             db,
		Redis:          redisClient,
		Logger:         logger,
		JWTService:     jwtService,
		AuthService:    authService,
		CompanyService: companyService,
		RoleService:    roleService,
		SocketHandler:  socketHandler,
		RateLimitReqs:  cfg.RateLimit.Requests,
		RateLimitSecs:  cfg.RateLimit.WindowSeconds,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}

	if asynqClient != nil {
		_ = asynqClient.Close()
	}

	logger.Info("server stopped")
}
