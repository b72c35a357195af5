package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devdash/devdash/internal/auth"
	"github.com/devdash/devdash/internal/common/config"
	"github.com/devdash/devdash/internal/common/httpmw"
	"github.com/devdash/devdash/internal/common/logger"
	"github.com/devdash/devdash/internal/dashboard"
	"github.com/devdash/devdash/internal/db"
	"github.com/devdash/devdash/internal/events/bus"
	"github.com/devdash/devdash/internal/github"
	githubapi "github.com/devdash/devdash/internal/github/api"
	githubservice "github.com/devdash/devdash/internal/github/service"
	githubstore "github.com/devdash/devdash/internal/github/store"
	insightsapi "github.com/devdash/devdash/internal/insights/api"
	insightsservice "github.com/devdash/devdash/internal/insights/service"
	insightsstore "github.com/devdash/devdash/internal/insights/store"
	pomodoroapi "github.com/devdash/devdash/internal/pomodoro/api"
	pomodoroservice "github.com/devdash/devdash/internal/pomodoro/service"
	pomodorostore "github.com/devdash/devdash/internal/pomodoro/store"
	"github.com/devdash/devdash/internal/streaming"
	taskapi "github.com/devdash/devdash/internal/task/api"
	taskservice "github.com/devdash/devdash/internal/task/service"
	taskstore "github.com/devdash/devdash/internal/task/store"
	userstore "github.com/devdash/devdash/internal/user/store"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logger
	log, err := logger.NewLogger(logger.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetDefault(log)

	log.Info("Starting DevDash backend...")

	// 3. Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Open the database
	pool, err := openPool(cfg)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer pool.Close()
	log.Info("Connected to database", zap.String("driver", pool.DriverName()))

	// 5. Initialize stores (each creates its schema if missing)
	users, err := userstore.NewSQLStore(pool)
	if err != nil {
		log.Fatal("Failed to initialize user store", zap.Error(err))
	}
	tasks, err := taskstore.NewSQLStore(pool)
	if err != nil {
		log.Fatal("Failed to initialize task store", zap.Error(err))
	}
	sessions, err := pomodorostore.NewSQLStore(pool)
	if err != nil {
		log.Fatal("Failed to initialize pomodoro store", zap.Error(err))
	}
	githubStats, err := githubstore.NewSQLStore(pool)
	if err != nil {
		log.Fatal("Failed to initialize github store", zap.Error(err))
	}
	insights, err := insightsstore.NewSQLStore(pool)
	if err != nil {
		log.Fatal("Failed to initialize insights store", zap.Error(err))
	}

	// 6. Seed the development user so the API is usable out of the box
	if cfg.Auth.SeedDefaultUser {
		user, err := users.EnsureDefaultUser(ctx, cfg.Auth.DefaultUserEmail, cfg.Auth.DefaultUserToken)
		if err != nil {
			log.Fatal("Failed to seed default user", zap.Error(err))
		}
		log.Info("Default user ready", zap.String("email", user.Email))
	}

	// 7. Connect the event bus: NATS when configured, in-memory otherwise
	var eventBus bus.EventBus
	if cfg.NATS.URL != "" {
		natsBus, err := bus.NewNATSEventBus(cfg.NATS, log)
		if err != nil {
			log.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		eventBus = natsBus
		log.Info("Connected to NATS event bus", zap.String("url", cfg.NATS.URL))
	} else {
		eventBus = bus.NewMemoryEventBus(log)
		log.Info("Using in-memory event bus")
	}
	defer eventBus.Close()

	// 8. Initialize services
	taskSvc := taskservice.NewService(tasks, eventBus, log)
	pomodoroSvc := pomodoroservice.NewService(sessions, eventBus, log)
	githubSvc := githubservice.NewService(githubStats, github.NewSampleSource(), eventBus, log)
	insightsSvc := insightsservice.NewService(insights, sessions, eventBus, log)
	dashboardSvc := dashboard.NewService(sessions, tasks)

	// 9. Start the WebSocket hub
	hub := streaming.NewHub(eventBus, log)
	go hub.Run(ctx)

	// 10. Setup HTTP server with Gin
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(httpmw.RequestLogger(log))
	router.Use(httpmw.Recovery(log))
	router.Use(httpmw.CORS())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// 11. Register authenticated API routes
	verifier := auth.NewTokenVerifier(users)
	api := router.Group("/api", auth.Middleware(verifier, log))
	taskapi.RegisterRoutes(api, taskapi.NewHandler(taskSvc, log))
	pomodoroapi.RegisterRoutes(api, pomodoroapi.NewHandler(pomodoroSvc, log))
	githubapi.RegisterRoutes(api, githubapi.NewHandler(githubSvc, log))
	insightsapi.RegisterRoutes(api, insightsapi.NewHandler(insightsSvc, log))
	dashboard.RegisterRoutes(api, dashboard.NewHandler(dashboardSvc, log))
	streaming.RegisterRoutes(api, streaming.NewHandler(hub, log))

	// 12. Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// 13. Start server in goroutine
	go func() {
		log.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// 14. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down DevDash backend...")

	// 15. Graceful shutdown
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	log.Info("DevDash backend stopped")
}

// openPool opens the configured database engine.
func openPool(cfg *config.Config) (*db.Pool, error) {
	if cfg.Database.IsPostgres() {
		return db.OpenPostgresPool(cfg.Database.DSN(), cfg.Database.MaxConns)
	}
	return db.OpenSQLitePool(cfg.Database.Path)
}
