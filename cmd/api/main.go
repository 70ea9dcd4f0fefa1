package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/thomaskerpen/CopilotTest/internal/config"
	"github.com/thomaskerpen/CopilotTest/internal/handler"
	"github.com/thomaskerpen/CopilotTest/internal/jobs"
	"github.com/thomaskerpen/CopilotTest/internal/middleware"
	"github.com/thomaskerpen/CopilotTest/internal/service"
	"github.com/thomaskerpen/CopilotTest/internal/store"
	"github.com/thomaskerpen/CopilotTest/internal/store/memory"
	"github.com/thomaskerpen/CopilotTest/internal/store/postgres"
	storeredis "github.com/thomaskerpen/CopilotTest/internal/store/redis"
	"github.com/thomaskerpen/CopilotTest/internal/utils/email"
)

func main() {
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize store backend
	st, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	// Initialize layers
	mailer := email.NewSender(cfg, logger)
	svc := service.NewService(st, logger, cfg, mailer)
	h := handler.NewHandler(svc, logger)

	// Retention purge
	if cfg.CleanupSchedule != "" {
		cleanup := jobs.NewCleanup(st, logger, cfg.RetentionDays)
		cr, err := jobs.Start(cfg.CleanupSchedule, cleanup)
		if err != nil {
			logger.Fatalf("Failed to schedule cleanup: %v", err)
		}
		defer cr.Stop()
		logger.Infof("Appointment cleanup scheduled: %s (retention %d days)",
			cfg.CleanupSchedule, cfg.RetentionDays)
	}

	// Setup router
	rl := middleware.NewRateLimiter(5, 10)
	r := h.Router(cfg.JWTSecret, rl)
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      corsHandler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s (store backend: %s)", addr, cfg.StoreBackend)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}

// openStore selects the persistence backend configured for this process
func openStore(cfg *config.Config, logger *logrus.Logger) (store.Store, error) {
	switch cfg.StoreBackend {
	case "postgres":
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			return nil, err
		}
		if err := db.Ping(); err != nil {
			return nil, err
		}
		if err := migrate(db, logger); err != nil {
			return nil, err
		}
		logger.Info("Using Postgres store")
		return postgres.New(db), nil

	case "redis":
		s, err := storeredis.New(context.Background(), cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		logger.Info("Using Redis store")
		return s, nil

	default:
		s, err := memory.New(cfg.DataFile)
		if err != nil {
			return nil, err
		}
		if cfg.DataFile != "" {
			logger.Infof("Using file store: %s", cfg.DataFile)
		} else {
			logger.Info("Using in-memory store")
		}
		return s, nil
	}
}

func migrate(db *sql.DB, logger *logrus.Logger) error {
	migration, err := os.ReadFile("db/migrations/001_init.sql")
	if err != nil {
		logger.Warnf("Migration file not found, skipping: %v", err)
		return nil
	}
	if _, err := db.Exec(string(migration)); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Migration applied")
	return nil
}
