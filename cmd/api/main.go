package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sefazor/ourquotes-backend/internal/config"
	"github.com/sefazor/ourquotes-backend/internal/handler"
	"github.com/sefazor/ourquotes-backend/internal/metrics"
	"github.com/sefazor/ourquotes-backend/internal/repository"
	"github.com/sefazor/ourquotes-backend/internal/router"
	"github.com/sefazor/ourquotes-backend/internal/service"
	"github.com/sefazor/ourquotes-backend/internal/session"
	"github.com/sefazor/ourquotes-backend/pkg/database"
	"github.com/sefazor/ourquotes-backend/pkg/email"
	"github.com/sefazor/ourquotes-backend/pkg/logger"
	"github.com/sefazor/ourquotes-backend/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(ctx, db); err != nil {
		lg.Fatal("failed to migrate database", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	validator := utils.NewValidator()
	appMetrics := metrics.New(prometheus.NewRegistry())

	// Services
	var authOpts []service.AuthServiceOption
	if cfg.MailEnabled() {
		emailService := email.NewEmailService(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.FromName, lg)
		authOpts = append(authOpts, service.WithMailer(emailService))
	}
	authService := service.NewAuthService(userRepo, likeRepo, validator, appMetrics, lg, authOpts...)
	userService := service.NewUserService(userRepo, validator)
	quoteService := service.NewQuoteService(quoteRepo, userRepo, validator, appMetrics)
	likeService := service.NewLikeService(likeRepo, quoteRepo, appMetrics)

	sessions := session.NewManager(session.Config{
		Expiration:   cfg.Session.Expiration,
		CookieSecure: cfg.Session.CookieSecure,
	})

	// Handlers
	app := router.NewFiberApp(router.Handlers{
		Auth:  handler.NewAuthHandler(authService, sessions, lg),
		Quote: handler.NewQuoteHandler(quoteService, likeService, lg),
		User:  handler.NewUserHandler(userService, lg),
	}, sessions, appMetrics, lg)

	go func() {
		<-ctx.Done()
		lg.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			lg.Error("shutdown failed", zap.Error(err))
		}
	}()

	lg.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
	if err := app.Listen(":" + cfg.Port); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}
}
