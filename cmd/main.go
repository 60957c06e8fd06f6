package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tbessonov/shopauth/internal/api/http/router"
	"github.com/tbessonov/shopauth/internal/config"
	"github.com/tbessonov/shopauth/internal/logger"
	"github.com/tbessonov/shopauth/internal/model"
	"github.com/tbessonov/shopauth/internal/repository/memory"
	"github.com/tbessonov/shopauth/internal/repository/postgres"
	"github.com/tbessonov/shopauth/internal/repository/redis"
	"github.com/tbessonov/shopauth/internal/service"
	"github.com/tbessonov/shopauth/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	codec, err := token.NewCodec([]byte(cfg.JWT.Secret))
	if err != nil {
		logger.Fatal("failed to initialize token codec", "error", err)
	}
	validator := token.NewValidator(codec)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)

	sessionStore, err := newSessionStore(ctx, cfg, db)
	if err != nil {
		logger.Fatal("failed to initialize session store", "error", err, "backend", cfg.Session.Store)
	}

	sessionService := service.NewSessions(codec, validator, sessionStore, logger, cfg.JWT.AccessTTL)
	authService := service.NewAuth(userRepo, sessionService, logger)

	r := router.New(authService, sessionService, sessionService, logger)
	app := r.Register()

	addr := fmt.Sprintf(":%s", cfg.HTTP.Port)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server on", "address", addr)

		var err error
		if cfg.HTTP.EnableHTTPS {
			err = app.ListenTLS(addr, cfg.HTTP.CertFile, cfg.HTTP.KeyFile)
		} else {
			err = app.Listen(addr)
		}
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", addr)
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// newSessionStore selects the refresh token storage backend. User records
// always live in postgres, the backend only affects session state.
func newSessionStore(ctx context.Context, cfg *config.Config, db *postgres.Connection) (model.SessionStore, error) {
	switch cfg.Session.Store {
	case "postgres":
		return postgres.NewSessionRepository(db), nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redis.NewSessionStore(client, cfg.JWT.RefreshTTL), nil
	case "memory":
		return memory.NewSessionStore(), nil
	default:
		return nil, fmt.Errorf("unknown session store backend: %s", cfg.Session.Store)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
