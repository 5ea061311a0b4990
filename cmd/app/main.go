package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/hourglass-gg/hourglass/internal/bootstrap"
	"github.com/hourglass-gg/hourglass/internal/config"
	"github.com/hourglass-gg/hourglass/internal/database"
	"github.com/hourglass-gg/hourglass/internal/handler"
	"github.com/hourglass-gg/hourglass/internal/matchmaking"
	"github.com/hourglass-gg/hourglass/internal/profile"
	"github.com/hourglass-gg/hourglass/internal/schedule"
	"github.com/hourglass-gg/hourglass/internal/server"
	"github.com/hourglass-gg/hourglass/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}
	defer logFile.Close()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, 5*time.Minute, 30*time.Minute)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := runMigrations(cfg); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	handler.InitValidator()

	repos := bootstrap.InitializeRepositories(dbPool)
	profileService := profile.NewService(repos.Profile)
	scheduleService := schedule.NewService(repos.Schedule)
	matchmakingService := matchmaking.NewService(profileService, scheduleService)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool,
		profileService, scheduleService, matchmakingService)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server: srv,
		DBPool: dbPool,
	})
}

// runMigrations applies pending schema migrations through a database/sql
// handle; goose does not speak pgx natively.
func runMigrations(cfg *config.Config) error {
	db, err := sql.Open("pgx", cfg.GetDBConnString())
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return migrations.Up(ctx, db)
}
