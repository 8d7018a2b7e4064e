// Command api runs the job board HTTP server
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Daeuning/WSD-Assignment-03/internal/auth"
	"github.com/Daeuning/WSD-Assignment-03/internal/config"
	"github.com/Daeuning/WSD-Assignment-03/internal/database"
	"github.com/Daeuning/WSD-Assignment-03/internal/server"
)

const (
	authLogPath       = "log/auth.log"
	blacklistInterval = 10 * time.Minute
	shutdownTimeout   = 5 * time.Second
)

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

func main() {
	cfg := config.Load()
	setupLogger(cfg.LogLevel)

	if cfg.SecretKey == "" {
		log.Fatal().Msg("SECRET_KEY must be set")
	}

	if cfg.AuthLog {
		closeAuthLog, err := auth.EnableAuthLog(authLogPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open auth log")
		}
		defer func() {
			if err := closeAuthLog(); err != nil {
				log.Error().Err(err).Msg("Failed to close auth log")
			}
		}()
	}

	db, err := database.NewDBInstance(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Database failed to initialize")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	if err := db.EnsureAdmin(cfg.AdminEmail, cfg.AdminPass); err != nil {
		log.Error().Err(err).Msg("Failed to create admin account")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg, db, auth.NewInMemoryBlacklistStore(ctx, blacklistInterval)).HTTPServer()

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}
