package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/collabcode/collabcode-server/internal/ai"
	"github.com/collabcode/collabcode-server/internal/config"
	"github.com/collabcode/collabcode-server/internal/core"
	"github.com/collabcode/collabcode-server/internal/store"
	"github.com/collabcode/collabcode-server/internal/store/sqlite"
	transporthttp "github.com/collabcode/collabcode-server/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	store           store.Store
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) (*App, error) {
	st, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	logger.Info().Str("db_path", cfg.DatabasePath).Msg("database initialized")

	registry := core.NewRegistry()
	session := core.NewSession(registry, st, logger)
	provider := newProvider(cfg.AI, logger)
	server := transporthttp.NewServer(session, st, provider, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		store:           st,
		log:             logger,
	}, nil
}

// newProvider picks the text-generation backend. A generative backend is
// always wrapped with the mock fallback; without an API key the mock runs
// alone.
func newProvider(cfg config.AIConfig, logger *zerolog.Logger) ai.Provider {
	if cfg.Provider == "gemini" && cfg.APIKey != "" {
		gemini, err := ai.NewGemini(context.Background(), cfg.APIKey, cfg.Model)
		if err != nil {
			logger.Warn().Err(err).Msg("gemini unavailable, using mock provider")
			return ai.NewMock()
		}
		logger.Info().Str("model", cfg.Model).Msg("gemini provider enabled")
		return ai.NewFallback(gemini, logger)
	}

	logger.Info().Msg("using mock text provider")
	return ai.NewMock()
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes database and other resources.
func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}
