package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookcatalog/internal/config"
	apphttp "bookcatalog/internal/http"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/ingest"
	"bookcatalog/internal/platform/crypto"
	"bookcatalog/internal/platform/database"
	"bookcatalog/internal/platform/logger"
	"bookcatalog/internal/repository"
	"bookcatalog/internal/repository/memory"
	"bookcatalog/internal/repository/postgres"
	"bookcatalog/internal/usecase"

	"github.com/rs/zerolog/log"
)

const maxRequestBytes = 1 << 20

func main() {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load configuration")
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, ready, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("repository", cfg.Repository.Kind).Msg("cannot open repository")
	}
	defer closeBackend()

	httpServer := &http.Server{
		Addr:         cfg.App.Addr,
		Handler:      newHandler(ctx, cfg, backend, ready),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.App.Addr).Str("repository", cfg.Repository.Kind).Msg("starting server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server stopped")
}

// openBackend returns the configured repository, a readiness probe and a
// close function. The memory backend is filled from DATA_DIR on start.
func openBackend(ctx context.Context, cfg *config.Config) (repository.Backend, func(context.Context) error, func(), error) {
	switch cfg.Repository.Kind {
	case config.RepositoryPostgres:
		pool, err := database.Open(ctx, cfg.Repository.DSN)
		if err != nil {
			return nil, nil, nil, err
		}
		return postgres.NewRepository(pool, cfg.Repository.Timeout), pool.Ping, pool.Close, nil

	case config.RepositoryMemory:
		repo := memory.NewRepository()
		ds, err := ingest.LoadDataset(cfg.Catalog.DataDir, crypto.NewHasher(cfg.Catalog.PasswordCost))
		if err != nil {
			return nil, nil, nil, err
		}
		err = repo.Do(ctx, func(tx repository.Repository) error {
			_, err := ingest.Populate(ctx, tx, ds)
			return err
		})
		if err != nil {
			return nil, nil, nil, err
		}
		return repo, func(context.Context) error { return nil }, func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown repository %q", cfg.Repository.Kind)
	}
}

func newHandler(ctx context.Context, cfg *config.Config, backend repository.Backend, ready func(context.Context) error) http.Handler {
	books := usecase.NewBooks(backend, cfg.Catalog.BooksPerPage)

	router := apphttp.NewRouter(apphttp.Handlers{
		Books:        apphttp.NewBookHandler(books, cfg.Catalog.RandomBooks),
		Authors:      apphttp.NewAuthorHandler(usecase.NewAuthors(backend, cfg.Catalog.BooksPerPage), books),
		Reviews:      apphttp.NewReviewHandler(usecase.NewReviews(backend)),
		ReadingLists: apphttp.NewReadingListHandler(usecase.NewReadingLists(backend)),
	})

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := ready(ctx); err != nil {
			log.Warn().Err(err).Msg("readiness check failed")
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	rateLimiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.RecoveryMiddleware,
		httpx.AccessLogMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.IsProduction()),
		httpx.CORSMiddleware(cfg.App.AllowedOrigins),
		httpx.RequestSizeLimitMiddleware(maxRequestBytes),
		rateLimiter.Middleware,
	)
}
