package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"bookcatalog/internal/config"
	"bookcatalog/internal/ingest"
	"bookcatalog/internal/platform/crypto"
	"bookcatalog/internal/platform/database"
	"bookcatalog/internal/platform/logger"
	"bookcatalog/internal/repository"
	"bookcatalog/internal/repository/postgres"

	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadEnvFiles()

	var (
		dataDir = flag.String("data", envOr("DATA_DIR", "data"), "Directory holding the catalogue excerpts")
		dsn     = flag.String("dsn", envOr("DB_DSN", ""), "Postgres DSN")
		cost    = flag.Int("cost", 10, "bcrypt cost for user passwords")
	)
	flag.Parse()

	logger.Init(envOr("APP_ENV", "development"), envOr("LOG_LEVEL", "info"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *dsn == "" {
		log.Fatal().Msg("DB_DSN or -dsn is required")
	}
	pool, err := database.Open(ctx, *dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open database")
	}
	defer pool.Close()

	report, err := populate(ctx, postgres.NewRepository(pool, 0), *dataDir, crypto.NewHasher(*cost))
	if report != nil {
		_ = writeReport(os.Stdout, report)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("populate failed")
	}
}

// populate loads dir and adds it to store in a single unit of work.
func populate(ctx context.Context, store repository.Store, dir string, hash ingest.PasswordHasher) (*ingest.Report, error) {
	ds, err := ingest.LoadDataset(dir, hash)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	var report *ingest.Report
	err = store.Do(ctx, func(repo repository.Repository) (err error) {
		report, err = ingest.Populate(ctx, repo, ds)
		return err
	})
	return report, err
}

func writeReport(w io.Writer, report *ingest.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
