package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
)

const (
	RepositoryMemory   = "memory"
	RepositoryPostgres = "postgres"
)

// Config is the process configuration, populated from the environment.
type Config struct {
	App        AppConfig
	Repository RepositoryConfig
	Catalog    CatalogConfig
	RateLimit  RateLimitConfig
}

type AppConfig struct {
	Addr           string
	Environment    string // development, production
	LogLevel       string
	AllowedOrigins []string
}

type RepositoryConfig struct {
	Kind          string // memory or postgres
	DSN           string
	Timeout       time.Duration
	MigrationsDir string
}

type CatalogConfig struct {
	DataDir      string
	BooksPerPage int
	RandomBooks  int
	PasswordCost int
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// LoadEnvFiles loads .env then .env.local. Variables already set in the
// process environment win.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Addr:           getEnv("APP_ADDR", ":8080"),
			Environment:    getEnv("APP_ENV", "development"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		},
		Repository: RepositoryConfig{
			Kind:          strings.ToLower(getEnv("REPOSITORY", RepositoryMemory)),
			DSN:           getEnv("DB_DSN", ""),
			Timeout:       getEnvDuration("DB_TIMEOUT", 5*time.Second),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "db/migrations"),
		},
		Catalog: CatalogConfig{
			DataDir:      getEnv("DATA_DIR", "data"),
			BooksPerPage: getEnvInt("BOOKS_PER_PAGE", 10),
			RandomBooks:  getEnvInt("RANDOM_BOOKS", 5),
			PasswordCost: getEnvInt("PASSWORD_COST", 10),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvFloat("RATE_LIMIT_RPS", 10),
			Burst: getEnvInt("RATE_LIMIT_BURST", 20),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	return validation.Errors{
		"APP_ADDR":         validation.Validate(c.App.Addr, validation.Required),
		"REPOSITORY":       validation.Validate(c.Repository.Kind, validation.In(RepositoryMemory, RepositoryPostgres)),
		"DB_DSN":           validation.Validate(c.Repository.DSN, validation.When(c.Repository.Kind == RepositoryPostgres, validation.Required)),
		"DB_TIMEOUT":       validation.Validate(c.Repository.Timeout, validation.Min(time.Millisecond)),
		"BOOKS_PER_PAGE":   validation.Validate(c.Catalog.BooksPerPage, validation.Min(1)),
		"RANDOM_BOOKS":     validation.Validate(c.Catalog.RandomBooks, validation.Min(0)),
		"RATE_LIMIT_RPS":   validation.Validate(c.RateLimit.RPS, validation.Min(0.0).Exclusive()),
		"RATE_LIMIT_BURST": validation.Validate(c.RateLimit.Burst, validation.Min(1)),
	}.Filter()
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
