package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
)

// Storage drivers accepted in DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Storage    Storage
	Postgres   Postgres
	Redis      Redis
	Pagination Pagination
	RateLimit  RateLimit
	CORS       CORS
	Importer   Importer
}

// Storage selects the question store backend.
type Storage struct {
	Driver     string `env:"DB_DRIVER" envDefault:"postgres"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"trivia.db"`
	SQLiteSeed bool   `env:"SQLITE_SEED" envDefault:"true"`
}

// Postgres captures connection info for the SQL database. Only validated
// when Storage.Driver is postgres.
type Postgres struct {
	Host     string `env:"PG_HOST" envDefault:""`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER" envDefault:""`
	Password string `env:"PG_PASSWORD" envDefault:""`
	Database string `env:"PG_DATABASE" envDefault:""`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns int32  `env:"PG_MAX_CONNS" envDefault:"10"`
}

// DSN renders the connection string used by pgxpool and goose.
func (p Postgres) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.Database,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}
	return u.String()
}

// Redis backs the rate limiter. An empty Addr disables it.
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Enabled reports whether a Redis address was configured.
func (r Redis) Enabled() bool {
	return r.Addr != ""
}

// Pagination sets the listing window.
type Pagination struct {
	QuestionsPerPage int `env:"QUESTIONS_PER_PAGE" envDefault:"10"`
}

// RateLimit bounds mutating requests per client per window.
type RateLimit struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"60"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,PATCH,POST,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authentication,true"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Importer configures cmd/importer.
type Importer struct {
	OpenTDBURL string        `env:"OPENTDB_BASE_URL" envDefault:"https://opentdb.com"`
	Amount     int           `env:"IMPORT_AMOUNT" envDefault:"20"`
	Timeout    time.Duration `env:"IMPORT_TIMEOUT" envDefault:"10s"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c *App) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case DriverPostgres:
		for name, v := range map[string]string{
			"PG_HOST":     c.Postgres.Host,
			"PG_USER":     c.Postgres.User,
			"PG_PASSWORD": c.Postgres.Password,
			"PG_DATABASE": c.Postgres.Database,
		} {
			if v == "" {
				errs = append(errs, fmt.Errorf("%s is required for driver %q", name, DriverPostgres))
			}
		}
	case DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q: want %q or %q", c.Storage.Driver, DriverPostgres, DriverSQLite))
	}
	if c.Pagination.QuestionsPerPage <= 0 {
		errs = append(errs, errors.New("QUESTIONS_PER_PAGE must be positive"))
	}
	if c.RateLimit.Requests < 0 || c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS must be >= 0 and RATE_LIMIT_WINDOW positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("validate config: %w", errors.Join(errs...))
	}
	return nil
}
