package app

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	httpapi "github.com/hypolab/workspace/internal/workspace/http"
	"github.com/hypolab/workspace/internal/workspace/notify"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env                 string        `env:"ENV" envDefault:"dev"`                   // dev, staging, prod
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`            // debug, info, warn, error
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`           // json, text
	Port                int           `env:"PORT" envDefault:"8080"`                 // HTTP listen port
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"` // drain time on SIGTERM

	DatabaseDriver string `env:"WORKSPACE_DATABASE_DRIVER" envDefault:"sqlite"`         // sqlite or postgres
	DatabaseDSN    string `env:"WORKSPACE_DATABASE_DSN" envDefault:"file:workspace.db"` // file for sqlite, URL for postgres

	// RedisURL enables the email queue. Empty logs notices instead.
	RedisURL    string `env:"WORKSPACE_REDIS_URL"`
	NotifyQueue string `env:"WORKSPACE_NOTIFY_QUEUE"`

	BaseURL            string        `env:"WORKSPACE_BASE_URL" envDefault:"http://localhost:3000"`
	InvitationValidity time.Duration `env:"WORKSPACE_INVITATION_VALIDITY" envDefault:"168h"`

	// PermissionsFile is a YAML role table. Empty uses the built-in table.
	PermissionsFile string `env:"WORKSPACE_PERMISSIONS_FILE"`

	// Identity provider. One of JWKSURL or JWKSFile is required.
	JWKSURL       string        `env:"WORKSPACE_JWKS_URL"`
	JWKSFile      string        `env:"WORKSPACE_JWKS_FILE"`
	JWKSRefresh   time.Duration `env:"WORKSPACE_JWKS_REFRESH" envDefault:"15m"`
	TokenIssuer   string        `env:"WORKSPACE_TOKEN_ISSUER"`
	TokenAudience []string      `env:"WORKSPACE_TOKEN_AUDIENCE" envSeparator:","`
	TokenLeeway   time.Duration `env:"WORKSPACE_TOKEN_LEEWAY" envDefault:"30s"`

	// Rate limits, e.g. WORKSPACE_RATE_ACCEPT_REQUESTS=5.
	Limits httpapi.Limits `envPrefix:"WORKSPACE_RATE_"`
}

// LoadConfig reads the environment, after loading any of envFiles that
// exist. Variables already set win over the files.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		NotifyQueue: notify.DefaultQueueKey,
		Limits:      httpapi.DefaultLimits(),
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("config: unknown database driver %q", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return errors.New("config: WORKSPACE_DATABASE_DSN is required")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: WORKSPACE_BASE_URL must be an absolute URL, got %q", c.BaseURL)
	}
	if c.InvitationValidity <= 0 {
		return errors.New("config: WORKSPACE_INVITATION_VALIDITY must be positive")
	}

	if c.JWKSURL == "" && c.JWKSFile == "" {
		return errors.New("config: one of WORKSPACE_JWKS_URL or WORKSPACE_JWKS_FILE is required")
	}
	return nil
}
