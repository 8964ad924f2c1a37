package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Store drivers.
const (
	DriverBolt      = "bolt"
	DriverPostgres  = "postgres"
	DriverMemory    = "memory"
	DriverEphemeral = "ephemeral"
)

// Config holds the storefront configuration, loadable from environment
// variables (VOLTHERM_ prefix), flags, or YAML config files.
type Config struct {
	Addr      string `default:"0.0.0.0:8080" usage:"API server listen address"`
	Remote    RemoteConfig
	Store     StoreConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Graceful  GracefulConfig
	Log       LogConfig
}

// RemoteConfig points at the backend API.
type RemoteConfig struct {
	BaseURL       string        `default:"http://localhost:5000" usage:"Backend API base URL" flag:"remote-url"`
	JSONTimeout   time.Duration `default:"30s" usage:"Timeout of JSON requests"`
	UploadTimeout time.Duration `default:"60s" usage:"Timeout of multipart uploads"`
	ProbeAttempts int           `default:"3"   usage:"Connectivity probe attempts"`
	ProbeInterval time.Duration `default:"1s"  usage:"Delay between probe attempts"`
	ProbeCacheTTL time.Duration `default:"0s"  usage:"Cache probe results for this long, 0 probes on every call" flag:"probe-cache-ttl"`
}

// StoreConfig selects the local store backend.
type StoreConfig struct {
	Driver      string `default:"bolt" usage:"Local store driver: bolt, postgres, memory or ephemeral" flag:"store-driver"`
	Path        string `default:"voltherm.db" usage:"bbolt file path" flag:"store-path"`
	DatabaseURL string `usage:"PostgreSQL URL for the postgres driver (VOLTHERM_STORE_DATABASEURL or DATABASE_URL)" flag:"database-url"`
}

// AdminConfig guards the back office API.
type AdminConfig struct {
	KeyHash   string `usage:"Hex HMAC-SHA256 of the admin key; the admin API is closed when empty"`
	KeyPepper string `usage:"HMAC pepper for the admin key"`
	Username  string `usage:"Admin username accepted while the backend is unreachable"`
	Password  string `usage:"Admin password accepted while the backend is unreachable"`
}

// RateLimitConfig limits anonymous inquiry submissions per client.
type RateLimitConfig struct {
	Max        int           `default:"10" usage:"Max inquiry submissions per window"`
	Window     time.Duration `default:"1m" usage:"Rate limit window duration"`
	// TrustProxy keys clients by X-Forwarded-For; set behind a reverse proxy.
	TrustProxy bool          `default:"false" usage:"Identify clients by X-Forwarded-For"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"true" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LogConfig adds a rotating JSON log file next to the console output.
type LogConfig struct {
	File       string `usage:"Rotating log file path, empty disables file logging" flag:"log-file"`
	MaxSizeMB  int    `default:"100" usage:"Log file size before rotation"`
	MaxBackups int    `default:"5"   usage:"Rotated log files to keep"`
	MaxAgeDays int    `default:"30"  usage:"Days to keep rotated log files"`
}

// LoadConfig loads configuration from environment variables, YAML config files,
// and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "VOLTHERM",
		Files:     []string{"config.yaml", "/etc/voltherm/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverBolt:
		if c.Store.Path == "" {
			return errors.New("store path is required for the bolt driver")
		}
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return errors.New("database URL is required for the postgres driver: set VOLTHERM_STORE_DATABASEURL or DATABASE_URL")
		}
	case DriverMemory, DriverEphemeral:
	default:
		return errors.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if (c.Admin.Username == "") != (c.Admin.Password == "") {
		return errors.New("admin username and password must be set together")
	}
	return nil
}

// applyPlatformDefaults maps platform-provided environment variables (Railway,
// Render, etc.) that use standard names like DATABASE_URL and PORT to the
// application's VOLTHERM_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.Store.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.Store.DatabaseURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
