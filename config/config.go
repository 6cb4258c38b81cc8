// Package config loads the mealbox settings from a YAML file,
// falling back to defaults and honoring MEALBOX_* environment overrides.
package config

import (
	"errors"
	"io"
	"os"
	"strings"

	"mealbox/price"
	"mealbox/selection"

	"github.com/rohanthewiz/serr"
	"go.yaml.in/yaml/v4"
)

// Environment variables that override file settings
const (
	EnvConfigPath = "MEALBOX_CONFIG"
	EnvAddress    = "MEALBOX_ADDRESS"
	EnvDBPath     = "MEALBOX_DB_PATH"
	EnvJWTSecret  = "MEALBOX_JWT_SECRET"
	EnvLogLevel   = "MEALBOX_LOG_LEVEL"

	// MinSecretLength is the minimum acceptable length for the session signing key
	MinSecretLength = 32
)

// Config holds the configuration for the application
type Config struct {
	Server  Server         `yaml:"server"`
	DB      DB             `yaml:"db"`
	Session Session        `yaml:"session"`
	Plan    selection.Plan `yaml:"plan"`
	Pricing price.Pricing  `yaml:"pricing"`
	Menu    Menu           `yaml:"menu"`
	Log     Log            `yaml:"log"`
}

type Server struct {
	Address   string `yaml:"address"`
	Verbose   bool   `yaml:"verbose"`
	PublicURL string `yaml:"public_url"` // prefix for recipe image references
	RateLimit int    `yaml:"rate_limit"` // box changes per client per minute; 0 disables
}

type DB struct {
	Path string `yaml:"path"`
}

type Session struct {
	JWTSecret string `yaml:"jwt_secret"`
	TTLHours  int    `yaml:"ttl_hours"`
}

type Menu struct {
	Path string `yaml:"path"` // YAML menu seeded at startup; empty skips seeding
}

type Log struct {
	Level string `yaml:"level"`
}

// Default returns a config that runs locally without a file
func Default() Config {
	return Config{
		Server: Server{
			Address:   ":8000",
			Verbose:   true,
			PublicURL: "/static/img",
			RateLimit: 120,
		},
		DB:      DB{Path: "./data/mealbox.ddb"},
		Session: Session{TTLHours: 24 * 7},
		Plan:    selection.DefaultPlan(),
		Pricing: price.Pricing{PerServing: 899, Shipping: 699},
		Menu:    Menu{Path: "./data/menu.yaml"},
		Log:     Log{Level: "info"},
	}
}

// Read parses YAML over the defaults. An empty reader yields the defaults.
func Read(reader io.Reader) (Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(reader).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, serr.Wrap(err, "failed to decode config")
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Load reads the config file at path. A missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return Read(strings.NewReader(""))
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Read(strings.NewReader(""))
		}
		return Default(), serr.Wrap(err, "failed to open config file")
	}
	defer f.Close()

	return Read(f)
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAddress); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		c.DB.Path = v
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		c.Session.JWTSecret = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if c.Session.JWTSecret == "" {
		// For development only. Set MEALBOX_JWT_SECRET in production.
		c.Session.JWTSecret = "development-only-secret-do-not-use-in-production"
	}
}

// Validate checks the settings are usable
func (c Config) Validate() error {
	if c.Server.Address == "" {
		return serr.New("server.address is required")
	}
	if c.DB.Path == "" {
		return serr.New("db.path is required")
	}
	if len(c.Session.JWTSecret) < MinSecretLength {
		return serr.New("session.jwt_secret must be at least 32 characters")
	}
	if c.Session.TTLHours <= 0 {
		return serr.New("session.ttl_hours must be positive")
	}
	if c.Server.RateLimit < 0 {
		return serr.New("server.rate_limit must not be negative")
	}
	if c.Pricing.PerServing < 0 || c.Pricing.Shipping < 0 {
		return serr.New("pricing amounts must not be negative")
	}
	if err := c.Plan.Validate(); err != nil {
		return serr.Wrap(err, "invalid plan")
	}
	return nil
}
