package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the immutable application configuration built once at startup.
type Config struct {
	Port        string
	DBPath      string
	LogLevel    string
	Session     SessionConfig
	GoogleBooks GoogleBooksConfig
	CORS        CORSConfig
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

type GoogleBooksConfig struct {
	APIKey  string
	BaseURL string
}

type CORSConfig struct {
	AllowedOrigins []string
}

const (
	defaultPort        = "8080"
	defaultDBPath      = "app.db"
	defaultLogLevel    = "info"
	defaultSessionTTL  = 24 * time.Hour
	defaultCookieName  = "bookshelf_session"
	defaultBooksAPIURL = "https://www.googleapis.com"
)

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string][]string{
	"port":                  {"BOOKSHELF_PORT", "PORT"},
	"db.path":               {"BOOKSHELF_DB_PATH"},
	"log.level":             {"BOOKSHELF_LOG_LEVEL"},
	"session.secret":        {"SESSION_SECRET"},
	"session.ttl":           {"SESSION_TTL"},
	"session.cookie_name":   {"SESSION_COOKIE_NAME"},
	"session.cookie_secure": {"SESSION_COOKIE_SECURE"},
	"googlebooks.api_key":   {"GOOGLE_BOOKS_API_KEY"},
	"googlebooks.base_url":  {"GOOGLE_BOOKS_BASE_URL"},
	"cors.allowed_origins":  {"CORS_ALLOWED_ORIGINS"},
}

// flagBindings maps config keys to CLI flag names.
var flagBindings = map[string]string{
	"port":      "port",
	"db.path":   "db",
	"log.level": "log-level",
}

// New returns a viper instance with defaults and environment bindings applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("port", defaultPort)
	v.SetDefault("db.path", defaultDBPath)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("session.ttl", defaultSessionTTL)
	v.SetDefault("session.cookie_name", defaultCookieName)
	v.SetDefault("session.cookie_secure", false)
	v.SetDefault("googlebooks.base_url", defaultBooksAPIURL)

	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
	return v
}

// BindFlags lets command-line flags override file and environment values.
// Flags missing from fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagBindings {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// Read loads .env (if present) into the environment and merges the YAML config
// into v. An empty configFile means configs/config.yml, which is optional.
func Read(v *viper.Viper, configFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// Load reads the configuration sources, then builds and validates the Config.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if err := Read(v, configFile); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:     v.GetString("port"),
		DBPath:   v.GetString("db.path"),
		LogLevel: v.GetString("log.level"),
		Session: SessionConfig{
			Secret:       v.GetString("session.secret"),
			TTL:          v.GetDuration("session.ttl"),
			CookieName:   v.GetString("session.cookie_name"),
			CookieSecure: v.GetBool("session.cookie_secure"),
		},
		GoogleBooks: GoogleBooksConfig{
			APIKey:  v.GetString("googlebooks.api_key"),
			BaseURL: strings.TrimRight(v.GetString("googlebooks.base_url"), "/"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetStringSlice("cors.allowed_origins")),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first missing or invalid required setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Session.Secret) == "" {
		return errors.New("session.secret is required (set SESSION_SECRET)")
	}
	if strings.TrimSpace(c.GoogleBooks.APIKey) == "" {
		return errors.New("googlebooks.api_key is required (set GOOGLE_BOOKS_API_KEY)")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %s", c.Session.TTL)
	}
	if c.DBPath == "" {
		return errors.New("db.path must not be empty")
	}
	return nil
}

// splitList accepts both YAML lists and comma-separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
