package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Provider exposes configuration values to the rest of the application.
// Consumers depend on this interface so tests can supply their own values.
type Provider interface {
	GetServerAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetAccountStore() string
	GetAccountFile() string
	GetDBUrl() string
	GetDBUser() string
	GetDBPass() string
	GetDBNs() string
	GetDBDb() string
	GetEmailProvider() string
	GetEmailSender() string
	GetEmailAPIKey() string
	GetFormTTL() time.Duration
	GetNotifyPolicy() string
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr    string
	AppBaseURL    string
	SessionSecret string

	AccountStore string
	AccountFile  string

	DBUrl  string
	DBUser string
	DBPass string
	DBNs   string
	DBDb   string

	EmailProvider string
	EmailSender   string
	EmailAPIKey   string

	FormTTL      time.Duration
	NotifyPolicy string
}

// Load reads configuration from a .env file, when present, and the
// environment.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("required environment variable SESSION_SECRET is not set")
	}
	return cfg, nil
}

// LoadWithoutSession is Load for tools that never serve HTTP, so
// SESSION_SECRET is not required.
func LoadWithoutSession() (*Config, error) {
	return read()
}

func read() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		ServerAddr:    getenv("SERVER_ADDR", ":8080"),
		AppBaseURL:    getenv("APP_BASE_URL", "http://localhost:8080"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		AccountStore:  getenv("ACCOUNT_STORE", "memory"),
		AccountFile:   getenv("ACCOUNT_FILE", "data/accounts.json"),
		DBUrl:         os.Getenv("SURREAL_URL"),
		DBUser:        os.Getenv("SURREAL_USER"),
		DBPass:        os.Getenv("SURREAL_PASS"),
		DBNs:          os.Getenv("SURREAL_NS"),
		DBDb:          os.Getenv("SURREAL_DB"),
		EmailProvider: getenv("EMAIL_PROVIDER", "log"),
		EmailSender:   os.Getenv("EMAIL_SENDER"),
		EmailAPIKey:   os.Getenv("EMAIL_API_KEY"),
		NotifyPolicy:  getenv("NOTIFY_POLICY", "success"),
	}

	ttl, err := time.ParseDuration(getenv("FORM_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid FORM_TTL: %w", err)
	}
	cfg.FormTTL = ttl

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// New loads configuration and exits the process when it is invalid.
func New() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.AccountStore {
	case "memory", "file":
	case "surreal":
		if c.DBUrl == "" || c.DBNs == "" || c.DBDb == "" {
			return errors.New("ACCOUNT_STORE=surreal requires SURREAL_URL, SURREAL_NS and SURREAL_DB")
		}
	default:
		return fmt.Errorf("unknown ACCOUNT_STORE %q", c.AccountStore)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) GetServerAddr() string     { return c.ServerAddr }
func (c *Config) GetAppBaseURL() string     { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string  { return c.SessionSecret }
func (c *Config) GetAccountStore() string   { return c.AccountStore }
func (c *Config) GetAccountFile() string    { return c.AccountFile }
func (c *Config) GetDBUrl() string          { return c.DBUrl }
func (c *Config) GetDBUser() string         { return c.DBUser }
func (c *Config) GetDBPass() string         { return c.DBPass }
func (c *Config) GetDBNs() string           { return c.DBNs }
func (c *Config) GetDBDb() string           { return c.DBDb }
func (c *Config) GetEmailProvider() string  { return c.EmailProvider }
func (c *Config) GetEmailSender() string    { return c.EmailSender }
func (c *Config) GetEmailAPIKey() string    { return c.EmailAPIKey }
func (c *Config) GetFormTTL() time.Duration { return c.FormTTL }
func (c *Config) GetNotifyPolicy() string   { return c.NotifyPolicy }
