package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Inventory InventoryConfig
	Session   SessionConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
}

// AppConfig holds environment-wide options.
type AppConfig struct {
	Env string
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// InventoryConfig points at the inventory backend REST API.
type InventoryConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig controls how long an idle form session is kept and how often
// the sweeper runs.
type SessionConfig struct {
	IdleTimeout   time.Duration
	SweepSchedule string
}

// MongoDBConfig holds settings for the activity journal. An empty URI disables it.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig holds settings for the optional Google Sheets activity export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	ActivityRange   string
}

// Enabled reports whether both credentials and a spreadsheet were provided.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	apiTimeout, err := getDurationWithDefault("INVENTORY_API_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	idleTimeout, err := getDurationWithDefault("SESSION_IDLE_TIMEOUT", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env: getenvWithDefault("APP_ENV", "production"),
		},
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Inventory: InventoryConfig{
			BaseURL: getenvWithDefault("INVENTORY_API_URL", "http://localhost:5000"),
			Timeout: apiTimeout,
		},
		Session: SessionConfig{
			IdleTimeout:   idleTimeout,
			SweepSchedule: getenvWithDefault("SESSION_SWEEP_SCHEDULE", "*/5 * * * *"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "stockdesk"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			ActivityRange:   getenvWithDefault("ACTIVITY_SHEET_RANGE", "Movimentos!A:H"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Inventory.BaseURL == "" {
		return errors.New("INVENTORY_API_URL must not be empty")
	}
	u, err := url.Parse(c.Inventory.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("INVENTORY_API_URL %q is not an absolute url", c.Inventory.BaseURL)
	}

	if c.Inventory.Timeout <= 0 {
		return errors.New("INVENTORY_API_TIMEOUT must be positive")
	}

	if c.Session.IdleTimeout <= 0 {
		return errors.New("SESSION_IDLE_TIMEOUT must be positive")
	}

	if c.Session.SweepSchedule == "" {
		return errors.New("SESSION_SWEEP_SCHEDULE must be provided")
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided when MONGODB_URI is set")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be set together")
	}

	if c.Sheets.Enabled() && c.Sheets.ActivityRange == "" {
		return errors.New("ACTIVITY_SHEET_RANGE must not be empty")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationWithDefault(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
