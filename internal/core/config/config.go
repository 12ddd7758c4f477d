package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the service reads from the environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Sheets   SheetsConfig
	Jira     JiraConfig
}

type ServerConfig struct {
	Host               string
	Env                string
	CORSAllowedOrigins []string
	RequestTimeout     time.Duration
}

type DatabaseConfig struct {
	URL           string
	MigrationsDir string
	MaxOpenConns  int
}

// RedisConfig is optional. Without a URL the login limiter falls back to
// memory and last-seen updates are not throttled across instances.
type RedisConfig struct {
	URL string
}

type AuthConfig struct {
	JWTSecret            string
	TokenTTL             time.Duration
	DefaultStaffPassword string
	LoginAttempts        int
	LoginWindow          time.Duration
	LastSeenInterval     time.Duration
}

type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	SheetName       string
}

func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

type JiraConfig struct {
	BaseURL       string
	Email         string
	APIToken      string
	ServiceDeskID string
	RequestTypeID string
	Timeout       time.Duration
}

func (j JiraConfig) Enabled() bool {
	return j.BaseURL != "" && j.Email != "" && j.APIToken != "" && j.ServiceDeskID != "" && j.RequestTypeID != ""
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Load reads environment variables, optionally from envFile first, and
// validates the result. Variables already set in the environment win over
// the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func fromEnv() (*Config, error) {
	requestTimeout, err := getDuration("REQUEST_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	maxOpenConns, err := getInt("DATABASE_MAX_OPEN_CONNS", 10)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := getDuration("JWT_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	loginAttempts, err := getInt("LOGIN_RATE_LIMIT", 5)
	if err != nil {
		return nil, err
	}
	loginWindow, err := getDuration("LOGIN_RATE_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}
	lastSeenInterval, err := getDuration("LAST_SEEN_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	jiraTimeout, err := getDuration("JIRA_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Host:               getenvWithDefault("APP_HOST", ":8080"),
			Env:                getenvWithDefault("APP_ENV", "development"),
			CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
			RequestTimeout:     requestTimeout,
		},
		Database: DatabaseConfig{
			URL:           os.Getenv("DATABASE_URL"),
			MigrationsDir: getenvWithDefault("MIGRATIONS_DIR", "migrations"),
			MaxOpenConns:  maxOpenConns,
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Auth: AuthConfig{
			JWTSecret:            os.Getenv("JWT_SECRET"),
			TokenTTL:             tokenTTL,
			DefaultStaffPassword: getenvWithDefault("DEFAULT_STAFF_PASSWORD", "changeme123"),
			LoginAttempts:        loginAttempts,
			LoginWindow:          loginWindow,
			LastSeenInterval:     lastSeenInterval,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"),
			SheetName:       getenvWithDefault("GOOGLE_SHEETS_SHEET_NAME", "Stock"),
		},
		Jira: JiraConfig{
			BaseURL:       strings.TrimRight(os.Getenv("JIRA_BASE_URL"), "/"),
			Email:         os.Getenv("JIRA_EMAIL"),
			APIToken:      os.Getenv("JIRA_API_TOKEN"),
			ServiceDeskID: os.Getenv("JIRA_SERVICE_DESK_ID"),
			RequestTypeID: os.Getenv("JIRA_REQUEST_TYPE_ID"),
			Timeout:       jiraTimeout,
		},
	}, nil
}

// Validate ensures required settings are present and optional integrations
// are either fully configured or not configured at all.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	switch {
	case c.Database.URL == "":
		return errors.New("DATABASE_URL must be provided")
	case c.Auth.JWTSecret == "":
		return errors.New("JWT_SECRET must be provided")
	case c.Auth.TokenTTL <= 0:
		return errors.New("JWT_TTL must be positive")
	case c.Auth.LoginAttempts < 1:
		return errors.New("LOGIN_RATE_LIMIT must be at least 1")
	case c.Auth.DefaultStaffPassword == "":
		return errors.New("DEFAULT_STAFF_PASSWORD must not be empty")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEETS_SPREADSHEET_ID must be set together")
	}

	jiraSet := 0
	for _, value := range []string{c.Jira.BaseURL, c.Jira.Email, c.Jira.APIToken, c.Jira.ServiceDeskID, c.Jira.RequestTypeID} {
		if value != "" {
			jiraSet++
		}
	}
	if jiraSet != 0 && jiraSet != 5 {
		return errors.New("JIRA_BASE_URL, JIRA_EMAIL, JIRA_API_TOKEN, JIRA_SERVICE_DESK_ID and JIRA_REQUEST_TYPE_ID must be set together")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return parsed, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
