package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Sheets   SheetsConfig   `yaml:"sheets" envconfig:"SHEETS"`
	OpenAI   OpenAIConfig   `yaml:"openai" envconfig:"OPENAI"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"3000" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	AnalysisTimeout time.Duration `yaml:"analysis_timeout" envconfig:"ANALYSIS_TIMEOUT" default:"3m" validate:"gt=0"`
}

// SecurityConfig contains CORS and rate limiting configuration.
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000" validate:"min=1"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"50"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"25"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// SheetsConfig identifies the spreadsheet and how its columns map to
// semantic roles. CredentialsEnv names the environment variable whose
// value is the raw service-account JSON.
type SheetsConfig struct {
	SpreadsheetID   string `yaml:"spreadsheet_id" envconfig:"SPREADSHEET_ID" default:"1lGZbo2J6_mGGHf8dtvI-T_NtJwXvOZre_hC_8OYZkpQ" validate:"required"`
	CredentialsEnv  string `yaml:"credentials_env" envconfig:"CREDENTIALS_ENV" default:"GOOGLE_SERVICE_ACCOUNT_JSON"`
	DefaultTab      string `yaml:"default_tab" envconfig:"DEFAULT_TAB" default:"OrdersTable"`
	AmountHeader    string `yaml:"amount_header" envconfig:"AMOUNT_HEADER" default:"Item Price" validate:"required"`
	TimestampHeader string `yaml:"timestamp_header" envconfig:"TIMESTAMP_HEADER" default:"Purchase Date Time" validate:"required"`
	Timezone        string `yaml:"timezone" envconfig:"TIMEZONE" default:"UTC"`
}

// OpenAIConfig contains the analysis model settings. APIKeyEnv names
// the environment variable holding the key; the key itself never lives
// in a config file.
type OpenAIConfig struct {
	APIKeyEnv   string  `yaml:"api_key_env" envconfig:"API_KEY_ENV" default:"OPENAI_API_KEY"`
	Model       string  `yaml:"model" envconfig:"MODEL" default:"gpt-4o-mini"`
	BaseURL     string  `yaml:"base_url" envconfig:"BASE_URL" default:"https://api.openai.com/v1"`
	Temperature float64 `yaml:"temperature" envconfig:"TEMPERATURE" default:"0.3" validate:"gte=0,lte=2"`
	MaxTokens   int     `yaml:"max_tokens" envconfig:"MAX_TOKENS" default:"0"`
}

// PathsConfig contains file system paths.
type PathsConfig struct {
	WebDir  string `yaml:"web_dir" envconfig:"WEB_DIR" default:"web"`
	LogsDir string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// Load loads configuration from environment variables layered over an
// optional YAML config file, then validates the result.
func Load() (*Config, error) {
	var cfg Config

	if configFile := findConfigFile(); configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = *fileCfg
	}

	// Environment overrides file values; envconfig also fills defaults
	// for anything still zero.
	if err := envconfig.Process("FPA", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration using struct validation tags.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	if c.Logging.Format != "json" {
		// Output stays machine-readable regardless of what the file says.
		c.Logging.Format = "json"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}
	return nil
}

// ServiceAccountJSON reads the Google service-account credentials from
// the configured environment variable.
func (c *Config) ServiceAccountJSON() ([]byte, error) {
	raw := os.Getenv(c.Sheets.CredentialsEnv)
	if raw == "" {
		return nil, fmt.Errorf("%s is not set", c.Sheets.CredentialsEnv)
	}
	return []byte(raw), nil
}

// OpenAIKey reads the OpenAI API key from the configured environment
// variable. An empty result means analysis is disabled, not an error.
func (c *Config) OpenAIKey() string {
	return os.Getenv(c.OpenAI.APIKeyEnv)
}

// Location resolves the configured timezone. Unknown names fall back
// to UTC rather than failing startup.
func (s SheetsConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns the default configuration, used by tests and by
// components that run without a loaded environment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
			AnalysisTimeout: 3 * time.Minute,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     50,
				Burst:   25,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/app.log",
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   "1lGZbo2J6_mGGHf8dtvI-T_NtJwXvOZre_hC_8OYZkpQ",
			CredentialsEnv:  "GOOGLE_SERVICE_ACCOUNT_JSON",
			DefaultTab:      "OrdersTable",
			AmountHeader:    "Item Price",
			TimestampHeader: "Purchase Date Time",
			Timezone:        "UTC",
		},
		OpenAI: OpenAIConfig{
			APIKeyEnv:   "OPENAI_API_KEY",
			Model:       "gpt-4o-mini",
			BaseURL:     "https://api.openai.com/v1",
			Temperature: 0.3,
		},
		Paths: PathsConfig{
			WebDir:  "web",
			LogsDir: "logs",
		},
	}
}
