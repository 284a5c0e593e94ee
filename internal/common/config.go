package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Duration decodes TOML duration strings like "2s" or "500ms". go-toml does
// not decode strings into time.Duration directly, so config fields use this
// type and call Std() at the point of use.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a standard time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logging   LoggingConfig   `toml:"logging"`
	Storage   StorageConfig   `toml:"storage"`
	Gemini    GeminiConfig    `toml:"gemini"`
	Crawler   CrawlerConfig   `toml:"crawler"`
	Scheduler SchedulerConfig `toml:"scheduler"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey  string `toml:"api_key"` // Google Gemini API key; FORAGE_GEMINI_API_KEY or GEMINI_API_KEY override
	Model   string `toml:"model"`   // Model for extraction operations (default: "gemini-2.0-flash")
	Timeout string `toml:"timeout"` // Operation timeout as duration string (default: "5m")
}

// CrawlerConfig contains fetch behavior for the grocery page crawl
type CrawlerConfig struct {
	URLs           []string `toml:"urls"`            // Target pages, fetched sequentially in order
	UserAgent      string   `toml:"user_agent"`      // Browser-like user agent string
	RequestDelay   Duration `toml:"request_delay"`   // Minimum delay between requests, e.g. "2s"
	RequestTimeout Duration `toml:"request_timeout"` // HTTP request timeout, e.g. "30s"
	MaxBodySize    int      `toml:"max_body_size"`   // Maximum response body size in bytes
}

// SchedulerConfig contains the optional cron-scheduled crawl trigger
type SchedulerConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // Cron schedule format
}

// NewDefaultConfig returns configuration defaults
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:           "./data/forage",
				ResetOnStartup: false,
			},
		},
		Gemini: GeminiConfig{
			APIKey:  "", // User must provide API key (env or config)
			Model:   "gemini-2.0-flash",
			Timeout: "5m",
		},
		Crawler: CrawlerConfig{
			URLs:           []string{"https://www.aldi-nord.de/"},
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			RequestDelay:   Duration(2 * time.Second),
			RequestTimeout: Duration(30 * time.Second),
			MaxBodySize:    10 * 1024 * 1024,
		},
		Scheduler: SchedulerConfig{
			Enabled:  false,
			Schedule: "0 6 * * *",
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env. Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("FORAGE_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("FORAGE_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if level := os.Getenv("FORAGE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("FORAGE_LOG_OUTPUT"); output != "" {
		config.Logging.Output = splitAndTrim(output)
	}

	if badgerPath := os.Getenv("FORAGE_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Credential resolution: project-prefixed variable wins, the bare
	// GEMINI_API_KEY is accepted for compatibility with existing deployments.
	if apiKey := os.Getenv("FORAGE_GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	} else if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if model := os.Getenv("FORAGE_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}

	if urls := os.Getenv("FORAGE_CRAWLER_URLS"); urls != "" {
		config.Crawler.URLs = splitAndTrim(urls)
	}
	if userAgent := os.Getenv("FORAGE_CRAWLER_USER_AGENT"); userAgent != "" {
		config.Crawler.UserAgent = userAgent
	}
	if requestDelay := os.Getenv("FORAGE_CRAWLER_REQUEST_DELAY"); requestDelay != "" {
		if d, err := time.ParseDuration(requestDelay); err == nil {
			config.Crawler.RequestDelay = Duration(d)
		}
	}
	if requestTimeout := os.Getenv("FORAGE_CRAWLER_REQUEST_TIMEOUT"); requestTimeout != "" {
		if d, err := time.ParseDuration(requestTimeout); err == nil {
			config.Crawler.RequestTimeout = Duration(d)
		}
	}

	if enabled := os.Getenv("FORAGE_SCHEDULER_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			config.Scheduler.Enabled = b
		}
	}
	if schedule := os.Getenv("FORAGE_SCHEDULER_SCHEDULE"); schedule != "" {
		config.Scheduler.Schedule = schedule
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
