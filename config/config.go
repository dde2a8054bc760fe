package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"gambler/arcade/database"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	GuildID      string // Primary Discord guild ID

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Economy configuration
	StartingBalance int64

	// Game configuration
	GameMinBet         int64
	GameMaxBet         int64 // 0 means no upper limit
	GameSessionTimeout time.Duration
	CrashTickInterval  time.Duration
	RaceTickInterval   time.Duration
	SweepInterval      time.Duration

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated), empty disables publishing

	// OpenTelemetry configuration
	OTelEnabled              bool
	OTelServiceName          string
	OTelExporterType         string // "console", "otlp" or "none"
	OTelOTLPEndpoint         string
	OTelExportIntervalMillis int

	// Logging
	LogLevel string

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
				instance.DiscordToken = "test-token"
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// GuildIDInt returns the primary guild ID, or 0 if it is unset or invalid
func (c *Config) GuildIDInt() int64 {
	id, err := strconv.ParseInt(c.GuildID, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		GuildID:      os.Getenv("GUILD_ID"),

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// NATS
		NATSServers: os.Getenv("NATS_SERVERS"),

		// OpenTelemetry
		OTelServiceName:  getEnvWithDefault("OTEL_SERVICE_NAME", "arcade"),
		OTelExporterType: getEnvWithDefault("OTEL_EXPORTER_TYPE", "console"),
		OTelOTLPEndpoint: getEnvWithDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "otel-collector:4317"),

		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		Environment: os.Getenv("ENVIRONMENT"),
	}

	var err error
	if config.StartingBalance, err = getEnvInt64("STARTING_BALANCE", 100000); err != nil {
		return nil, err
	}
	if config.GameMinBet, err = getEnvInt64("GAME_MIN_BET", 1); err != nil {
		return nil, err
	}
	if config.GameMaxBet, err = getEnvInt64("GAME_MAX_BET", 0); err != nil {
		return nil, err
	}
	if config.GameSessionTimeout, err = getEnvDuration("GAME_SESSION_TIMEOUT", 2*time.Minute); err != nil {
		return nil, err
	}
	if config.CrashTickInterval, err = getEnvDuration("CRASH_TICK_INTERVAL", time.Second); err != nil {
		return nil, err
	}
	if config.RaceTickInterval, err = getEnvDuration("RACE_TICK_INTERVAL", 1500*time.Millisecond); err != nil {
		return nil, err
	}
	if config.SweepInterval, err = getEnvDuration("SWEEP_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}

	config.OTelEnabled = os.Getenv("OTEL_ENABLED") == "true"
	interval, err := getEnvInt64("OTEL_EXPORT_INTERVAL_MILLIS", 60000)
	if err != nil {
		return nil, err
	}
	config.OTelExportIntervalMillis = int(interval)

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.GameMinBet < 0 {
		return fmt.Errorf("GAME_MIN_BET cannot be negative")
	}
	if c.GameMaxBet != 0 && c.GameMaxBet < c.GameMinBet {
		return fmt.Errorf("GAME_MAX_BET must be at least GAME_MIN_BET")
	}
	if c.StartingBalance < 0 {
		return fmt.Errorf("STARTING_BALANCE cannot be negative")
	}

	if c.Environment == "test" {
		return nil
	}

	// Validate required configuration
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.DatabaseName != "" && strings.TrimSpace(c.DatabaseName) == "" {
		return fmt.Errorf("DATABASE_NAME cannot be empty when provided")
	}
	return nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 90s: %w", key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return parsed, nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:        "test",
		StartingBalance:    100000,
		GameMinBet:         1,
		GameSessionTimeout: 2 * time.Minute,
		CrashTickInterval:  time.Second,
		RaceTickInterval:   1500 * time.Millisecond,
		SweepInterval:      30 * time.Second,
		OTelServiceName:    "arcade",
		OTelExporterType:   "none",
		LogLevel:           "info",
	}
}
