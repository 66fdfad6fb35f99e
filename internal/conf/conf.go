package conf

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config represents application configuration
type Config struct {
	// Telegram configuration
	Telegram TelegramConfig

	// Scheduled post store and dispatch cadence
	Store    StoreConfig
	Dispatch DispatchConfig

	// Moderation configuration
	Moderation ModerationConfig

	// Channel content feeds (optional, disabled without an API key)
	Memes      MemeConfig
	Challenges ChallengeConfig

	// Health endpoint
	Server ServerConfig

	// Logging
	Log LogConfig
}

// TelegramConfig contains bot credentials and identities
type TelegramConfig struct {
	Token   string
	OwnerID int64  // distinguished owner, supplied out-of-band
	Channel string // target channel, e.g. @codewithmercy1
}

// StoreConfig contains the scheduled post database location
type StoreConfig struct {
	DBPath string
}

// DispatchConfig contains the dispatch cadence. When CronSpec is set it
// takes precedence over Interval.
type DispatchConfig struct {
	Interval time.Duration
	CronSpec string
}

// ModerationConfig contains moderation tuning
type ModerationConfig struct {
	WarnDelay time.Duration
}

// MemeConfig contains the meme poster settings
type MemeConfig struct {
	APIKey       string
	InitialDelay time.Duration
	Interval     time.Duration
}

// Enabled reports whether the meme poster should run
func (c MemeConfig) Enabled() bool {
	return c.APIKey != ""
}

// ChallengeConfig contains the challenge poster settings
type ChallengeConfig struct {
	APIKey        string
	CronSpec      string
	SolutionDelay time.Duration
}

// Enabled reports whether the challenge poster should run
func (c ChallengeConfig) Enabled() bool {
	return c.APIKey != ""
}

// ServerConfig contains the health endpoint settings
type ServerConfig struct {
	Port int
}

// LogConfig contains logger settings
type LogConfig struct {
	Level  string
	Pretty bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	dbPath := os.Getenv("POST_DB_PATH")
	if dbPath == "" {
		homeDir, _ := os.UserHomeDir()
		dbPath = filepath.Join(homeDir, ".community-bot", "posts.db")
	}

	return &Config{
		Telegram: TelegramConfig{
			Token:   os.Getenv("BOT_TOKEN"),
			OwnerID: envInt64("OWNER_ID", 0),
			Channel: os.Getenv("CHANNEL_ID"),
		},
		Store: StoreConfig{
			DBPath: dbPath,
		},
		Dispatch: DispatchConfig{
			Interval: envDuration("DISPATCH_INTERVAL", time.Minute),
			CronSpec: os.Getenv("DISPATCH_CRON"),
		},
		Moderation: ModerationConfig{
			WarnDelay: envDuration("WARN_DELAY", 800*time.Millisecond),
		},
		Memes: MemeConfig{
			APIKey:       os.Getenv("RAPID_API_KEY"),
			InitialDelay: envDuration("MEME_INITIAL_DELAY", time.Minute),
			Interval:     envDuration("MEME_INTERVAL", 4*time.Hour),
		},
		Challenges: ChallengeConfig{
			APIKey:        os.Getenv("RAPID_API_KEY"),
			CronSpec:      envString("CHALLENGE_CRON", "0 */2 * * *"),
			SolutionDelay: envDuration("SOLUTION_DELAY", 2*time.Hour),
		},
		Server: ServerConfig{
			Port: envInt("PORT", 3000),
		},
		Log: LogConfig{
			Level:  envString("LOG_LEVEL", "info"),
			Pretty: os.Getenv("LOG_PRETTY") == "true",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return &ConfigError{Field: "BOT_TOKEN", Message: "required"}
	}
	if c.Telegram.Channel == "" {
		return &ConfigError{Field: "CHANNEL_ID", Message: "required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

func envString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
