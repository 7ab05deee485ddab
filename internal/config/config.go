package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const minFrameCacheKeepDays = 1

type Config struct {
	// Application
	Version     string
	Environment string
	InstanceID  string
	Port        int
	LogLevel    string

	// Logdy (lightweight web log viewer)
	LogdyEnabled bool
	LogdyHost    string
	LogdyPort    int

	// Project
	// Default project config used when a session does not bring its own
	ProjectConfigPath string
	VideoExtensions   []string

	// Frame cache
	FrameCacheDir      string
	FrameCacheKeepDays int
	FrameImageSuffix   string

	// Sessions
	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration

	// NATS (ROI save notifications, optional)
	NatsEnabled        bool
	NatsURL            string
	NatsConnectTimeout time.Duration
	NatsReconnectWait  time.Duration
	NatsMaxReconnects  int
	ROISavedSubject    string

	// Swagger Configuration
	SwaggerHost string
	SwaggerPort int

	// Graceful Shutdown
	ShutdownTimeout time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file found or error loading .env file, using environment variables and defaults")
	} else {
		log.Info().Msg("Loaded configuration from .env file")
	}

	cfg := &Config{
		// Application
		Version:     getEnv("VERSION", "0.1.0"),
		Environment: getEnv("ENVIRONMENT", "development"),
		InstanceID:  getEnv("INSTANCE_ID", "wazp-1"),
		Port:        getEnvInt("PORT", 8050),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// Logdy
		LogdyEnabled: getEnvBool("LOGDY_ENABLED", false),
		LogdyHost:    getEnv("LOGDY_HOST", "localhost"),
		LogdyPort:    getEnvInt("LOGDY_PORT", 8080),

		// Project
		ProjectConfigPath: getEnv("PROJECT_CONFIG_PATH", ""),
		VideoExtensions:   getEnvList("VIDEO_EXTENSIONS", []string{".avi", ".mp4"}),

		// Frame cache
		FrameCacheDir:      getEnv("FRAME_CACHE_DIR", defaultFrameCacheDir()),
		FrameCacheKeepDays: getEnvInt("FRAME_CACHE_KEEP_DAYS", 1),
		FrameImageSuffix:   getEnv("FRAME_IMAGE_SUFFIX", ".png"),

		// Sessions
		SessionIdleTimeout:   getEnvDuration("SESSION_IDLE_TIMEOUT", 12*time.Hour),
		SessionSweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute),

		// NATS
		NatsEnabled:        getEnvBool("NATS_ENABLED", false),
		NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		NatsConnectTimeout: getEnvDuration("NATS_CONNECT_TIMEOUT", 10*time.Second),
		NatsReconnectWait:  getEnvDuration("NATS_RECONNECT_WAIT", 2*time.Second),
		NatsMaxReconnects:  getEnvInt("NATS_MAX_RECONNECTS", -1), // -1 = unlimited
		ROISavedSubject:    getEnv("ROI_SAVED_SUBJECT", "wazp.rois.saved"),

		// Swagger
		SwaggerHost: getEnv("SWAGGER_HOST", "localhost"),
		SwaggerPort: getEnvInt("SWAGGER_PORT", 8050),

		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.FrameCacheKeepDays < minFrameCacheKeepDays {
		log.Warn().
			Int("keep_days", cfg.FrameCacheKeepDays).
			Int("using", minFrameCacheKeepDays).
			Msg("FRAME_CACHE_KEEP_DAYS too small")
		cfg.FrameCacheKeepDays = minFrameCacheKeepDays
	}

	return cfg
}

// FrameCacheRetention is the age after which cached frames are swept.
// It is never shorter than one day.
func (c *Config) FrameCacheRetention() time.Duration {
	days := max(c.FrameCacheKeepDays, minFrameCacheKeepDays)
	return time.Duration(days) * 24 * time.Hour
}

func defaultFrameCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".WAZP", "roi_frames")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated value, dropping empty items
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
