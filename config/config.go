// Package config loads process configuration from environment
// variables, following the env-var-with-fallback convention used
// throughout this codebase.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all process configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Handler   HandlerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 4444 (the conventional WebDriver port)
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the launched browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in containers).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// AcceptInsecureCerts adds --ignore-certificate-errors to the
	// browser launch flags. It is read once at process start; a
	// session's acceptInsecureCerts capability does not change it.
	AcceptInsecureCerts bool // default: false

	// WindowWidth/WindowHeight size the initial browser window.
	WindowWidth  int // default: 1280
	WindowHeight int // default: 800
}

// HandlerConfig controls the per-command timing knobs handler.Config
// mirrors; see that package for what each field bounds.
type HandlerConfig struct {
	ResizeTimeout          time.Duration // default: 500ms
	ScreenshotPollInterval time.Duration // default: 1s
	ScreenshotPollTimeout  time.Duration // default: 30s
	FocusPollInterval      time.Duration // default: 20ms
	FocusPollTimeout       time.Duration // default: 30s
}

// AuthConfig controls optional API key authentication, off by default
// since a WebDriver endpoint is normally reached only from a trusted
// test runner on a private network.
type AuthConfig struct {
	Enabled bool // default: false
	APIKeys []string
}

// RateLimitConfig controls per-identity rate limiting.
type RateLimitConfig struct {
	Enabled           bool    // default: false
	RequestsPerSecond float64 // default: 20
	Burst             int     // default: 40
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane
// defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("WDBRIDGE_HOST", "0.0.0.0"),
			Port: envIntOr("WDBRIDGE_PORT", 4444),
			Mode: envOr("WDBRIDGE_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:            envBoolOr("WDBRIDGE_HEADLESS", true),
			NoSandbox:           envBoolOr("WDBRIDGE_NO_SANDBOX", false),
			BrowserBin:          os.Getenv("WDBRIDGE_BROWSER_BIN"),
			AcceptInsecureCerts: envBoolOr("WDBRIDGE_ACCEPT_INSECURE_CERTS", false),
			WindowWidth:         envIntOr("WDBRIDGE_WINDOW_WIDTH", 1280),
			WindowHeight:        envIntOr("WDBRIDGE_WINDOW_HEIGHT", 800),
		},
		Handler: HandlerConfig{
			ResizeTimeout:          envDurationOr("WDBRIDGE_RESIZE_TIMEOUT", 500*time.Millisecond),
			ScreenshotPollInterval: envDurationOr("WDBRIDGE_SCREENSHOT_POLL_INTERVAL", time.Second),
			ScreenshotPollTimeout:  envDurationOr("WDBRIDGE_SCREENSHOT_POLL_TIMEOUT", 30*time.Second),
			FocusPollInterval:      envDurationOr("WDBRIDGE_FOCUS_POLL_INTERVAL", 20*time.Millisecond),
			FocusPollTimeout:       envDurationOr("WDBRIDGE_FOCUS_POLL_TIMEOUT", 30*time.Second),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("WDBRIDGE_AUTH_ENABLED", false),
			APIKeys: envSliceOr("WDBRIDGE_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			Enabled:           envBoolOr("WDBRIDGE_RATE_LIMIT_ENABLED", false),
			RequestsPerSecond: envFloatOr("WDBRIDGE_RATE_RPS", 20.0),
			Burst:             envIntOr("WDBRIDGE_RATE_BURST", 40),
		},
		Log: LogConfig{
			Level:  envOr("WDBRIDGE_LOG_LEVEL", "info"),
			Format: envOr("WDBRIDGE_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
