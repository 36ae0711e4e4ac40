package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIURL       = "http://localhost:8000"
	defaultCallbackPort = 45147
	defaultPollInterval = 30 * time.Second
)

// Config holds application-level configuration.
type Config struct {
	APIURL       string        // Backend base URL, e.g. "http://localhost:8000"
	CallbackPort int           // Loopback port for the OAuth message relay
	PollInterval time.Duration // Comment refresh interval
	Browser      string        // Browser command for the OAuth window; empty uses the OS opener
	UIStatePath  string        // Path to the persisted UI state file
	DebugLogPath string        // Debug log file; empty disables logging
}

// Load reads configuration from environment variables, after seeding them
// from a .env file in the working directory when one exists. Variables
// already set in the environment win over the file.
//
//	IGREPLY_API_URL        — backend base URL (default: http://localhost:8000)
//	IGREPLY_CALLBACK_PORT  — OAuth relay port (default: 45147)
//	IGREPLY_POLL_INTERVAL  — refresh interval (default: 30s)
//	IGREPLY_BROWSER        — browser command for the OAuth window
//	IGREPLY_STATE_DIR      — UI state directory (default: ~/.config/igreply)
//	IGREPLY_DEBUG_LOG      — debug log path
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("reading .env: %w", err)
	}

	apiURL := strings.TrimSpace(os.Getenv("IGREPLY_API_URL"))
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid IGREPLY_API_URL: must be an absolute URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Config{}, fmt.Errorf("invalid IGREPLY_API_URL: scheme must be http or https")
	}
	apiURL = strings.TrimRight(parsed.String(), "/")

	port := defaultCallbackPort
	if raw := strings.TrimSpace(os.Getenv("IGREPLY_CALLBACK_PORT")); raw != "" {
		port, err = strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid IGREPLY_CALLBACK_PORT: %q", raw)
		}
	}

	interval := defaultPollInterval
	if raw := strings.TrimSpace(os.Getenv("IGREPLY_POLL_INTERVAL")); raw != "" {
		interval, err = time.ParseDuration(raw)
		if err != nil || interval <= 0 {
			return Config{}, fmt.Errorf("invalid IGREPLY_POLL_INTERVAL: %q", raw)
		}
	}

	stateDir := strings.TrimSpace(os.Getenv("IGREPLY_STATE_DIR"))
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		stateDir = filepath.Join(home, ".config", "igreply")
	}

	return Config{
		APIURL:       apiURL,
		CallbackPort: port,
		PollInterval: interval,
		Browser:      strings.TrimSpace(os.Getenv("IGREPLY_BROWSER")),
		UIStatePath:  filepath.Join(stateDir, "ui_state.json"),
		DebugLogPath: strings.TrimSpace(os.Getenv("IGREPLY_DEBUG_LOG")),
	}, nil
}
