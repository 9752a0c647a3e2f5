// ABOUTME: Coach configuration management with backend selection.
// ABOUTME: Handles settings, COACH_ environment overrides and the storage backend factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/coach/internal/feedback"
	"github.com/harperreed/coach/internal/ids"
	"github.com/harperreed/coach/internal/storage"
)

const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"

	DefaultListenAddr = "127.0.0.1:8088"
	DefaultLogLevel   = "info"
)

// Config stores coach tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "badger".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts coach.db here, Badger uses a badger/ subdirectory.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/coach.
	DataDir string `json:"data_dir,omitempty"`

	// IDScheme picks the identifier generator: "uuid" (default) or "ulid".
	IDScheme string `json:"id_scheme,omitempty"`

	LogLevel string `json:"log_level,omitempty"`
	// LogFile, when set, receives rotated logs from the serve command.
	LogFile string `json:"log_file,omitempty"`

	OllamaEndpoint string `json:"ollama_endpoint,omitempty"`
	OllamaModel    string `json:"ollama_model,omitempty"`
	// FeedbackTimeoutMs bounds a single feedback generation. 0 uses the default.
	FeedbackTimeoutMs int `json:"feedback_timeout_ms,omitempty"`
	// DisableAI skips the model and always uses the rule-based feedback.
	DisableAI bool `json:"disable_ai,omitempty"`

	ListenAddr string `json:"listen_addr,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel returns the configured log level, defaulting to info.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.LogLevel
}

// GetLogFile returns the log file path with ~ expanded, or "".
func (c *Config) GetLogFile() string {
	return ExpandPath(c.LogFile)
}

// GetListenAddr returns the HTTP listen address.
func (c *Config) GetListenAddr() string {
	if c.ListenAddr == "" {
		return DefaultListenAddr
	}
	return c.ListenAddr
}

// IDGenerator returns the configured identifier generator.
func (c *Config) IDGenerator() (ids.Generator, error) {
	return ids.New(ids.Scheme(c.IDScheme))
}

// OllamaConfig returns feedback client settings.
func (c *Config) OllamaConfig() feedback.OllamaConfig {
	cfg := feedback.DefaultOllamaConfig()
	if c.OllamaEndpoint != "" {
		cfg.Endpoint = strings.TrimRight(c.OllamaEndpoint, "/")
	}
	if c.OllamaModel != "" {
		cfg.Model = c.OllamaModel
	}
	if c.FeedbackTimeoutMs > 0 {
		cfg.Timeout = time.Duration(c.FeedbackTimeoutMs) * time.Millisecond
	}
	return cfg
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return OpenBackend(c.GetBackend(), c.GetDataDir())
}

// OpenBackend opens the named backend rooted at dataDir.
func OpenBackend(backend, dataDir string) (storage.Repository, error) {
	switch backend {
	case BackendSQLite:
		db, err := storage.Open(filepath.Join(dataDir, "coach.db"))
		if err != nil {
			return nil, err
		}
		return db, nil
	case BackendBadger:
		store, err := storage.OpenBadger(filepath.Join(dataDir, "badger"))
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.GetBackend() {
	case BackendSQLite, BackendBadger:
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", BackendSQLite, BackendBadger, c.Backend)
	}
	if _, err := c.IDGenerator(); err != nil {
		return err
	}
	if c.FeedbackTimeoutMs < 0 {
		return fmt.Errorf("feedback_timeout_ms must not be negative")
	}
	return nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "coach", "config.json")
}

// Load reads config from disk, then applies environment variable overrides.
// Env vars use the prefix COACH_:
//
//	COACH_BACKEND, COACH_DATA_DIR, COACH_ID_SCHEME, COACH_LOG_LEVEL,
//	COACH_LOG_FILE, COACH_OLLAMA_ENDPOINT, COACH_OLLAMA_MODEL,
//	COACH_FEEDBACK_TIMEOUT_MS, COACH_DISABLE_AI, COACH_LISTEN_ADDR
func Load() (*Config, error) {
	cfg := &Config{}

	path := GetConfigPath()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("COACH_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("COACH_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("COACH_ID_SCHEME"); v != "" {
		cfg.IDScheme = v
	}
	if v := os.Getenv("COACH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("COACH_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("COACH_OLLAMA_ENDPOINT"); v != "" {
		cfg.OllamaEndpoint = v
	}
	if v := os.Getenv("COACH_OLLAMA_MODEL"); v != "" {
		cfg.OllamaModel = v
	}
	if v := os.Getenv("COACH_FEEDBACK_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.FeedbackTimeoutMs = ms
		}
	}
	if v := os.Getenv("COACH_DISABLE_AI"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DisableAI = b
		}
	}
	if v := os.Getenv("COACH_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
