// ABOUTME: Tests for coach configuration management.
// ABOUTME: Covers load, save, env overrides, backend selection, catalogs and path expansion.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/coach/internal/feedback"
	"github.com/harperreed/coach/internal/ids"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
)

var envVars = []string{
	"COACH_BACKEND", "COACH_DATA_DIR", "COACH_ID_SCHEME", "COACH_LOG_LEVEL",
	"COACH_LOG_FILE", "COACH_OLLAMA_ENDPOINT", "COACH_OLLAMA_MODEL",
	"COACH_FEEDBACK_TIMEOUT_MS", "COACH_DISABLE_AI", "COACH_LISTEN_ADDR",
}

// isolate points XDG_CONFIG_HOME at a temp dir and clears COACH_ overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, v := range envVars {
		t.Setenv(v, "")
	}
	return dir
}

func TestGetBackendDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetBackend(); got != "sqlite" {
		t.Errorf("GetBackend() = %q, want %q", got, "sqlite")
	}
}

func TestGetBackendExplicit(t *testing.T) {
	cfg := &Config{Backend: "badger"}
	if got := cfg.GetBackend(); got != "badger" {
		t.Errorf("GetBackend() = %q, want %q", got, "badger")
	}
}

func TestGetDataDirDefault(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	cfg := &Config{}
	if got := cfg.GetDataDir(); got != filepath.Join("/tmp/xdg-data", "coach") {
		t.Errorf("GetDataDir() = %q", got)
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/coach-data"}
	want := filepath.Join(home, "coach-data")
	if got := cfg.GetDataDir(); got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetLogLevel(); got != "info" {
		t.Errorf("GetLogLevel() = %q", got)
	}
	if got := cfg.GetListenAddr(); got != DefaultListenAddr {
		t.Errorf("GetListenAddr() = %q", got)
	}
	if got := cfg.GetLogFile(); got != "" {
		t.Errorf("GetLogFile() = %q, want empty", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/coach", filepath.Join(home, "data/coach")},
		{"data/coach", "data/coach"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOllamaConfig(t *testing.T) {
	cfg := &Config{}
	got := cfg.OllamaConfig()
	if got != feedback.DefaultOllamaConfig() {
		t.Errorf("empty config should give defaults, got %+v", got)
	}

	cfg = &Config{OllamaEndpoint: "http://gpu:11434/", OllamaModel: "mistral", FeedbackTimeoutMs: 1500}
	got = cfg.OllamaConfig()
	if got.Endpoint != "http://gpu:11434" {
		t.Errorf("Endpoint = %q", got.Endpoint)
	}
	if got.Model != "mistral" {
		t.Errorf("Model = %q", got.Model)
	}
	if got.Timeout != 1500*time.Millisecond {
		t.Errorf("Timeout = %v", got.Timeout)
	}
}

func TestIDGenerator(t *testing.T) {
	gen, err := (&Config{}).IDGenerator()
	if err != nil {
		t.Fatalf("IDGenerator failed: %v", err)
	}
	if _, ok := gen.(ids.UUID); !ok {
		t.Errorf("default generator = %T, want ids.UUID", gen)
	}

	gen, err = (&Config{IDScheme: "ulid"}).IDGenerator()
	if err != nil {
		t.Fatalf("IDGenerator failed: %v", err)
	}
	if len(gen.NewID()) != 26 {
		t.Error("expected 26 character ULID")
	}

	if _, err := (&Config{IDScheme: "serial"}).IDGenerator(); err == nil {
		t.Error("expected error for unknown scheme")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty", Config{}, false},
		{"badger", Config{Backend: "badger", IDScheme: "ulid"}, false},
		{"markdown backend", Config{Backend: "markdown"}, true},
		{"bad scheme", Config{IDScheme: "serial"}, true},
		{"negative timeout", Config{FeedbackTimeoutMs: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.Backend != "" {
		t.Errorf("Expected empty Backend, got %q", cfg.Backend)
	}
	if cfg.DataDir != "" {
		t.Errorf("Expected empty DataDir, got %q", cfg.DataDir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	isolate(t)

	cfg := &Config{
		Backend:     "badger",
		DataDir:     "/tmp/coach-data",
		IDScheme:    "ulid",
		OllamaModel: "phi3",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, cfg)
	}

	info, err := os.Stat(GetConfigPath())
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := isolate(t)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "nonexistent"))

	cfg := &Config{Backend: "sqlite"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "nonexistent", "coach")); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := isolate(t)

	configDir := filepath.Join(dir, "coach")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestLoadRejectsInvalidBackend(t *testing.T) {
	isolate(t)
	if err := (&Config{Backend: "markdown"}).Save(); err != nil {
		t.Fatal(err)
	}
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "config validation") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	if err := (&Config{Backend: "sqlite", OllamaModel: "from-file"}).Save(); err != nil {
		t.Fatal(err)
	}

	t.Setenv("COACH_BACKEND", "badger")
	t.Setenv("COACH_DATA_DIR", "/srv/coach")
	t.Setenv("COACH_OLLAMA_MODEL", "from-env")
	t.Setenv("COACH_FEEDBACK_TIMEOUT_MS", "750")
	t.Setenv("COACH_DISABLE_AI", "true")
	t.Setenv("COACH_LISTEN_ADDR", ":9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Backend != "badger" || cfg.DataDir != "/srv/coach" {
		t.Errorf("storage overrides not applied: %+v", cfg)
	}
	if cfg.OllamaModel != "from-env" {
		t.Errorf("OllamaModel = %q, want from-env", cfg.OllamaModel)
	}
	if cfg.FeedbackTimeoutMs != 750 {
		t.Errorf("FeedbackTimeoutMs = %d, want 750", cfg.FeedbackTimeoutMs)
	}
	if !cfg.DisableAI {
		t.Error("DisableAI should be true")
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
}

func TestEnvOverrideIgnoresMalformedNumbers(t *testing.T) {
	isolate(t)
	t.Setenv("COACH_FEEDBACK_TIMEOUT_MS", "soon")
	t.Setenv("COACH_DISABLE_AI", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.FeedbackTimeoutMs != 0 || cfg.DisableAI {
		t.Errorf("malformed values should be ignored: %+v", cfg)
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	want := filepath.Join("/custom/config", "coach", "config.json")
	if got := GetConfigPath(); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestOpenStorage(t *testing.T) {
	for _, backend := range []string{"sqlite", "badger"} {
		t.Run(backend, func(t *testing.T) {
			cfg := &Config{Backend: backend, DataDir: t.TempDir()}
			repo, err := cfg.OpenStorage()
			if err != nil {
				t.Fatalf("OpenStorage failed: %v", err)
			}
			defer repo.Close()

			switch backend {
			case "sqlite":
				if _, ok := repo.(*storage.DB); !ok {
					t.Errorf("got %T, want *storage.DB", repo)
				}
				if _, err := os.Stat(filepath.Join(cfg.DataDir, "coach.db")); err != nil {
					t.Errorf("expected coach.db: %v", err)
				}
			case "badger":
				if _, ok := repo.(*storage.BadgerStore); !ok {
					t.Errorf("got %T, want *storage.BadgerStore", repo)
				}
			}
		})
	}
}

func TestOpenStorageUnknownBackend(t *testing.T) {
	cfg := &Config{Backend: "markdown", DataDir: t.TempDir()}
	if _, err := cfg.OpenStorage(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestLoadCatalogDefault(t *testing.T) {
	cfg := &Config{DataDir: t.TempDir()}
	cat, err := cfg.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if _, ok := cat.Routine(models.RoutineA); !ok {
		t.Error("default catalog should contain routine A")
	}
}

func TestLoadCatalogOverride(t *testing.T) {
	dir := t.TempDir()
	doc := `routines:
  - id: A
    name: Short Upper
    exercises:
      - id: p1
        name: Push-ups
        default_sets: 2
        default_reps: "15"
`
	if err := os.WriteFile(filepath.Join(dir, CatalogFile), []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}

	cat, err := (&Config{DataDir: dir}).LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	r, ok := cat.Routine(models.RoutineA)
	if !ok || r.Name != "Short Upper" {
		t.Fatalf("routine A = %+v", r)
	}
	if len(r.Exercises) != 1 || r.Exercises[0].DefaultSets != 2 || r.Exercises[0].DefaultReps != "15" {
		t.Errorf("exercise not decoded: %+v", r.Exercises)
	}
	if _, ok := cat.Routine(models.RoutineB); ok {
		t.Error("override should replace the built-in routines")
	}
}

func TestLoadCatalogInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":          "routines: [unclosed",
		"empty":           "routines: []",
		"unknown routine": "routines:\n  - id: Z\n    name: Zed\n",
		"duplicate":       "routines:\n  - id: A\n    name: one\n  - id: A\n    name: two\n",
		"missing id":      "routines:\n  - id: A\n    name: one\n    exercises:\n      - name: nameless\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), CatalogFile)
			if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadCatalogFile(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}
