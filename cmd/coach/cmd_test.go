// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs full session workflows against a temporary data directory.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/harperreed/coach/internal/config"
	"github.com/harperreed/coach/internal/feedback"
	"github.com/harperreed/coach/internal/models"
)

var testNow = time.Date(2025, 6, 15, 18, 0, 0, 0, time.Local)

// setupTestCLI isolates config and data directories and pins the clock.
// It returns the data directory.
func setupTestCLI(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "COACH_") {
			t.Setenv(strings.SplitN(kv, "=", 2)[0], "")
		}
	}

	oldNow, oldFeedback, oldNoColor := nowFunc, newFeedback, color.NoColor
	nowFunc = func() time.Time { return testNow }
	newFeedback = func() (feedback.Generator, func()) { return feedback.Fallback{}, func() {} }
	color.NoColor = true
	t.Cleanup(func() {
		nowFunc, newFeedback, color.NoColor = oldNow, oldFeedback, oldNoColor
	})
	return filepath.Join(tmp, "data", "coach")
}

// resetFlags restores flag globals; cobra keeps values between Execute calls.
func resetFlags() {
	flagBackend, flagDataDir, flagLogLevel, flagNoAI = "", "", "", false
	startForce, finishNoFeedback = false, false
	doneWeight, doneReps = "", ""
	recommendRoutine = ""
	dashboardJSON = false
	progressLimit = 0
	historyLimit, historyRoutine = 20, ""
	exportOutput, exportSince = "", ""
	migrateFrom, migrateTo, migrateDryRun = config.BackendSQLite, config.BackendBadger, false
	routinesVerbose = false
	serveAddr = ""
	skillSkipConfirm = false
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	// A failed RunE skips PersistentPostRunE.
	_ = teardown()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("coach %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func loadHistory(t *testing.T, dataDir string) []models.WorkoutSession {
	t.Helper()
	r, err := config.OpenBackend(config.BackendSQLite, dataDir)
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	defer r.Close()
	history, err := r.Load()
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	return history
}

func firstExercise(t *testing.T, id models.RoutineID) models.Exercise {
	t.Helper()
	r, ok := models.DefaultCatalog().Routine(id)
	if !ok || len(r.Exercises) == 0 {
		t.Fatalf("routine %s missing", id)
	}
	return r.Exercises[0]
}

// recordRoutineA logs three full sets of the first exercise and finishes.
func recordRoutineA(t *testing.T) {
	t.Helper()
	mustRun(t, "session", "start", "a")
	for i := 0; i < 3; i++ {
		mustRun(t, "set", "done", "--weight", "40", "--reps", "12")
	}
	mustRun(t, "session", "finish", "--no-feedback")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short string no truncation", input: "hello", maxLen: 10, want: "hello"},
		{name: "exact length", input: "hello", maxLen: 5, want: "hello"},
		{name: "needs truncation", input: "hello world this is a long string", maxLen: 10, want: "hello w..."},
		{name: "empty string", input: "", maxLen: 10, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("hi", 5); got != "hi   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("hello world", 5); got != "hello world" {
		t.Errorf("padRight = %q", got)
	}
}

func TestFormatWeight(t *testing.T) {
	tests := map[float64]string{40: "40", 42.5: "42.5", 0: "0"}
	for in, want := range tests {
		if got := formatWeight(in); got != want {
			t.Errorf("formatWeight(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2025-06-15")
	if err != nil {
		t.Fatalf("parseDate failed: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.June || d.Day() != 15 {
		t.Errorf("parseDate returned wrong date: %v", d)
	}
	if _, err := parseDate("15-06-2025"); err == nil {
		t.Error("expected error for DD-MM-YYYY")
	}
}

func TestResolveRoutine(t *testing.T) {
	cat := models.DefaultCatalog()
	r, err := resolveRoutine(cat, "finisher")
	if err != nil {
		t.Fatalf("resolveRoutine: %v", err)
	}
	if r.ID != models.RoutineFinisher {
		t.Errorf("got %s, want Finisher", r.ID)
	}
	if _, err := resolveRoutine(cat, "C"); err == nil {
		t.Error("expected error for unknown routine")
	}
}

func TestResolveSet(t *testing.T) {
	sets := []models.SetLog{{ID: "aaa111"}, {ID: "bbb222"}, {ID: "bbb333"}}

	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{arg: "1", want: "aaa111"},
		{arg: "3", want: "bbb333"},
		{arg: "0", wantErr: true},
		{arg: "4", wantErr: true},
		{arg: "aaa", want: "aaa111"},
		{arg: "bbb", wantErr: true},
		{arg: "zzz", wantErr: true},
	}
	for _, tt := range tests {
		got, err := resolveSet(sets, tt.arg)
		if tt.wantErr {
			if err == nil {
				t.Errorf("resolveSet(%q) expected error", tt.arg)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("resolveSet(%q) = %q, %v; want %q", tt.arg, got, err, tt.want)
		}
	}
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "coach" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "coach")
	}
	for _, name := range []string{"backend", "data-dir", "log-level", "no-ai"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"session", "set", "recommend", "dashboard", "progress",
		"history", "feedback", "export", "import", "migrate", "routines", "mcp", "serve"} {
		if !names[want] {
			t.Errorf("command %q not registered", want)
		}
	}

	subs := make(map[string]bool)
	for _, c := range sessionCmd.Commands() {
		subs[c.Name()] = true
	}
	for _, want := range []string{"start", "show", "next", "prev", "skip", "finish", "discard"} {
		if !subs[want] {
			t.Errorf("session subcommand %q not registered", want)
		}
	}
}

func TestRoutinesCommand(t *testing.T) {
	setupTestCLI(t)
	out := mustRun(t, "routines")
	for _, want := range []string{"Finisher", "Warmup", firstExercise(t, models.RoutineA).Name} {
		if !strings.Contains(out, want) {
			t.Errorf("routines output missing %q:\n%s", want, out)
		}
	}
}

func TestSessionStartRejectsUnknownRoutine(t *testing.T) {
	setupTestCLI(t)
	if _, err := runCLI(t, "session", "start", "Z"); err == nil {
		t.Error("expected error for unknown routine")
	}
}

func TestSessionCommandsNeedSession(t *testing.T) {
	setupTestCLI(t)
	_, err := runCLI(t, "session", "show")
	if err == nil || !strings.Contains(err.Error(), "no session in progress") {
		t.Errorf("expected no-session error, got %v", err)
	}
}

func TestSessionStartTwice(t *testing.T) {
	setupTestCLI(t)
	mustRun(t, "session", "start", "A")
	if _, err := runCLI(t, "session", "start", "B"); err == nil {
		t.Fatal("expected error starting a second session")
	}
	out := mustRun(t, "session", "start", "B", "--force")
	if !strings.Contains(out, "Started B") {
		t.Errorf("expected forced start of B:\n%s", out)
	}
}

func TestSessionWorkflow(t *testing.T) {
	dataDir := setupTestCLI(t)
	first := firstExercise(t, models.RoutineA)

	out := mustRun(t, "session", "start", "A")
	if !strings.Contains(out, "Started A") || !strings.Contains(out, first.Name) {
		t.Fatalf("unexpected start output:\n%s", out)
	}

	out = mustRun(t, "set", "done", "-w", "40", "-r", "12")
	if !strings.Contains(out, "✓") {
		t.Errorf("expected a completed set:\n%s", out)
	}
	mustRun(t, "set", "done", "-w", "40", "-r", "12")
	mustRun(t, "set", "done", "-w", "40", "-r", "9")
	mustRun(t, "set", "drop", "3")
	mustRun(t, "set", "update", "4", "reps", "6")

	out = mustRun(t, "session", "next")
	if !strings.Contains(out, "[2/") {
		t.Errorf("expected second exercise:\n%s", out)
	}
	mustRun(t, "session", "skip")
	mustRun(t, "session", "prev")

	out = mustRun(t, "session", "finish", "--no-feedback")
	if !strings.Contains(out, "Recorded A") {
		t.Fatalf("unexpected finish output:\n%s", out)
	}

	history := loadHistory(t, dataDir)
	if len(history) != 1 {
		t.Fatalf("expected 1 session, got %d", len(history))
	}
	ws := history[0]
	if ws.RoutineID != models.RoutineA || ws.TimeOfDay != models.Night {
		t.Errorf("unexpected session %s %s", ws.RoutineID, ws.TimeOfDay)
	}
	sets := ws.Logs[0].Sets
	if len(sets) != 4 || !sets[3].IsDropSet || sets[3].ParentSetID != sets[2].ID {
		t.Errorf("expected drop set after set 3, got %+v", sets)
	}
	if sets[3].Weight != 30 || sets[3].Reps.Int() != 6 {
		t.Errorf("drop set = %v x %v, want 30 x 6", sets[3].Weight, sets[3].Reps)
	}
	if !ws.Logs[1].Skipped {
		t.Error("expected second exercise skipped")
	}

	if _, err := runCLI(t, "session", "show"); err == nil {
		t.Error("expected draft cleared after finish")
	}

	out = mustRun(t, "recommend", first.ID)
	if !strings.Contains(out, "40") || !strings.Contains(out, "Drop Set") {
		t.Errorf("expected keep-weight recommendation:\n%s", out)
	}
}

func TestSetUndo(t *testing.T) {
	dataDir := setupTestCLI(t)
	mustRun(t, "session", "start", "A")
	mustRun(t, "set", "add")
	mustRun(t, "set", "undo")
	mustRun(t, "set", "done", "-w", "20", "-r", "10")
	mustRun(t, "set", "undo")
	mustRun(t, "session", "finish", "--no-feedback")

	sets := loadHistory(t, dataDir)[0].Logs[0].Sets
	if len(sets) != firstExercise(t, models.RoutineA).DefaultSets {
		t.Fatalf("expected default set count after undo, got %d", len(sets))
	}
	if sets[0].Completed != true {
		t.Error("undo should not reopen a completed set while others remain")
	}
}

func TestRecommendAfterFullSession(t *testing.T) {
	setupTestCLI(t)
	recordRoutineA(t)

	out := mustRun(t, "recommend", firstExercise(t, models.RoutineA).ID)
	if !strings.Contains(out, "45") {
		t.Errorf("expected +5 recommendation:\n%s", out)
	}

	out = mustRun(t, "recommend", "--routine", "B")
	if !strings.Contains(out, "Find your baseline weight.") {
		t.Errorf("expected calibration for routine B:\n%s", out)
	}

	if _, err := runCLI(t, "recommend", "zz9"); err == nil {
		t.Error("expected error for unknown exercise")
	}
}

func TestWarmupNotRecorded(t *testing.T) {
	setupTestCLI(t)
	mustRun(t, "session", "start", "warmup")
	out := mustRun(t, "session", "finish")
	if !strings.Contains(out, "not recorded") {
		t.Errorf("expected warmup notice:\n%s", out)
	}
	out = mustRun(t, "history", "list")
	if !strings.Contains(out, "No sessions found.") {
		t.Errorf("expected empty history:\n%s", out)
	}
}

func TestDiscard(t *testing.T) {
	setupTestCLI(t)
	out := mustRun(t, "session", "discard")
	if !strings.Contains(out, "No session in progress.") {
		t.Errorf("unexpected output:\n%s", out)
	}
	mustRun(t, "session", "start", "B")
	out = mustRun(t, "session", "discard")
	if !strings.Contains(out, "Discarded") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestHistoryAndFeedback(t *testing.T) {
	dataDir := setupTestCLI(t)
	recordRoutineA(t)
	id := loadHistory(t, dataDir)[0].ID

	out := mustRun(t, "history", "list")
	if !strings.Contains(out, shortID(id)) {
		t.Errorf("history list missing session:\n%s", out)
	}
	out = mustRun(t, "history", "show", shortID(id))
	if !strings.Contains(out, id) {
		t.Errorf("history show missing id:\n%s", out)
	}

	out = mustRun(t, "feedback", shortID(id))
	if !strings.Contains(out, "3 of 3 sets completed") {
		t.Errorf("expected fallback feedback:\n%s", out)
	}
	if fb := loadHistory(t, dataDir)[0].Feedback; fb == nil {
		t.Fatal("feedback not stored")
	}

	out = mustRun(t, "feedback", id)
	if !strings.Contains(out, "already attached") {
		t.Errorf("expected already-attached notice:\n%s", out)
	}

	if _, err := runCLI(t, "history", "show", "nope"); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestFinishAttachesFeedback(t *testing.T) {
	dataDir := setupTestCLI(t)
	mustRun(t, "session", "start", "B")
	mustRun(t, "set", "done", "-w", "25", "-r", "10")
	out := mustRun(t, "session", "finish")
	if !strings.Contains(out, "1 of 3 sets completed") {
		t.Errorf("expected feedback in output:\n%s", out)
	}
	if loadHistory(t, dataDir)[0].Feedback == nil {
		t.Error("expected feedback stored after finish")
	}
}

func TestDashboardAndProgress(t *testing.T) {
	setupTestCLI(t)
	recordRoutineA(t)

	out := mustRun(t, "dashboard")
	for _, want := range []string{"CONSISTENCY", "1 of 7 days", "VOLUME", "PERSONAL RECORDS"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, "dashboard", "--json")
	if !strings.Contains(out, `"total_sessions": 1`) {
		t.Errorf("dashboard json missing total:\n%s", out)
	}

	out = mustRun(t, "progress", firstExercise(t, models.RoutineA).ID)
	if !strings.Contains(out, "2025-06-15") || !strings.Contains(out, "1440") {
		t.Errorf("unexpected progress output:\n%s", out)
	}
}

func TestExportImport(t *testing.T) {
	setupTestCLI(t)
	recordRoutineA(t)

	out := mustRun(t, "export", "json")
	if !strings.Contains(out, `"routine_id": "A"`) {
		t.Errorf("json export missing session:\n%s", out)
	}
	out = mustRun(t, "export", "markdown", "--since", "2025-01-01")
	if !strings.Contains(out, "Routine A") {
		t.Errorf("markdown export missing session:\n%s", out)
	}
	if _, err := runCLI(t, "export", "csv"); err == nil {
		t.Error("expected error for unknown format")
	}

	file := filepath.Join(t.TempDir(), "backup.yaml")
	mustRun(t, "export", "yaml", "-o", file)

	other := filepath.Join(t.TempDir(), "other")
	out = mustRun(t, "--data-dir", other, "import", file)
	if !strings.Contains(out, "1 added") {
		t.Errorf("unexpected import output:\n%s", out)
	}
	out = mustRun(t, "--data-dir", other, "import", file)
	if !strings.Contains(out, "1 replaced") {
		t.Errorf("expected reimport to replace:\n%s", out)
	}
	if got := len(loadHistory(t, other)); got != 1 {
		t.Errorf("expected 1 session after import, got %d", got)
	}
}

func TestMigrate(t *testing.T) {
	setupTestCLI(t)
	recordRoutineA(t)

	out := mustRun(t, "migrate", "--dry-run")
	if !strings.Contains(out, "Would migrate 1 sessions") {
		t.Errorf("unexpected dry run output:\n%s", out)
	}

	out = mustRun(t, "migrate", "--from", "sqlite", "--to", "badger")
	if !strings.Contains(out, "Migrated 1 sessions") {
		t.Fatalf("unexpected migrate output:\n%s", out)
	}

	out = mustRun(t, "--backend", "badger", "history", "list")
	if strings.Contains(out, "No sessions found.") {
		t.Errorf("badger backend should hold the migrated session:\n%s", out)
	}

	if _, err := runCLI(t, "migrate", "--from", "sqlite", "--to", "badger"); err == nil {
		t.Error("expected error migrating into a non-empty destination")
	}
	if _, err := runCLI(t, "migrate", "--from", "sqlite", "--to", "sqlite"); err == nil {
		t.Error("expected error when source equals destination")
	}
}
