package e2e

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const TEST_COMMAND_TIMEOUT = 30 * time.Second

// agendaBinary locates the built CLI: AGENDA_BIN_DIR, else ../../bin
// relative to this package.
func agendaBinary(t *testing.T) string {
	t.Helper()
	binDir := os.Getenv("AGENDA_BIN_DIR")
	if binDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("Failed to get cwd: %v", err)
		}
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)

	cliPath := filepath.Join(binDir, "agenda")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Build it with 'go build -o bin/agenda ./cmd/agenda'.", cliPath)
	}
	return cliPath
}

func TestEndToEndWorkflow(t *testing.T) {
	cliPath := agendaBinary(t)
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "agenda.db")

	env := append(os.Environ(), "HOME="+tempDir, "NO_COLOR=1")
	run := func(args ...string) string {
		t.Helper()
		full := append([]string{"--config", dbPath, "--today", "2024-06-10"}, args...)
		return runCmd(t, cliPath, env, full...)
	}

	t.Log("Initializing storage...")
	run("init")

	t.Log("Writing entries...")
	run("slot", "edit", "09:00", "Standup")
	run("slot", "star", "09:00")
	run("quickadd", "tomorrow", "14:00", "Dentist")
	run("task", "add", "Buy", "milk")
	run("task", "add", "--week", "Plan", "sprint")
	run("meal", "set", "lunch", "Salad")
	run("notes", "set", "Remember", "the", "umbrella")

	day := run("day")
	for _, want := range []string{"Monday, June 10 2024", "Standup", "★", "Salad", "Buy milk", "umbrella"} {
		if !strings.Contains(day, want) {
			t.Errorf("day output missing %q:\n%s", want, day)
		}
	}

	week := run("week")
	for _, want := range []string{"Week 2024-W24", "Dentist", "Plan sprint", "No entries"} {
		if !strings.Contains(week, want) {
			t.Errorf("week output missing %q:\n%s", want, week)
		}
	}

	t.Log("Exporting and importing into a JSON store...")
	snapshot := filepath.Join(tempDir, "snapshot.yaml")
	run("export", "-o", snapshot)

	jsonPath := filepath.Join(tempDir, "agenda.json")
	runCmd(t, cliPath, env, "--config", jsonPath, "init")
	runCmd(t, cliPath, env, "--config", jsonPath, "import", snapshot)
	imported := runCmd(t, cliPath, env, "--config", jsonPath, "--today", "2024-06-10", "day")
	if !strings.Contains(imported, "Standup") {
		t.Errorf("imported store is missing the standup:\n%s", imported)
	}

	t.Log("Checking health...")
	if out := run("validate"); !strings.Contains(out, "No problems detected") {
		t.Errorf("validate output:\n%s", out)
	}
	run("doctor")
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), TEST_COMMAND_TIMEOUT)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}
