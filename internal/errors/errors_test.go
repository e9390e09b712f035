package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      stderrors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "validation error",
			err:      &ValidationError{Field: "interval", Value: 45, Reason: "must be one of 15, 30, 60"},
			expected: "Error: invalid interval 45: must be one of 15, 30, 60",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("failed to load %s", "data_2024-06-10")
	if got != "Error: failed to load data_2024-06-10" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestErrorClassification(t *testing.T) {
	malformed := fmt.Errorf("reading slots: %w", &MalformedValueError{Key: "data_x", Err: stderrors.New("bad json")})
	if !IsMalformed(malformed) {
		t.Error("IsMalformed() = false for wrapped MalformedValueError")
	}
	if IsValidation(malformed) {
		t.Error("IsValidation() = true for MalformedValueError")
	}

	validation := fmt.Errorf("settings: %w", &ValidationError{Field: "startHour", Value: 25, Reason: "out of range"})
	if !IsValidation(validation) {
		t.Error("IsValidation() = false for wrapped ValidationError")
	}

	if !stderrors.Is(fmt.Errorf("delete: %w", ErrConfirmationRequired), ErrConfirmationRequired) {
		t.Error("ErrConfirmationRequired does not survive wrapping")
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(stderrors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

// TestFatal_NilError tests that Fatal does nothing when passed a nil error
func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
