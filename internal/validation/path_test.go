package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cwd, _ := os.Getwd()

	tests := []struct {
		name     string
		input    string
		expected string
		errorMsg string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "home", input: "~", expected: home},
		{name: "under home", input: "~/.pickr/pickr.db", expected: filepath.Join(home, ".pickr", "pickr.db")},
		{name: "relative", input: "catalog.toml", expected: filepath.Join(cwd, "catalog.toml")},
		{name: "cleaned", input: "/tmp/a/../b", expected: "/tmp/b"},
		{name: "other user", input: "~root/x", errorMsg: "unsupported tilde"},
		{name: "null byte", input: "/tmp/a\x00b", errorMsg: "null bytes"},
		{name: "control", input: "/tmp/a\nb", errorMsg: "control characters"},
		{name: "too long", input: "/" + strings.Repeat("a", 5000), errorMsg: "path too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			if tt.errorMsg != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errorMsg) {
					t.Fatalf("Expected error containing %q, got %v", tt.errorMsg, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
