// ABOUTME: Tests for shared command utilities
// ABOUTME: Covers string truncation and flag validation helpers

package commands

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long string truncated", "hello world", 8, "hello..."},
		{"tiny max", "hello", 3, "hel"},
		{"empty string", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestValidatePositiveInt(t *testing.T) {
	if err := validatePositiveInt(5, "limit"); err != nil {
		t.Errorf("validatePositiveInt(5) error = %v", err)
	}
	if err := validatePositiveInt(0, "limit"); err == nil {
		t.Error("validatePositiveInt(0) should fail")
	}
	if err := validatePositiveInt(-1, "limit"); err == nil {
		t.Error("validatePositiveInt(-1) should fail")
	}
}
