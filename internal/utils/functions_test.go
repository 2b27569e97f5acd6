package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRenewOutputPath(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "video.mp4")
	if err := os.WriteFile(original, []byte("x"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	renewed := RenewOutputPath(original)
	want := filepath.Join(dir, "video-(1).mp4")
	if renewed != want {
		t.Errorf("RenewOutputPath = %q, want %q", renewed, want)
	}

	// Second collision bumps the index
	if err := os.WriteFile(renewed, []byte("x"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	renewed = RenewOutputPath(original)
	want = filepath.Join(dir, "video-(2).mp4")
	if renewed != want {
		t.Errorf("RenewOutputPath = %q, want %q", renewed, want)
	}
}

func TestParseHeaderArgs(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		expected map[string]string
	}{
		{
			name:     "single header",
			headers:  []string{"Authorization: Bearer token"},
			expected: map[string]string{"Authorization": "Bearer token"},
		},
		{
			name:     "value containing colon",
			headers:  []string{"Referer: https://example.com/page"},
			expected: map[string]string{"Referer": "https://example.com/page"},
		},
		{
			name:     "malformed header skipped",
			headers:  []string{"NoColonHere", "X-Test: 1"},
			expected: map[string]string{"X-Test": "1"},
		},
		{
			name:     "empty input",
			headers:  nil,
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseHeaderArgs(tt.headers)
			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d headers, got %d", len(tt.expected), len(result))
			}
			for k, v := range tt.expected {
				if result[k] != v {
					t.Errorf("header %q = %q, want %q", k, result[k], v)
				}
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    uint64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{1073741824, "1.00 GB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.bytes); got != tt.expected {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.expected)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "clean name unchanged",
			input:    "My Video",
			expected: "My Video",
		},
		{
			name:     "path separators replaced",
			input:    "a/b\\c",
			expected: "a_b_c",
		},
		{
			name:     "reserved characters replaced",
			input:    `clip: "the best" <ever>?`,
			expected: "clip_ _the best_ _ever__",
		},
		{
			name:     "empty name falls back",
			input:    "",
			expected: "video",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanTempDir(t *testing.T) {
	dir := t.TempDir()
	tempDir := filepath.Join(dir, TempDirName)
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "yt-dlp"), []byte("x"), 0755); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := CleanTempDir(filepath.Join(dir, "video.mp4")); err != nil {
		t.Fatalf("CleanTempDir failed: %v", err)
	}
	if _, err := os.Stat(tempDir); !os.IsNotExist(err) {
		t.Error("temp dir still exists after CleanTempDir")
	}

	// Cleaning again is not an error
	if err := CleanTempDir(filepath.Join(dir, "video.mp4")); err != nil {
		t.Errorf("CleanTempDir on missing dir failed: %v", err)
	}
}
