package ffmpeg

import (
	"testing"
	"time"
)

func TestMergeArgs(t *testing.T) {
	args := MergeArgs("video.f137.mp4", "audio.f140.m4a", "out.mp4")
	expected := []string{"-y", "-i", "video.f137.mp4", "-i", "audio.f140.m4a", "-c", "copy", "-movflags", "+faststart", "out.mp4"}
	if len(args) != len(expected) {
		t.Fatalf("expected %d args, got %d: %v", len(expected), len(args), args)
	}
	for i := range expected {
		if args[i] != expected[i] {
			t.Errorf("arg %d = %q, want %q", i, args[i], expected[i])
		}
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		name      string
		videoPath string
		expected  string
	}{
		{
			name:      "yt-dlp format suffix stripped",
			videoPath: "/downloads/My Video.f137.mp4",
			expected:  "/downloads/My Video.mp4",
		},
		{
			name:      "webm stream",
			videoPath: "/downloads/clip.f248.webm",
			expected:  "/downloads/clip.mp4",
		},
		{
			name:      "no format suffix",
			videoPath: "/downloads/plain.mkv",
			expected:  "/downloads/plain.mp4",
		},
		{
			name:      "dot f in title is kept",
			videoPath: "/downloads/lo.fi beats.mkv",
			expected:  "/downloads/lo.fi beats.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DefaultOutputPath(tt.videoPath)
			if result != tt.expected {
				t.Errorf("DefaultOutputPath(%q) = %q, want %q", tt.videoPath, result, tt.expected)
			}
		})
	}
}

func TestParseProbeDuration(t *testing.T) {
	tests := []struct {
		name     string
		out      string
		expected time.Duration
		wantErr  bool
	}{
		{
			name:     "fractional seconds",
			out:      "213.526000\n",
			expected: 213526 * time.Millisecond,
		},
		{
			name:     "whole seconds",
			out:      "5",
			expected: 5 * time.Second,
		},
		{
			name:    "empty output",
			out:     "",
			wantErr: true,
		},
		{
			name:    "garbage output",
			out:     "N/A",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseProbeDuration(tt.out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseProbeDuration(%q) error = %v, wantErr %v", tt.out, err, tt.wantErr)
			}
			if result != tt.expected {
				t.Errorf("parseProbeDuration(%q) = %v, want %v", tt.out, result, tt.expected)
			}
		})
	}
}
