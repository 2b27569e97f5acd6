package scheduler

import (
	"path/filepath"
	"testing"

	"github.com/mzahur/vidgrab/internal/history"
	"github.com/mzahur/vidgrab/internal/utils"
)

func testStore(t *testing.T) *history.Store {
	t.Helper()
	return history.NewStore(filepath.Join(t.TempDir(), "history.json"))
}

func TestRunDrainsFailedJobs(t *testing.T) {
	store := testStore(t)
	jobs := []utils.Job{
		{JobType: "video", URL: "https://not-a-video-site.example/a"},
		{JobType: "video", URL: "https://not-a-video-site.example/b"},
		{JobType: "video", URL: "https://not-a-video-site.example/c"},
	}

	err := Run(jobs, 2, store)
	if err == nil {
		t.Fatal("expected Run to report failed jobs, got nil")
	}

	records, listErr := store.List(0, "")
	if listErr != nil {
		t.Fatalf("List failed: %v", listErr)
	}
	if len(records) != len(jobs) {
		t.Fatalf("expected %d history records, got %d", len(jobs), len(records))
	}
	seen := make(map[string]bool)
	for _, r := range records {
		if r.Status != history.StatusFailed {
			t.Errorf("record %s: expected status %q, got %q", r.ID, history.StatusFailed, r.Status)
		}
		if r.Error == "" {
			t.Errorf("record %s: failed record has no error message", r.ID)
		}
		if seen[r.ID] {
			t.Errorf("record %s written more than once", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestRunUnknownJobType(t *testing.T) {
	store := testStore(t)
	jobs := []utils.Job{
		{JobType: "torrent", URL: "https://www.youtube.com/watch?v=abc"},
	}
	if err := Run(jobs, 1, store); err == nil {
		t.Error("expected Run to fail on unknown job type, got nil")
	}
}

func TestUploadOutputUnresolvedTemplate(t *testing.T) {
	job := &utils.Job{
		URL:          "https://www.youtube.com/watch?v=abc",
		OutputPath:   filepath.Join("/downloads", "%(title)s.%(ext)s"),
		UploadTarget: "s3://bucket/videos",
		Metadata:     make(map[string]any),
	}
	if err := uploadOutput(job); err == nil {
		t.Error("expected upload of an unresolved output template to fail, got nil")
	}
}

func TestJobTitle(t *testing.T) {
	tests := []struct {
		name       string
		outputPath string
		url        string
		expected   string
	}{
		{
			name:       "unresolved template falls back to URL",
			outputPath: "/downloads/%(title)s.%(ext)s",
			url:        "https://www.youtube.com/watch?v=abc",
			expected:   "https://www.youtube.com/watch?v=abc",
		},
		{
			name:       "empty path falls back to URL",
			outputPath: "",
			url:        "https://youtu.be/abc",
			expected:   "https://youtu.be/abc",
		},
		{
			name:       "resolved path uses file stem",
			outputPath: "/downloads/My Video.mp4",
			url:        "https://www.youtube.com/watch?v=abc",
			expected:   "My Video",
		},
		{
			name:       "stem is sanitized",
			outputPath: "/downloads/what? a \"title\".mp4",
			url:        "https://www.youtube.com/watch?v=abc",
			expected:   "what_ a _title_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &utils.Job{URL: tt.url, OutputPath: tt.outputPath}
			if got := jobTitle(job); got != tt.expected {
				t.Errorf("jobTitle = %q, expected %q", got, tt.expected)
			}
		})
	}
}
