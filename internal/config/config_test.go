package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load on missing file failed: %v", err)
	}
	if cfg.Format != "decent" {
		t.Errorf("expected default format 'decent', got %q", cfg.Format)
	}
	if cfg.Workers != 1 {
		t.Errorf("expected default workers 1, got %d", cfg.Workers)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vidgrab", "config.yaml")
	want := Config{
		OutputDir: "/media/videos",
		Format:    "720p",
		Workers:   3,
		ProxyURL:  "proxy.example.com:8080",
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != want {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", got, want)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("output_dir: /downloads\n"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutputDir != "/downloads" {
		t.Errorf("expected output_dir '/downloads', got %q", cfg.OutputDir)
	}
	// Unset fields fall back to defaults
	if cfg.Format != "decent" {
		t.Errorf("expected default format, got %q", cfg.Format)
	}
	if cfg.Workers != 1 {
		t.Errorf("expected default workers, got %d", cfg.Workers)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\nnot yaml: ["), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}
