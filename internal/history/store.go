package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Status of a finished download job.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Record is one finished download job as persisted in the history file.
type Record struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Title      string    `json:"title,omitempty"`
	Format     string    `json:"format"`
	OutputPath string    `json:"output_path,omitempty"`
	Status     string    `json:"status"`
	FileSize   int64     `json:"file_size,omitempty"`
	Duration   string    `json:"duration,omitempty"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Store appends and lists download records backed by a single JSON file.
// Writes are atomic (temp file + rename) so a crash never corrupts history.
// A mutex serializes the read-modify-write cycle; every scheduler worker
// appends to the same store.
type Store struct {
	mu   sync.Mutex
	path string
}

// DefaultPath returns the history file location in the user config dir.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error resolving config dir: %v", err)
	}
	return filepath.Join(configDir, "vidgrab", "history.json"), nil
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Append adds a record to the end of the history file, creating the file and
// its directory on first use.
func (s *Store) Append(record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return err
	}
	records = append(records, record)
	return s.save(records)
}

// List returns records newest-first. limit <= 0 means all; statusFilter ""
// means any status.
func (s *Store) List(limit int, statusFilter string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return nil, err
	}
	var filtered []Record
	for i := len(records) - 1; i >= 0; i-- {
		if statusFilter != "" && records[i].Status != statusFilter {
			continue
		}
		filtered = append(filtered, records[i])
		if limit > 0 && len(filtered) == limit {
			break
		}
	}
	return filtered, nil
}

// Clear removes all history records.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Store) load() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading history file: %v", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("error parsing history file: %v", err)
	}
	return records, nil
}

func (s *Store) save(records []Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("error creating history dir: %v", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding history: %v", err)
	}
	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("error writing history file: %v", err)
	}
	return os.Rename(tempPath, s.path)
}
