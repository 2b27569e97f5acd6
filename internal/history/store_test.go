package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "vidgrab", "history.json"))
}

func testRecord(id, status string) Record {
	return Record{
		ID:         id,
		URL:        "https://www.youtube.com/watch?v=" + id,
		Title:      "Video " + id,
		Format:     "best",
		OutputPath: "/downloads/" + id + ".mp4",
		Status:     status,
		StartedAt:  time.Now().Add(-time.Minute),
		FinishedAt: time.Now(),
	}
}

func TestAppendAndList(t *testing.T) {
	store := testStore(t)

	for _, id := range []string{"a", "b", "c"} {
		if err := store.Append(testRecord(id, StatusCompleted)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	records, err := store.List(0, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	// Newest first
	if records[0].ID != "c" || records[2].ID != "a" {
		t.Errorf("records not newest-first: %s, %s, %s", records[0].ID, records[1].ID, records[2].ID)
	}
}

func TestListLimit(t *testing.T) {
	store := testStore(t)
	for _, id := range []string{"a", "b", "c", "d"} {
		if err := store.Append(testRecord(id, StatusCompleted)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	records, err := store.List(2, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "d" || records[1].ID != "c" {
		t.Errorf("limit returned wrong records: %s, %s", records[0].ID, records[1].ID)
	}
}

func TestListStatusFilter(t *testing.T) {
	store := testStore(t)
	if err := store.Append(testRecord("ok", StatusCompleted)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(testRecord("bad", StatusFailed)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	records, err := store.List(0, StatusFailed)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 failed record, got %d", len(records))
	}
	if records[0].ID != "bad" {
		t.Errorf("expected record 'bad', got %q", records[0].ID)
	}
}

func TestListEmptyStore(t *testing.T) {
	store := testStore(t)
	records, err := store.List(0, "")
	if err != nil {
		t.Fatalf("List on missing file failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestClear(t *testing.T) {
	store := testStore(t)
	if err := store.Append(testRecord("a", StatusCompleted)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	records, err := store.List(0, "")
	if err != nil {
		t.Fatalf("List after Clear failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records after Clear, got %d", len(records))
	}
	// Clearing an already-empty store is fine
	if err := store.Clear(); err != nil {
		t.Errorf("Clear on missing file failed: %v", err)
	}
}

func TestCorruptHistoryFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	store := NewStore(path)
	if _, err := store.List(0, ""); err == nil {
		t.Error("expected error listing corrupt history, got nil")
	}
}

func TestConcurrentAppend(t *testing.T) {
	store := testStore(t)
	const n = 16

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.Append(testRecord(fmt.Sprintf("job-%d", i), StatusCompleted)); err != nil {
				t.Errorf("concurrent Append failed: %v", err)
			}
		}()
	}
	wg.Wait()

	records, err := store.List(0, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != n {
		t.Errorf("appended %d records concurrently, only %d persisted", n, len(records))
	}
	seen := make(map[string]bool)
	for _, r := range records {
		if seen[r.ID] {
			t.Errorf("record %s persisted more than once", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestNoTempFileLeftBehind(t *testing.T) {
	store := testStore(t)
	if err := store.Append(testRecord("a", StatusCompleted)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := os.Stat(store.path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after Append")
	}
}
