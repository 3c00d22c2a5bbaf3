package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReportsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.yaml")
	if err := os.WriteFile(path, []byte("baseline: 120\n"), 0644); err != nil {
		t.Fatal(err)
	}

	done := make(chan any, 1)
	go func() { done <- Watch(50*time.Millisecond, path)() }()

	// give the watcher time to register before writing
	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(path, []byte("baseline: 100\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-done:
		changed, ok := msg.(ChangedMsg)
		if !ok {
			t.Fatalf("expected ChangedMsg, got %T", msg)
		}
		abs, _ := filepath.Abs(path)
		if len(changed.Files) != 1 || changed.Files[0] != abs {
			t.Errorf("expected [%s], got %v", abs, changed.Files)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}
}

func TestWatchNothing(t *testing.T) {
	if msg := Watch(DefaultDebounce)(); msg != nil {
		t.Errorf("expected nil message with no files, got %v", msg)
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	msg := Watch(DefaultDebounce, filepath.Join(t.TempDir(), "missing", "page.yaml"))()
	if _, ok := msg.(ErrorMsg); !ok {
		t.Errorf("expected ErrorMsg, got %T", msg)
	}
}
