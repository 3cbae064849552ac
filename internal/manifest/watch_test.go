package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "characters.xml")
	if err := os.WriteFile(path, []byte("<characters/>"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	valid, err := os.ReadFile(testPath("valid.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, valid, 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case m := <-w.Updates:
		if len(m.Characters) != 2 {
			t.Errorf("reloaded Characters len = %d, want 2", len(m.Characters))
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_ReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "characters.xml")
	if err := os.WriteFile(path, []byte("<characters/>"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("<characters><character"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case m := <-w.Updates:
		t.Fatalf("expected error, got manifest %v", m)
	case err := <-w.Errors:
		if err == nil {
			t.Fatal("expected non-nil error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "characters.xml")
	if err := os.WriteFile(path, []byte("<characters/>"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case m := <-w.Updates:
		t.Fatalf("unexpected reload for sibling file: %v", m)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "characters.xml")
	if err := os.WriteFile(path, []byte("<characters/>"), 0644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path, 0)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, ok := <-w.Updates; ok {
		t.Error("Updates should be closed")
	}
}
