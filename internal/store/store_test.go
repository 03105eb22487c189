package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestPositions(t *testing.T, ttl time.Duration) *Positions {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	p, err := Open(dbPath, ttl)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestPositions_SetGet(t *testing.T) {
	p := openTestPositions(t, 24*time.Hour)

	// Miss on empty.
	if _, ok := p.Get("/tmp/a.c"); ok {
		t.Fatal("expected miss")
	}

	p.Set("/tmp/a.c", 42)
	got, ok := p.Get("/tmp/a.c")
	if !ok {
		t.Fatal("expected hit")
	}
	if got != 42 {
		t.Errorf("got %d, want 42", got)
	}

	// Overwrite.
	p.Set("/tmp/a.c", 7)
	if got, _ := p.Get("/tmp/a.c"); got != 7 {
		t.Errorf("after overwrite got %d, want 7", got)
	}
}

func TestPositions_RelativePath(t *testing.T) {
	p := openTestPositions(t, 24*time.Hour)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	p.Set("notes.txt", 3)
	got, ok := p.Get(filepath.Join(wd, "notes.txt"))
	if !ok || got != 3 {
		t.Errorf("absolute lookup = %d, %v; want 3, true", got, ok)
	}
}

func TestPositions_Expiry(t *testing.T) {
	p := openTestPositions(t, 1*time.Second)
	p.Set("/tmp/a.c", 5)

	// Backdate the entry.
	p.db.Exec("UPDATE positions SET updated = ? WHERE path = ?",
		time.Now().Add(-2*time.Second).Unix(), "/tmp/a.c")

	if _, ok := p.Get("/tmp/a.c"); ok {
		t.Fatal("expected stale miss")
	}
}

func TestPositions_PurgeOnOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	p, err := Open(dbPath, time.Hour)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	p.Set("/tmp/old.c", 1)
	p.Set("/tmp/new.c", 2)
	p.db.Exec("UPDATE positions SET updated = ? WHERE path = ?",
		time.Now().Add(-2*time.Hour).Unix(), "/tmp/old.c")
	p.Close()

	p, err = Open(dbPath, time.Hour)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer p.Close()

	var n int
	if err := p.db.QueryRow("SELECT COUNT(*) FROM positions").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("rows after purge = %d, want 1", n)
	}
}

func TestPositions_NilReceiver(t *testing.T) {
	var p *Positions
	if _, ok := p.Get("x"); ok {
		t.Error("nil store should miss")
	}
	p.Set("x", 1)
	if err := p.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}
