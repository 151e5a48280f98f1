package seed

import (
	"os"
	"path/filepath"
	"testing"
)

// TestStateDBRoundTrip verifies a file is reported unseeded until marked,
// then seeded for the same (path, size, hash).
func TestStateDBRoundTrip(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer state.Close()

	seeded, err := state.IsSeeded("exercises.csv", 100, "abc")
	if err != nil {
		t.Fatalf("IsSeeded: %v", err)
	}
	if seeded {
		t.Error("fresh state reports file as seeded")
	}

	if err := state.MarkSeeded("exercises.csv", 100, "abc"); err != nil {
		t.Fatalf("MarkSeeded: %v", err)
	}

	seeded, err = state.IsSeeded("exercises.csv", 100, "abc")
	if err != nil {
		t.Fatalf("IsSeeded: %v", err)
	}
	if !seeded {
		t.Error("marked file not reported as seeded")
	}
}

// TestStateDBChangedFile verifies a size or hash change makes the file
// eligible for re-seeding.
func TestStateDBChangedFile(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer state.Close()

	if err := state.MarkSeeded("exercises.csv", 100, "abc"); err != nil {
		t.Fatalf("MarkSeeded: %v", err)
	}

	if seeded, _ := state.IsSeeded("exercises.csv", 200, "abc"); seeded {
		t.Error("size change still reported as seeded")
	}
	if seeded, _ := state.IsSeeded("exercises.csv", 100, "def"); seeded {
		t.Error("hash change still reported as seeded")
	}
}

// TestHashFile verifies hashing is content-addressed and stable.
func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.csv")
	if err := os.WriteFile(path, []byte("name,muscle_group\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	h1, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	h2, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if h1 != h2 {
		t.Errorf("hash not stable: %q vs %q", h1, h2)
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}

	other := filepath.Join(dir, "b.csv")
	if err := os.WriteFile(other, []byte("different"), 0o644); err != nil {
		t.Fatal(err)
	}
	h3, err := HashFile(other)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if h3 == h1 {
		t.Error("different contents produced the same hash")
	}
}
