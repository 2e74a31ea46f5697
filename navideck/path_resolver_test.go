package navideck

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveSkipListPath_Sidecar(t *testing.T) {
	dir := t.TempDir()
	deck := filepath.Join(dir, "talk.md")
	writeFile(t, filepath.Join(dir, "talk.skip"))

	got, err := ResolveSkipListPath("", deck, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != filepath.Join(dir, "talk.skip") {
		t.Errorf("got %s", got)
	}
}

func TestResolveSkipListPath_NotFound(t *testing.T) {
	deck := filepath.Join(t.TempDir(), "talk.md")

	_, err := ResolveSkipListPath("", deck, nil)
	if !errors.Is(err, ErrSkipListNotFound) {
		t.Errorf("expected ErrSkipListNotFound, got %v", err)
	}

	_, err = ResolveSkipListPath("", "", nil)
	if !errors.Is(err, ErrSkipListNotFound) {
		t.Errorf("expected ErrSkipListNotFound without deck, got %v", err)
	}
}

func TestResolveSkipListPath_SearchRoots(t *testing.T) {
	deckDir := t.TempDir()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "talk.skip"))

	got, err := ResolveSkipListPath("", filepath.Join(deckDir, "talk.md"), []string{"", root})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != filepath.Join(root, "talk.skip") {
		t.Errorf("got %s", got)
	}
}

func TestResolveSkipListPath_Explicit(t *testing.T) {
	dir := t.TempDir()
	deck := filepath.Join(dir, "talk.md")
	writeFile(t, filepath.Join(dir, "hidden.txt"))

	got, err := ResolveSkipListPath("hidden.txt", deck, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != filepath.Join(dir, "hidden.txt") {
		t.Errorf("relative explicit path: got %s", got)
	}

	abs := filepath.Join(dir, "hidden.txt")
	if got, err := ResolveSkipListPath(abs, "", nil); err != nil || got != abs {
		t.Errorf("absolute explicit path: got %s, %v", got, err)
	}

	if _, err := ResolveSkipListPath(filepath.Join(dir, "missing.txt"), deck, nil); !errors.Is(err, ErrSkipListNotFound) {
		t.Errorf("expected ErrSkipListNotFound, got %v", err)
	}
}

func TestResolveSkipListPath_DirectoryTraversal(t *testing.T) {
	for _, p := range []string{"../../etc/passwd", "docs/../../x.skip"} {
		_, err := ResolveSkipListPath(p, "/tmp/talk.md", nil)
		if !errors.Is(err, ErrDirectoryTraversal) {
			t.Errorf("%s: expected ErrDirectoryTraversal, got %v", p, err)
		}
	}
}

func TestResolveSkipListPath_URLs(t *testing.T) {
	got, err := ResolveSkipListPath("https://example.com/a.skip", "", nil)
	if err != nil || got != "https://example.com/a.skip" {
		t.Errorf("explicit URL: got %s, %v", got, err)
	}

	got, err = ResolveSkipListPath("", "https://example.com/decks/talk.md", nil)
	if err != nil || got != "https://example.com/decks/talk.skip" {
		t.Errorf("sidecar URL: got %s, %v", got, err)
	}
}

func TestSidecarPath(t *testing.T) {
	tests := []struct {
		deck string
		want string
	}{
		{"/talks/intro.md", "/talks/intro.skip"},
		{"/talks/intro", "/talks/intro.skip"},
		{"https://example.com/decks/talk.md", "https://example.com/decks/talk.skip"},
		{"https://example.com/decks/talk.md?raw=1", "https://example.com/decks/talk.skip?raw=1"},
		{"https://example.com/decks/talk.md#slide-3", "https://example.com/decks/talk.skip"},
		{"http://example.com/v1.2/talk", "http://example.com/v1.2/talk.skip"},
	}
	for _, tt := range tests {
		if got := SidecarPath(tt.deck); got != tt.want {
			t.Errorf("SidecarPath(%q) = %q, want %q", tt.deck, got, tt.want)
		}
	}

	got, err := ResolveSkipListPath("", "https://example.com/decks/talk.md?raw=1", nil)
	if err != nil || got != "https://example.com/decks/talk.skip?raw=1" {
		t.Errorf("sidecar URL with query: got %s, %v", got, err)
	}
}
