package navideck

import (
	"errors"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// SkipListExt is the extension of the sidecar skip list next to a deck.
const SkipListExt = ".skip"

// ErrDirectoryTraversal is returned when a relative path escapes its base.
var ErrDirectoryTraversal = errors.New("directory traversal not allowed")

// ResolveSkipListPath finds the skip list for a deck.
//
// Resolution order:
// 1. explicit HTTP(S) URL -> returned as-is
// 2. explicit path, relative paths taken from the deck directory
// 3. sidecar "<deck without extension>.skip"
// 4. "<deck base name>.skip" in each search root
//
// ErrSkipListNotFound is returned when nothing exists; callers treat that as
// an empty skip set.
func ResolveSkipListPath(explicit, deckPath string, searchRoots []string) (string, error) {
	if isHTTPURL(explicit) {
		return explicit, nil
	}

	if explicit != "" {
		if filepath.IsAbs(explicit) {
			if fileExists(explicit) {
				return explicit, nil
			}
			return "", ErrSkipListNotFound
		}
		if containsDirectoryTraversal(explicit) {
			return "", ErrDirectoryTraversal
		}
		candidates := []string{explicit}
		if deckPath != "" && !isHTTPURL(deckPath) {
			candidates = append([]string{filepath.Join(filepath.Dir(deckPath), explicit)}, candidates...)
		}
		for _, c := range candidates {
			if fileExists(c) {
				return filepath.Clean(c), nil
			}
		}
		return "", ErrSkipListNotFound
	}

	if deckPath == "" {
		return "", ErrSkipListNotFound
	}
	sidecar := SidecarPath(deckPath)
	if isHTTPURL(deckPath) {
		return sidecar, nil
	}
	if fileExists(sidecar) {
		return sidecar, nil
	}

	name := filepath.Base(sidecar)
	for _, root := range searchRoots {
		if root == "" {
			continue
		}
		candidate := filepath.Join(root, name)
		if fileExists(candidate) {
			return candidate, nil
		}
	}

	return "", ErrSkipListNotFound
}

// SidecarPath returns the skip list location next to a deck, whether or not it
// exists. For URLs only the path changes: the query is kept and the fragment
// dropped.
func SidecarPath(deckPath string) string {
	if isHTTPURL(deckPath) {
		if u, err := url.Parse(deckPath); err == nil {
			u.Path = strings.TrimSuffix(u.Path, path.Ext(u.Path)) + SkipListExt
			u.RawPath = ""
			u.Fragment = ""
			u.RawFragment = ""
			return u.String()
		}
	}
	return strings.TrimSuffix(deckPath, filepath.Ext(deckPath)) + SkipListExt
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func containsDirectoryTraversal(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if part == ".." {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
