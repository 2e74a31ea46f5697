package loaders

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
)

// ErrNotFound wraps every "resource does not exist" failure (missing file,
// HTTP 404) so callers can treat optional resources as absent.
var ErrNotFound = errors.New("resource not found")

// FileHTTP fetches decks and skip lists from HTTP(S) URLs and local files.
type FileHTTP struct {
	// Client is used for HTTP(S) requests; if nil, http.DefaultClient is used.
	Client *http.Client
}

// Fetch returns the content at location, a local path or an HTTP(S) URL.
func (f *FileHTTP) Fetch(location string) ([]byte, error) {
	if location == "" {
		return nil, fmt.Errorf("empty location: %w", ErrNotFound)
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return f.fetchFromWeb(location)
	}
	return f.fetchFromLocal(location)
}

func (f *FileHTTP) fetchFromWeb(url string) (content []byte, err error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", url, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("server returned non-200 status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func (f *FileHTTP) fetchFromLocal(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read local file: %w", err)
	}
	return content, nil
}
