// Package loader resolves the document references the take CLI accepts:
// "-" for stdin, http(s) URLs and local file paths. Markdown documents
// render to HTML first, so templates address the rendered structure.
package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
)

// Loader fetches documents by reference.
type Loader struct {
	httpClient *http.Client
	stdin      io.Reader
}

// New returns a Loader reading stdin for "-" and fetching URLs with a 30
// second timeout.
func New() *Loader {
	return &Loader{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		stdin:      os.Stdin,
	}
}

// Load resolves ref to HTML. "-" reads stdin to EOF, http and https
// URLs are fetched with GET, anything else is a file path. Files named
// *.md or *.markdown render to HTML.
func (l *Loader) Load(ctx context.Context, ref string) (string, error) {
	switch {
	case ref == "-":
		b, err := io.ReadAll(l.stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil

	case strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://"):
		return l.fetch(ctx, ref)

	default:
		b, err := os.ReadFile(ref)
		if err != nil {
			return "", err
		}
		if IsMarkdown(ref) {
			return RenderMarkdown(b)
		}
		return string(b), nil
	}
}

func (l *Loader) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return string(b), nil
}

// IsMarkdown reports whether path names a markdown document.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// RenderMarkdown converts markdown source to HTML.
func RenderMarkdown(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
