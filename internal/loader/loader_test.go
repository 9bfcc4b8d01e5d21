package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLoader(stdin string) *Loader {
	return &Loader{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		stdin:      strings.NewReader(stdin),
	}
}

func TestLoad_Stdin(t *testing.T) {
	l := testLoader("<h1>from stdin</h1>")
	doc, err := l.Load(context.Background(), "-")
	require.NoError(t, err)
	assert.Equal(t, "<h1>from stdin</h1>", doc)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<h1>from file</h1>"), 0o644))

	l := testLoader("")
	doc, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "<h1>from file</h1>", doc)
}

func TestLoad_MissingFile(t *testing.T) {
	l := testLoader("")
	_, err := l.Load(context.Background(), filepath.Join(t.TempDir(), "absent.html"))
	require.Error(t, err)
}

func TestLoad_MarkdownFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\nbody text\n"), 0o644))

	l := testLoader("")
	doc, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, doc, "<h1>Title</h1>")
	assert.Contains(t, doc, "<p>body text</p>")
}

func TestLoad_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte("<h1>from server</h1>"))
	}))
	defer srv.Close()

	l := testLoader("")
	doc, err := l.Load(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<h1>from server</h1>", doc)
}

func TestLoad_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	l := testLoader("")
	_, err := l.Load(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestIsMarkdown(t *testing.T) {
	assert.True(t, IsMarkdown("notes.md"))
	assert.True(t, IsMarkdown("notes.MD"))
	assert.True(t, IsMarkdown("doc/readme.markdown"))
	assert.False(t, IsMarkdown("page.html"))
	assert.False(t, IsMarkdown("md"))
}

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown([]byte("- one\n- two\n"))
	require.NoError(t, err)
	assert.Contains(t, html, "<li>one</li>")
	assert.Contains(t, html, "<li>two</li>")
}
