package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir(), 5*time.Second)

	dest, err := f.Download(context.Background(), srv.URL+"/reports/match-123.pdf")
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
	assert.Contains(t, dest, "match-123.pdf")
}

func TestDownload_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir(), 5*time.Second)

	_, err := f.Download(context.Background(), srv.URL+"/missing.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://media.ffhandball.fr/match.pdf"))
	assert.True(t, IsURL("http://example.com/match.pdf"))
	assert.False(t, IsURL("/tmp/match.pdf"))
	assert.False(t, IsURL("match.pdf"))
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "match-123.pdf", safeFilename("https://example.com/a/match-123.pdf"))
	assert.Equal(t, "match.pdf", safeFilename("https://example.com/match"))
}
