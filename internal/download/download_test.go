package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadSavesAndReusesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "model/gltf-binary")
		_, _ = w.Write([]byte("glTF-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	url := srv.URL + "/models/Damaged+Helmet.glb?v=2"
	p, err := Download(context.Background(), url, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Damaged_Helmet.glb"), p)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "glTF-bytes", string(data))

	p2, err := Download(context.Background(), url, dir)
	require.NoError(t, err)
	assert.Equal(t, p, p2)
	assert.EqualValues(t, 1, hits.Load())
}

func TestDownloadExtensionFromContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png; charset=binary")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer srv.Close()

	p, err := Download(context.Background(), srv.URL+"/env/sunset", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "sunset.png", filepath.Base(p))
}

func TestDownloadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	_, err := Download(context.Background(), srv.URL+"/missing.glb", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestDownloadCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Download(ctx, srv.URL+"/a.glb", t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHelpers(t *testing.T) {
	assert.True(t, IsURL("https://example.com/a.glb"))
	assert.False(t, IsURL("assets/a.glb"))
	assert.Equal(t, ".jpg", extensionFromURL("http://x/y/photo.JPG#frag"))
	assert.Equal(t, "", extensionFromURL("http://x/y/file.exe"))
	assert.Equal(t, "download", sanitizeFilename(""))
	assert.Equal(t, "a_b", sanitizeFilename("a b"))
	assert.Equal(t, ".gltf", extensionFromContentType("model/gltf+json"))
}
