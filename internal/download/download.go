package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	userAgent = "gltf-sketch/1.0"
	timeout   = 60 * time.Second
)

// IsURL reports whether src should be fetched over HTTP instead of opened from disk.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Download fetches url into destDir and returns the saved path. The file name comes from the URL
// path; the extension from the URL or, failing that, the Content-Type. When a file with the
// URL-derived name already exists in destDir it is reused without a request.
func Download(ctx context.Context, url, destDir string) (savedPath string, err error) {
	if name, ok := cachedName(url); ok {
		p := filepath.Join(destDir, name)
		if fi, err := os.Stat(p); err == nil && fi.Size() > 0 {
			return p, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: HTTP %d", url, resp.StatusCode)
	}

	ext := extensionFromURL(url)
	if ext == "" {
		ext = extensionFromContentType(resp.Header.Get("Content-Type"))
	}
	if ext == "" {
		ext = ".bin"
	}
	name := sanitizeFilename(filenameFromURL(url))
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	savedPath = filepath.Join(destDir, name)
	// write to a temp name so a failed transfer never leaves a file the cache check would accept
	tmp := savedPath + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("download: %w", err)
	}
	if err := os.Rename(tmp, savedPath); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	return savedPath, nil
}

// cachedName is the file name Download would pick for url without looking at response headers.
func cachedName(url string) (string, bool) {
	ext := extensionFromURL(url)
	if ext == "" {
		return "", false
	}
	name := sanitizeFilename(filenameFromURL(url))
	return name + ext, true
}

// knownExts are the asset extensions the sketches read.
var knownExts = []string{".glb", ".gltf", ".bin", ".png", ".jpg", ".jpeg", ".bmp", ".webp", ".tif", ".tiff"}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case strings.Contains(ct, "gltf-binary"):
		return ".glb"
	case strings.Contains(ct, "gltf"):
		return ".gltf"
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	case strings.Contains(ct, "webp"):
		return ".webp"
	case strings.Contains(ct, "tiff"):
		return ".tiff"
	case strings.Contains(ct, "bmp"):
		return ".bmp"
	}
	return ""
}

func extensionFromURL(url string) string {
	ext := strings.ToLower(filepath.Ext(stripQuery(url)))
	for _, e := range knownExts {
		if ext == e {
			return ext
		}
	}
	return ""
}

func filenameFromURL(url string) string {
	base := filepath.Base(stripQuery(url))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func stripQuery(url string) string {
	if idx := strings.IndexAny(url, "?#"); idx >= 0 {
		return url[:idx]
	}
	return url
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	name = safeNameRe.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == "_" {
		return "download"
	}
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
