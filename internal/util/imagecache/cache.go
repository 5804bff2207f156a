// Package imagecache stores downloaded cover art on disk so repeated runs
// for the same album do not refetch it.
package imagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/albumtint/internal/security"
	httputil "github.com/jmylchreest/albumtint/internal/util/http"
)

// CacheOptions configures where covers are stored and when they are
// refreshed.
type CacheOptions struct {
	// CacheDir overrides the default cover directory.
	CacheDir string

	// AllowOverwrite forces a fresh download even when a cached copy exists.
	AllowOverwrite bool
}

// DefaultCacheDir returns the directory cover art is cached under.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("determine cache directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "albumtint", "covers"), nil
}

// cacheFilename derives a stable filename for a cover URL: half of its
// SHA-256 plus the URL's image extension. Cover endpoints often carry no
// extension at all, so .jpg is assumed when one is missing.
func cacheFilename(url string) string {
	sum := sha256.Sum256([]byte(url))
	ext := filepath.Ext(url)
	if i := strings.IndexByte(ext, '?'); i >= 0 {
		ext = ext[:i]
	}
	if ext == "" || len(ext) > 5 {
		ext = ".jpg"
	}
	return hex.EncodeToString(sum[:16]) + ext
}

// DownloadAndCache returns the local path of the cover at url, downloading
// it on a cache miss. The cached file is written atomically so an
// interrupted download never leaves a truncated image behind.
func DownloadAndCache(ctx context.Context, url string, opts CacheOptions) (string, error) {
	if err := security.ValidateHTTPURL(url); err != nil {
		return "", fmt.Errorf("cover art URL: %w", err)
	}

	dir := opts.CacheDir
	if dir == "" {
		d, err := DefaultCacheDir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return "", fmt.Errorf("create cache directory: %w", err)
	}

	path := filepath.Join(dir, cacheFilename(url))
	if !opts.AllowOverwrite {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	data, err := httputil.Fetch(ctx, url, httputil.FetchOptions{})
	if err != nil {
		return "", fmt.Errorf("download cover art: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "cover-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temporary cover file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write cover art: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("write cover art: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("store cover art: %w", err)
	}
	return path, nil
}
