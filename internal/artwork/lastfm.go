// Package artwork finds album cover art across music catalogue services.
package artwork

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	httputil "github.com/jmylchreest/albumtint/internal/util/http"
)

const lastFMAPIURL = "https://ws.audioscrobbler.com/2.0/"

// LastFMSource looks up cover art through the Last.fm album.getinfo call.
type LastFMSource struct {
	apiKey     string
	timeout    time.Duration
	baseURL    string
	maxRetries int
	retryWait  time.Duration
}

// NewLastFMSource creates a Last.fm source using the configured API key.
func NewLastFMSource(cfg Config) *LastFMSource {
	return &LastFMSource{
		apiKey:     cfg.LastFMAPIKey,
		timeout:    cfg.Timeout(),
		baseURL:    lastFMAPIURL,
		maxRetries: 3,
		retryWait:  2 * time.Second,
	}
}

// Name implements Source.
func (s *LastFMSource) Name() string { return "lastfm" }

type lastFMImage struct {
	URL  string `json:"#text"`
	Size string `json:"size"`
}

// albumInfoResponse is the subset of the album.getinfo payload we read.
type albumInfoResponse struct {
	Album struct {
		Image []lastFMImage `json:"image"`
	} `json:"album"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// FindCoverURL implements Source. Transient request failures are retried a
// few times with a short wait; an album without images is terminal.
func (s *LastFMSource) FindCoverURL(ctx context.Context, artist, album string) (string, error) {
	query := url.Values{}
	query.Set("method", "album.getinfo")
	query.Set("api_key", s.apiKey)
	query.Set("artist", artist)
	query.Set("album", album)
	query.Set("format", "json")
	requestURL := s.baseURL + "?" + query.Encode()

	var lastErr error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepContext(ctx, s.retryWait); err != nil {
				return "", err
			}
		}

		data, err := httputil.Fetch(ctx, requestURL, httputil.FetchOptions{Timeout: s.timeout})
		if err != nil {
			lastErr = err
			continue
		}

		var info albumInfoResponse
		if err := json.Unmarshal(data, &info); err != nil {
			lastErr = fmt.Errorf("decode album info: %w", err)
			continue
		}
		if info.Error != 0 {
			return "", fmt.Errorf("%w: %s", ErrNoArtwork, info.Message)
		}
		if u := coverImageURL(info.Album.Image); u != "" {
			return u, nil
		}
		return "", ErrNoArtwork
	}

	return "", fmt.Errorf("lastfm lookup failed after %d attempts: %w", s.maxRetries, lastErr)
}

// coverImageURL picks the extralarge rendition when present, otherwise the
// last non-empty one. Last.fm lists images smallest first.
func coverImageURL(images []lastFMImage) string {
	var fallback string
	for _, img := range images {
		if img.URL == "" {
			continue
		}
		if img.Size == "extralarge" {
			return img.URL
		}
		fallback = img.URL
	}
	return fallback
}
