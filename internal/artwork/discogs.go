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

const discogsAPIURL = "https://api.discogs.com"

// DiscogsSource searches the Discogs database for a release and takes the
// cover image of the first hit.
type DiscogsSource struct {
	token   string
	timeout time.Duration
	baseURL string
}

// NewDiscogsSource creates a Discogs source using the configured personal
// access token.
func NewDiscogsSource(cfg Config) *DiscogsSource {
	return &DiscogsSource{
		token:   cfg.DiscogsToken,
		timeout: cfg.Timeout(),
		baseURL: discogsAPIURL,
	}
}

// Name implements Source.
func (s *DiscogsSource) Name() string { return "discogs" }

type discogsSearchResponse struct {
	Results []struct {
		CoverImage string `json:"cover_image"`
	} `json:"results"`
}

// FindCoverURL implements Source.
func (s *DiscogsSource) FindCoverURL(ctx context.Context, artist, album string) (string, error) {
	query := url.Values{}
	query.Set("artist", artist)
	query.Set("release_title", album)
	query.Set("type", "release")

	data, err := httputil.Fetch(ctx, s.baseURL+"/database/search?"+query.Encode(), httputil.FetchOptions{
		Timeout: s.timeout,
		Headers: map[string]string{"Authorization": "Discogs token=" + s.token},
	})
	if err != nil {
		return "", fmt.Errorf("search releases: %w", err)
	}

	var result discogsSearchResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode release search: %w", err)
	}
	if len(result.Results) == 0 || result.Results[0].CoverImage == "" {
		return "", ErrNoArtwork
	}
	return result.Results[0].CoverImage, nil
}
