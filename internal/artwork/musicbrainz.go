// Package artwork finds album cover art across music catalogue services.
package artwork

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/jmylchreest/albumtint/internal/util"
	httputil "github.com/jmylchreest/albumtint/internal/util/http"
)

const (
	musicBrainzAPIURL  = "https://musicbrainz.org/ws/2"
	coverArtArchiveURL = "https://coverartarchive.org"

	// matchThreshold is the minimum similarity score a release-group search
	// hit must reach before it is trusted.
	matchThreshold = 80
)

// MusicBrainzSource resolves an album to a MusicBrainz release and probes
// the Cover Art Archive for its front cover. No credentials are needed.
type MusicBrainzSource struct {
	timeout     time.Duration
	apiURL      string
	coverArtURL string
}

// NewMusicBrainzSource creates a MusicBrainz source.
func NewMusicBrainzSource(cfg Config) *MusicBrainzSource {
	return &MusicBrainzSource{
		timeout:     cfg.Timeout(),
		apiURL:      musicBrainzAPIURL,
		coverArtURL: coverArtArchiveURL,
	}
}

// Name implements Source.
func (s *MusicBrainzSource) Name() string { return "musicbrainz" }

type releaseGroup struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ArtistCredit []struct {
		Artist struct {
			Name string `json:"name"`
		} `json:"artist"`
	} `json:"artist-credit"`
}

type releaseGroupSearchResponse struct {
	ReleaseGroups []releaseGroup `json:"release-groups"`
}

type releaseBrowseResponse struct {
	Releases []struct {
		ID string `json:"id"`
	} `json:"releases"`
}

// FindCoverURL implements Source. The search hit is fuzzy-matched against
// the requested artist and album, its release group is resolved to a
// release, and the Cover Art Archive front-500 URL is probed before being
// returned.
func (s *MusicBrainzSource) FindCoverURL(ctx context.Context, artist, album string) (string, error) {
	group, err := s.searchReleaseGroup(ctx, artist, album)
	if err != nil {
		return "", err
	}

	releaseID, err := s.firstReleaseID(ctx, group.ID)
	if err != nil {
		return "", err
	}

	coverURL := fmt.Sprintf("%s/release/%s/front-500", s.coverArtURL, releaseID)
	ok, err := httputil.Exists(ctx, coverURL, httputil.FetchOptions{Timeout: s.timeout})
	if err != nil {
		return "", fmt.Errorf("probe cover art: %w", err)
	}
	if !ok {
		return "", ErrNoArtwork
	}
	return coverURL, nil
}

// searchReleaseGroup returns the best release-group hit at or above the
// match threshold, comparing "artist - album" strings.
func (s *MusicBrainzSource) searchReleaseGroup(ctx context.Context, artist, album string) (*releaseGroup, error) {
	query := url.Values{}
	query.Set("query", fmt.Sprintf("artist:%q AND releasegroup:%q", artist, album))
	query.Set("limit", "5")
	query.Set("fmt", "json")

	data, err := httputil.Fetch(ctx, s.apiURL+"/release-group?"+query.Encode(), httputil.FetchOptions{Timeout: s.timeout})
	if err != nil {
		return nil, fmt.Errorf("search release groups: %w", err)
	}

	var result releaseGroupSearchResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode release group search: %w", err)
	}

	want := fmt.Sprintf("%s - %s", artist, album)
	var best *releaseGroup
	bestRatio := 0
	for i := range result.ReleaseGroups {
		rg := &result.ReleaseGroups[i]
		if len(rg.ArtistCredit) == 0 {
			continue
		}
		have := fmt.Sprintf("%s - %s", rg.ArtistCredit[0].Artist.Name, rg.Title)
		ratio := util.SimilarityRatio(want, have)
		if ratio >= matchThreshold && ratio > bestRatio {
			bestRatio = ratio
			best = rg
		}
	}
	if best == nil {
		return nil, ErrNoArtwork
	}
	return best, nil
}

// firstReleaseID returns the first release of a release group.
func (s *MusicBrainzSource) firstReleaseID(ctx context.Context, groupID string) (string, error) {
	query := url.Values{}
	query.Set("release-group", groupID)
	query.Set("limit", "1")
	query.Set("fmt", "json")

	data, err := httputil.Fetch(ctx, s.apiURL+"/release?"+query.Encode(), httputil.FetchOptions{Timeout: s.timeout})
	if err != nil {
		return "", fmt.Errorf("browse releases: %w", err)
	}

	var result releaseBrowseResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode release browse: %w", err)
	}
	if len(result.Releases) == 0 {
		return "", ErrNoArtwork
	}
	return result.Releases[0].ID, nil
}
