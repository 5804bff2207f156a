// Package artwork finds album cover art across music catalogue services.
package artwork

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/albumtint/internal/security"
)

// ErrNoArtwork is returned when no catalogue service has cover art for the
// requested album.
var ErrNoArtwork = errors.New("no cover art found")

// Source finds cover art in one catalogue service.
type Source interface {
	// Name identifies the service in logs.
	Name() string

	// FindCoverURL returns the cover art URL for the album, or ErrNoArtwork
	// when the service has nothing for it.
	FindCoverURL(ctx context.Context, artist, album string) (string, error)
}

// Finder queries catalogue services in order of preference and returns the
// first cover art URL found.
type Finder struct {
	sources []Source
	logger  hclog.Logger
}

// NewFinder assembles the source chain for the given configuration: Last.fm
// when an API key is configured, then MusicBrainz, then Discogs when a
// token is configured.
func NewFinder(cfg Config, logger hclog.Logger) *Finder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var sources []Source
	if cfg.LastFMAPIKey != "" {
		sources = append(sources, NewLastFMSource(cfg))
	}
	sources = append(sources, NewMusicBrainzSource(cfg))
	if cfg.DiscogsToken != "" {
		sources = append(sources, NewDiscogsSource(cfg))
	}

	return &Finder{
		sources: sources,
		logger:  logger.Named("artwork"),
	}
}

// FindCoverURL tries each source in turn and returns the first URL that
// passes validation. Individual source failures are logged and the next
// source is tried; only context cancellation aborts the chain early.
func (f *Finder) FindCoverURL(ctx context.Context, artist, album string) (string, error) {
	if strings.TrimSpace(artist) == "" || strings.TrimSpace(album) == "" {
		return "", errors.New("artist and album must not be empty")
	}

	for _, source := range f.sources {
		f.logger.Debug("searching for cover art", "source", source.Name(), "artist", artist, "album", album)

		url, err := source.FindCoverURL(ctx, artist, album)
		if err != nil {
			if errors.Is(err, ErrNoArtwork) {
				f.logger.Debug("no cover art", "source", source.Name())
			} else {
				f.logger.Warn("cover art lookup failed", "source", source.Name(), "error", err)
			}
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}
		if err := security.ValidateHTTPURL(url); err != nil {
			f.logger.Warn("rejected cover art URL", "source", source.Name(), "error", err)
			continue
		}

		f.logger.Info("found cover art", "source", source.Name(), "url", url)
		return url, nil
	}

	return "", fmt.Errorf("cover art for %s - %s: %w", artist, album, ErrNoArtwork)
}

// sleepContext waits for d or until the context is cancelled, whichever
// comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
