// Package artwork finds album cover art across music catalogue services.
package artwork

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds credentials and client settings for the catalogue services.
// Services without credentials are skipped; MusicBrainz needs none.
type Config struct {
	// LastFMAPIKey enables the Last.fm source when set.
	LastFMAPIKey string `toml:"lastfm_api_key"`

	// DiscogsToken enables the Discogs source when set.
	DiscogsToken string `toml:"discogs_token"`

	// TimeoutSeconds bounds each catalogue request.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{TimeoutSeconds: 10}
}

// DefaultConfigPath returns the default config file location under the
// user's home directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".albumtint", "config.toml")
	}
	return filepath.Join(home, ".albumtint", "config.toml")
}

// LoadConfig reads a TOML config file and applies environment overrides
// (ALBUMTINT_LASTFM_API_KEY, ALBUMTINT_DISCOGS_TOKEN). A missing file is
// not an error; the defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("ALBUMTINT_LASTFM_API_KEY"); v != "" {
		cfg.LastFMAPIKey = v
	}
	if v := os.Getenv("ALBUMTINT_DISCOGS_TOKEN"); v != "" {
		cfg.DiscogsToken = v
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = DefaultConfig().TimeoutSeconds
	}
	return cfg, nil
}

// Validate checks the configuration for usable values. A zero timeout is
// allowed and means the default.
func (c Config) Validate() error {
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", c.TimeoutSeconds)
	}
	return nil
}

// Timeout returns the per-request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
