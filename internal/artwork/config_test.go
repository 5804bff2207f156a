package artwork

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "lastfm_api_key = \"file-key\"\ndiscogs_token = \"file-token\"\ntimeout_seconds = 3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LastFMAPIKey != "file-key" || cfg.DiscogsToken != "file-token" {
		t.Errorf("LoadConfig() credentials = %q/%q, want file values", cfg.LastFMAPIKey, cfg.DiscogsToken)
	}
	if cfg.TimeoutSeconds != 3 {
		t.Errorf("LoadConfig() timeout = %d, want 3", cfg.TimeoutSeconds)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("lastfm_api_key = \"file-key\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ALBUMTINT_LASTFM_API_KEY", "env-key")
	t.Setenv("ALBUMTINT_DISCOGS_TOKEN", "env-token")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LastFMAPIKey != "env-key" {
		t.Errorf("LoadConfig() lastfm key = %q, want the environment override", cfg.LastFMAPIKey)
	}
	if cfg.DiscogsToken != "env-token" {
		t.Errorf("LoadConfig() discogs token = %q, want the environment override", cfg.DiscogsToken)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("timeout_seconds = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("LoadConfig() expected error for a negative timeout")
	}

	// A zero timeout means unset and falls back to the default.
	if err := os.WriteFile(path, []byte("timeout_seconds = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.TimeoutSeconds != DefaultConfig().TimeoutSeconds {
		t.Errorf("LoadConfig() timeout = %d, want the default", cfg.TimeoutSeconds)
	}

	if _, err := LoadConfig(writeBadToml(t)); err == nil {
		t.Errorf("LoadConfig() expected error for malformed TOML")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "default", config: DefaultConfig()},
		{name: "zero timeout", config: Config{}},
		{name: "negative timeout", config: Config{TimeoutSeconds: -2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func writeBadToml(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("timeout_seconds = [not toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
