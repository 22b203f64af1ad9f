// Package config carries all tunables as an explicit object passed into the
// pipeline, instead of process-wide mutable state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/WanXcodinG/socialgrab/internal/platform"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

type Config struct {
	// BaseDir is the downloads root; one subdirectory per platform lives
	// under it.
	BaseDir string `yaml:"base_dir"`
	// YtdlpPath overrides tool discovery when set.
	YtdlpPath string `yaml:"ytdlp_path"`
	// UserAgent is sent to platforms that block yt-dlp's default agent.
	UserAgent string `yaml:"user_agent"`

	DownloadTimeout time.Duration `yaml:"download_timeout"`
	PlaylistTimeout time.Duration `yaml:"playlist_timeout"`
	AudioTimeout    time.Duration `yaml:"audio_timeout"`
	InfoTimeout     time.Duration `yaml:"info_timeout"`

	// RecencyWindow bounds the resolver's last-resort mtime heuristic.
	RecencyWindow time.Duration `yaml:"recency_window"`
}

func Default() *Config {
	return &Config{
		BaseDir:         "downloads",
		UserAgent:       browserUserAgent,
		DownloadTimeout: 5 * time.Minute,
		PlaylistTimeout: 10 * time.Minute,
		AudioTimeout:    3 * time.Minute,
		InfoTimeout:     30 * time.Second,
		RecencyWindow:   5 * time.Minute,
	}
}

// Load builds the config from defaults, an optional YAML file, and
// SOCIALGRAB_* environment variables (a .env file is honored when present).
func Load(path string) (*Config, error) {
	_ = godotenv.Load()
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %v", err)
		}
	}
	if dir := os.Getenv("SOCIALGRAB_DIR"); dir != "" {
		cfg.BaseDir = dir
	}
	if tool := os.Getenv("SOCIALGRAB_YTDLP"); tool != "" {
		cfg.YtdlpPath = tool
	}
	if ua := os.Getenv("SOCIALGRAB_USER_AGENT"); ua != "" {
		cfg.UserAgent = ua
	}
	return cfg, nil
}

// PlatformDir returns the output directory for a platform. Directories are
// shared across requests; concurrent downloads into the same platform
// directory are unsupported (the resolver's recency heuristic can pick up a
// neighbor's file), so callers must serialize per platform.
func (c *Config) PlatformDir(p platform.Platform) string {
	return filepath.Join(c.BaseDir, string(p))
}

// EnsureDirs creates the base directory and every platform subdirectory.
// Called once at startup so downloads never race directory creation.
func (c *Config) EnsureDirs() error {
	for _, p := range platform.All() {
		if err := os.MkdirAll(c.PlatformDir(p), 0755); err != nil {
			return fmt.Errorf("error creating platform directory: %v", err)
		}
	}
	return nil
}
