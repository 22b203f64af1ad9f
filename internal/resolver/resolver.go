// Package resolver locates the file a download actually produced. yt-dlp may
// sanitize or rename the requested output template, so the reported path is
// never trusted; the directory is searched instead.
package resolver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// MediaExtensions are the payload types a download can produce. Sidecar
// files (.info.json, thumbnails) are deliberately absent.
var MediaExtensions = []string{".mp4", ".mkv", ".webm", ".m4a", ".mp3", ".flv", ".avi", ".mov"}

// ErrNotFound is the hard failure after every strategy comes up empty.
var ErrNotFound = errors.New("Downloaded file not found")

// Resolver searches a download directory with three strategies in
// precedence order: the exact template-derived name, any name containing
// the item id, and any media file modified within Window. The recency
// strategy is racy when two downloads share a directory, which is why
// same-platform requests must be serialized.
type Resolver struct {
	Window time.Duration
	now    func() time.Time
}

func New(window time.Duration) *Resolver {
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &Resolver{Window: window, now: time.Now}
}

// Candidates returns every plausible output file, most-likely-first,
// deduplicated. template is the yt-dlp output template basename (with the
// literal `.%(ext)s` suffix); id is the item id or "unknown".
func (r *Resolver) Candidates(dir, template, id string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Debug().Str("op", "resolver/candidates").Err(err).Msgf("Cannot read directory %s", dir)
		return nil
	}

	var found []string
	seen := make(map[string]bool)
	add := func(name string) {
		path := filepath.Join(dir, name)
		if !seen[path] {
			seen[path] = true
			found = append(found, path)
		}
	}

	// Strategy 1: template-derived names across known extensions.
	base := filepath.Base(template)
	if strings.HasSuffix(base, ".%(ext)s") {
		stem := strings.TrimSuffix(base, ".%(ext)s")
		for _, ext := range MediaExtensions {
			for _, e := range entries {
				if !e.IsDir() && e.Name() == stem+ext {
					add(e.Name())
				}
			}
		}
	}

	// Strategy 2: names containing the item id.
	if id != "" && id != "unknown" {
		for _, e := range entries {
			if e.IsDir() || !hasMediaExt(e.Name()) {
				continue
			}
			if strings.Contains(e.Name(), id) {
				add(e.Name())
			}
		}
	}

	// Strategy 3: any media file modified within the window. Last resort
	// for tools that ignore the requested name entirely.
	cutoff := r.now().Add(-r.Window)
	for _, e := range entries {
		if e.IsDir() || !hasMediaExt(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			add(e.Name())
		}
	}
	return found
}

// Resolve picks the real payload from the candidate set: the largest file
// by size, so small thumbnail or metadata companions are never mistaken for
// the video. Returns ErrNotFound on an empty set.
func (r *Resolver) Resolve(dir, template, id string) (string, int64, error) {
	candidates := r.Candidates(dir, template, id)
	if len(candidates) == 0 {
		return "", 0, ErrNotFound
	}
	var bestPath string
	var bestSize int64 = -1
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.Size() > bestSize {
			bestSize = info.Size()
			bestPath = path
		}
	}
	if bestPath == "" {
		return "", 0, ErrNotFound
	}
	log.Debug().Str("op", "resolver/resolve").Msgf("Selected %s from %d candidates", bestPath, len(candidates))
	return bestPath, bestSize, nil
}

// Newest returns the most recently modified file in dir with the given
// extension, for audio-only downloads where the produced extension is known.
func (r *Resolver) Newest(dir, ext string) (string, int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", 0, ErrNotFound
	}
	var bestPath string
	var bestSize int64
	var bestTime time.Time
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), "."+strings.TrimPrefix(ext, ".")) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if bestPath == "" || info.ModTime().After(bestTime) {
			bestPath = filepath.Join(dir, e.Name())
			bestSize = info.Size()
			bestTime = info.ModTime()
		}
	}
	if bestPath == "" {
		return "", 0, ErrNotFound
	}
	return bestPath, bestSize, nil
}

func hasMediaExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, m := range MediaExtensions {
		if ext == m {
			return true
		}
	}
	return false
}
