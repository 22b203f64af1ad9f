// Package stats reports on and prunes the downloads directory tree.
package stats

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/WanXcodinG/socialgrab/internal/config"
	"github.com/WanXcodinG/socialgrab/internal/platform"
	"github.com/WanXcodinG/socialgrab/internal/resolver"
)

type FileEntry struct {
	Name     string
	Platform platform.Platform
	Size     int64
	Modified time.Time
}

type PlatformStats struct {
	Files int
	Size  int64
}

type Stats struct {
	TotalFiles int
	TotalSize  int64
	Platforms  map[platform.Platform]PlatformStats
	// Recent holds the newest media files across all platforms, capped at 10.
	Recent []FileEntry
}

// Collect walks every platform directory and tallies media files. Sidecars
// are excluded by extension.
func Collect(cfg *config.Config) *Stats {
	stats := &Stats{Platforms: make(map[platform.Platform]PlatformStats)}
	for _, p := range platform.All() {
		var entries []FileEntry
		var size int64
		root := cfg.PlatformDir(p)
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !isMedia(d.Name()) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			entries = append(entries, FileEntry{
				Name:     d.Name(),
				Platform: p,
				Size:     info.Size(),
				Modified: info.ModTime(),
			})
			size += info.Size()
			return nil
		})
		stats.Platforms[p] = PlatformStats{Files: len(entries), Size: size}
		stats.TotalFiles += len(entries)
		stats.TotalSize += size
		stats.Recent = append(stats.Recent, entries...)
	}
	sort.Slice(stats.Recent, func(i, j int) bool {
		return stats.Recent[i].Modified.After(stats.Recent[j].Modified)
	})
	if len(stats.Recent) > 10 {
		stats.Recent = stats.Recent[:10]
	}
	return stats
}

// Cleanup deletes files older than the cutoff across all platform
// directories, returning the number removed and the bytes freed. Errors on
// individual files are logged and skipped.
func Cleanup(cfg *config.Config, olderThan time.Duration) (int, int64) {
	cutoff := time.Now().Add(-olderThan)
	removed := 0
	var freed int64
	for _, p := range platform.All() {
		root := cfg.PlatformDir(p)
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil || !info.ModTime().Before(cutoff) {
				return nil
			}
			if err := os.Remove(path); err != nil {
				log.Warn().Str("op", "stats/cleanup").Err(err).Msgf("Could not delete %s", path)
				return nil
			}
			removed++
			freed += info.Size()
			return nil
		})
	}
	log.Info().Str("op", "stats/cleanup").Msgf("Cleanup finished: %d files deleted", removed)
	return removed, freed
}

func isMedia(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, m := range resolver.MediaExtensions {
		if ext == m {
			return true
		}
	}
	return false
}
