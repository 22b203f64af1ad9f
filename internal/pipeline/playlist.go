package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/WanXcodinG/socialgrab/internal/format"
	"github.com/WanXcodinG/socialgrab/internal/platform"
	"github.com/WanXcodinG/socialgrab/internal/resolver"
	"github.com/WanXcodinG/socialgrab/internal/ytdlp"
)

// PlaylistOutcome is the terminal result of a playlist download.
type PlaylistOutcome struct {
	Success   bool
	Files     []string
	TotalSize int64
	Platform  platform.Platform
	Err       string
}

// DownloadPlaylist fetches up to maxItems entries of a playlist URL into the
// platform directory. Individual item failures are skipped; the outcome
// reports whatever media landed in the directory.
func (p *Pipeline) DownloadPlaylist(ctx context.Context, url string, quality format.Quality, maxItems int) PlaylistOutcome {
	if maxItems <= 0 {
		maxItems = 10
	}
	plat := platform.Detect(url)
	outDir := p.cfg.PlatformDir(plat)
	outcome := PlaylistOutcome{Platform: plat}

	log.Info().Str("op", "pipeline/playlist").Msgf("Downloading playlist from %s (max %d items)", plat, maxItems)

	selector := format.Resolve(plat, quality)
	outputTemplate := filepath.Join(outDir, "%(uploader)s_%(title)s_%(id)s.%(ext)s")
	args := ytdlp.BuildPlaylistArgs(url, selector, outputTemplate, maxItems)

	runCtx, cancel := context.WithTimeout(ctx, p.cfg.PlaylistTimeout)
	defer cancel()
	if _, err := p.runner.Run(runCtx, args); err != nil {
		outcome.Err = runErrorMessage(err)
		return outcome
	}

	files, total := mediaFilesIn(outDir)
	if len(files) == 0 {
		outcome.Err = "No files downloaded"
		return outcome
	}
	outcome.Success = true
	outcome.Files = files
	outcome.TotalSize = total
	log.Info().Str("op", "pipeline/playlist").Msgf("Playlist download finished: %d files", len(files))
	return outcome
}

func mediaFilesIn(dir string) ([]string, int64) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0
	}
	var files []string
	var total int64
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		match := false
		for _, m := range resolver.MediaExtensions {
			if ext == m {
				match = true
				break
			}
		}
		if !match {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
		total += info.Size()
	}
	return files, total
}
