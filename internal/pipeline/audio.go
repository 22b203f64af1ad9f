package pipeline

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/WanXcodinG/socialgrab/internal/platform"
	"github.com/WanXcodinG/socialgrab/internal/ytdlp"
)

// DownloadAudio extracts the audio track only, at best quality, in the
// requested container format.
func (p *Pipeline) DownloadAudio(ctx context.Context, url, audioFormat string) Outcome {
	if audioFormat == "" {
		audioFormat = "m4a"
	}
	plat := platform.Detect(url)
	outDir := p.cfg.PlatformDir(plat)
	outcome := Outcome{Platform: plat, Quality: "audio_" + audioFormat}

	log.Info().Str("op", "pipeline/audio").Msgf("Downloading audio only from %s", plat)

	outputTemplate := filepath.Join(outDir, "%(title)s_%(id)s.%(ext)s")
	args := ytdlp.BuildAudioArgs(url, audioFormat, outputTemplate)

	runCtx, cancel := context.WithTimeout(ctx, p.cfg.AudioTimeout)
	defer cancel()
	result, err := p.runner.Run(runCtx, args)
	if err != nil {
		outcome.Err = runErrorMessage(err)
		return outcome
	}
	if result.ExitCode != 0 {
		if result.Stderr != "" {
			outcome.Err = result.Stderr
		} else {
			outcome.Err = "Audio download failed"
		}
		return outcome
	}

	// The produced extension is known here, so newest-by-mtime is enough.
	path, size, err := p.resolver.Newest(outDir, audioFormat)
	if err != nil {
		outcome.Err = "Audio file not found"
		return outcome
	}
	outcome.Success = true
	outcome.FilePath = path
	outcome.FileSize = size
	log.Info().Str("op", "pipeline/audio").Msgf("Audio download complete: %s", filepath.Base(path))
	return outcome
}
