// Package pipeline orchestrates the download dispatch: platform detection,
// format negotiation, yt-dlp execution, output resolution, and the one-shot
// format fallback.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/WanXcodinG/socialgrab/internal/config"
	"github.com/WanXcodinG/socialgrab/internal/format"
	"github.com/WanXcodinG/socialgrab/internal/platform"
	"github.com/WanXcodinG/socialgrab/internal/resolver"
	"github.com/WanXcodinG/socialgrab/internal/ytdlp"
)

// Request is one download invocation. Immutable once constructed.
type Request struct {
	URL            string
	Quality        format.Quality
	CustomFilename string
	// Platform forces classification when set; otherwise derived from URL.
	Platform platform.Platform
}

// Outcome is the terminal result of a Request. Per-request failures are
// captured here rather than raised, so batch processing continues past them.
type Outcome struct {
	ID       string
	Success  bool
	FilePath string
	FileSize int64
	Platform platform.Platform
	Quality  string
	Info     *ytdlp.VideoInfo
	Err      string
}

type Pipeline struct {
	cfg      *config.Config
	runner   ytdlp.Runner
	resolver *resolver.Resolver
}

// New locates yt-dlp and builds the pipeline. A missing tool is fatal here,
// at startup, not per request.
func New(cfg *config.Config) (*Pipeline, error) {
	tool, err := ytdlp.Locate(cfg.YtdlpPath)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("op", "pipeline/new").Msgf("Using downloader: %s", tool)
	return NewWithRunner(cfg, tool), nil
}

// NewWithRunner wires an explicit runner, used by tests to fake yt-dlp.
func NewWithRunner(cfg *config.Config, runner ytdlp.Runner) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		runner:   runner,
		resolver: resolver.New(cfg.RecencyWindow),
	}
}

// Download runs one request to completion: PENDING -> EXECUTING ->
// {SUCCEEDED | FORMAT_REJECTED -> one fallback attempt | FAILED}. Neither
// state is re-entered more than once.
func (p *Pipeline) Download(ctx context.Context, req Request) Outcome {
	id := uuid.New().String()[:8]
	plat := req.Platform
	if plat == "" {
		plat = platform.Detect(req.URL)
	}
	outcome := Outcome{ID: id, Platform: plat, Quality: string(req.Quality)}
	outDir := p.cfg.PlatformDir(plat)

	log.Info().Str("op", "pipeline/download").Str("id", id).Msgf("Downloading from %s with quality %s", plat, req.Quality)

	info := p.probeInfo(ctx, req.URL)
	outcome.Info = info

	template := buildFilenameTemplate(req.CustomFilename, info.Title)
	outputTemplate := filepath.Join(outDir, template)
	selector := format.Resolve(plat, req.Quality)

	args := ytdlp.BuildDownloadArgs(ytdlp.DownloadArgs{
		URL:            req.URL,
		Selector:       selector,
		OutputTemplate: outputTemplate,
		Platform:       plat,
		UserAgent:      p.cfg.UserAgent,
	})

	runCtx, cancel := context.WithTimeout(ctx, p.cfg.DownloadTimeout)
	defer cancel()
	result, err := p.runner.Run(runCtx, args)
	if err != nil {
		outcome.Err = runErrorMessage(err)
		return outcome
	}

	if result.ExitCode == 0 {
		return p.finish(outcome, outDir, template, info.ID)
	}

	stderr := result.Stderr
	if stderr == "" {
		stderr = "Download failed"
	}
	log.Error().Str("op", "pipeline/download").Str("id", id).Msgf("Download failed: %s", firstLine(stderr))

	// Facebook and Instagram extractors reject strict selectors often
	// enough to warrant exactly one permissive retry. Anything else is
	// terminal on the first failure.
	kind := ytdlp.ClassifyStderr(stderr)
	if kind == ytdlp.ErrKindFormatRejected && (plat == platform.Facebook || plat == platform.Instagram) {
		return p.downloadFallback(ctx, req.URL, outputTemplate, template, outcome)
	}

	outcome.Err = stderr
	return outcome
}

// downloadFallback is the single degraded retry after a format rejection.
// Its own failure is terminal; there is no third attempt.
func (p *Pipeline) downloadFallback(ctx context.Context, url, outputTemplate, template string, outcome Outcome) Outcome {
	log.Warn().Str("op", "pipeline/fallback").Str("id", outcome.ID).Msgf("Retrying with fallback selector %s", format.FallbackSelector)

	args := ytdlp.BuildFallbackArgs(url, format.FallbackSelector, outputTemplate, outcome.Platform, p.cfg.UserAgent)
	runCtx, cancel := context.WithTimeout(ctx, p.cfg.DownloadTimeout)
	defer cancel()
	result, err := p.runner.Run(runCtx, args)
	if err != nil {
		outcome.Err = runErrorMessage(err)
		return outcome
	}
	if result.ExitCode != 0 {
		outcome.Err = "Fallback download also failed"
		return outcome
	}
	outcome.Quality = "fallback"
	return p.finish(outcome, filepath.Dir(outputTemplate), template, outcome.Info.ID)
}

// finish resolves the produced file. An empty candidate set is a hard
// failure, never silent success.
func (p *Pipeline) finish(outcome Outcome, outDir, template, itemID string) Outcome {
	path, size, err := p.resolver.Resolve(outDir, template, itemID)
	if err != nil {
		outcome.Err = err.Error()
		return outcome
	}
	outcome.Success = true
	outcome.FilePath = path
	outcome.FileSize = size
	log.Info().Str("op", "pipeline/download").Str("id", outcome.ID).Msgf("Download complete: %s", filepath.Base(path))
	return outcome
}

// probeInfo fetches metadata before downloading. Failure is a warning, not
// an abort: the download proceeds with placeholder metadata and the
// resolver leans on its non-id strategies.
func (p *Pipeline) probeInfo(ctx context.Context, url string) *ytdlp.VideoInfo {
	info, err := p.Info(ctx, url)
	if err != nil {
		log.Warn().Str("op", "pipeline/info").Msgf("Could not get video info: %v", err)
		return ytdlp.PlaceholderInfo()
	}
	return info
}

// Info probes video metadata without downloading.
func (p *Pipeline) Info(ctx context.Context, url string) (*ytdlp.VideoInfo, error) {
	runCtx, cancel := context.WithTimeout(ctx, p.cfg.InfoTimeout)
	defer cancel()
	result, err := p.runner.Run(runCtx, ytdlp.BuildInfoArgs(url))
	if err != nil {
		if errors.Is(err, ytdlp.ErrTimeout) {
			return nil, fmt.Errorf("timeout getting video info")
		}
		return nil, err
	}
	if result.ExitCode != 0 {
		msg := firstLine(result.Stderr)
		if msg == "" {
			msg = "Unknown error"
		}
		return nil, fmt.Errorf("%s", msg)
	}
	return ytdlp.ParseInfo([]byte(result.Stdout))
}

// ListFormats returns yt-dlp's format table for a URL verbatim.
func (p *Pipeline) ListFormats(ctx context.Context, url string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, p.cfg.InfoTimeout)
	defer cancel()
	result, err := p.runner.Run(runCtx, ytdlp.BuildListFormatsArgs(url))
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", fmt.Errorf("%s", firstLine(result.Stderr))
	}
	return result.Stdout, nil
}

func runErrorMessage(err error) string {
	if errors.Is(err, ytdlp.ErrTimeout) {
		return "Download timeout"
	}
	return err.Error()
}

var (
	nonWordChars = regexp.MustCompile(`[^\w\s-]`)
	dashRuns     = regexp.MustCompile(`[-\s]+`)
)

// buildFilenameTemplate produces the yt-dlp output template basename. A
// custom filename is used as-is; otherwise the title is sanitized and the
// item id appended so the resolver's id strategy can find the file.
func buildFilenameTemplate(custom, title string) string {
	if custom != "" {
		return custom + ".%(ext)s"
	}
	safe := nonWordChars.ReplaceAllString(title, "")
	safe = strings.TrimSpace(safe)
	safe = dashRuns.ReplaceAllString(safe, "-")
	if runes := []rune(safe); len(runes) > 50 {
		safe = string(runes[:50])
	}
	if safe == "" {
		safe = "video"
	}
	return safe + "_%(id)s.%(ext)s"
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
