package ytdlp

import (
	"strconv"

	"github.com/WanXcodinG/socialgrab/internal/platform"
)

// DownloadArgs describes one single-item download invocation.
type DownloadArgs struct {
	URL            string
	Selector       string
	OutputTemplate string
	Platform       platform.Platform
	UserAgent      string
}

// BuildDownloadArgs constructs the yt-dlp argument list for a single video.
// --no-playlist guards against URLs that silently expand into playlists;
// metadata and thumbnail sidecars are always requested. Platform-specific
// headers and extractor args are appended last.
func BuildDownloadArgs(a DownloadArgs) []string {
	args := []string{
		"--format", a.Selector,
		"--output", a.OutputTemplate,
		"--no-playlist",
		"--write-info-json",
		"--write-thumbnail",
		"--ignore-errors",
		a.URL,
	}

	switch a.Platform {
	case platform.TikTok:
		args = append(args, "--add-header", "User-Agent:"+a.UserAgent)
	case platform.Facebook:
		args = append(args,
			"--add-header", "User-Agent:"+a.UserAgent,
			"--extractor-args", "facebook:tab_type=videos")
	case platform.Instagram:
		// Instagram frequently requires a logged-in session.
		args = append(args, "--cookies-from-browser", "chrome")
	}
	return args
}

// BuildFallbackArgs is the degraded second attempt after a format rejection:
// permissive selector, no sidecars, and only the Facebook header survives.
func BuildFallbackArgs(url, selector, outputTemplate string, p platform.Platform, userAgent string) []string {
	args := []string{
		"--format", selector,
		"--output", outputTemplate,
		"--no-playlist",
		"--ignore-errors",
		url,
	}
	if p == platform.Facebook {
		args = append(args, "--add-header", "User-Agent:"+userAgent)
	}
	return args
}

// BuildPlaylistArgs downloads up to maxItems entries of a playlist. Items
// that fail are skipped rather than aborting the rest.
func BuildPlaylistArgs(url, selector, outputTemplate string, maxItems int) []string {
	return []string{
		"--format", selector,
		"--output", outputTemplate,
		"--playlist-end", strconv.Itoa(maxItems),
		"--write-info-json",
		"--ignore-errors",
		url,
	}
}

// BuildAudioArgs extracts audio at best quality in the requested format.
func BuildAudioArgs(url, audioFormat, outputTemplate string) []string {
	return []string{
		"--extract-audio",
		"--audio-format", audioFormat,
		"--audio-quality", "0",
		"--output", outputTemplate,
		"--write-info-json",
		url,
	}
}

// BuildInfoArgs probes metadata without downloading.
func BuildInfoArgs(url string) []string {
	return []string{"--dump-json", "--no-download", url}
}

// BuildListFormatsArgs lists every format the extractor offers.
func BuildListFormatsArgs(url string) []string {
	return []string{"--list-formats", url}
}
