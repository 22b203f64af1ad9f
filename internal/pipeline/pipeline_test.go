package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/WanXcodinG/socialgrab/internal/config"
	"github.com/WanXcodinG/socialgrab/internal/format"
	"github.com/WanXcodinG/socialgrab/internal/platform"
	"github.com/WanXcodinG/socialgrab/internal/ytdlp"
)

// step scripts one yt-dlp invocation; effect runs before the result is
// returned, standing in for the files the real tool would write.
type step struct {
	result *ytdlp.Result
	err    error
	effect func()
}

type fakeRunner struct {
	t         *testing.T
	infoJSON  string
	infoFails bool
	downloads []step
	calls     [][]string
}

func (f *fakeRunner) Run(ctx context.Context, args []string) (*ytdlp.Result, error) {
	f.calls = append(f.calls, args)
	if slices.Contains(args, "--dump-json") {
		if f.infoFails {
			return &ytdlp.Result{ExitCode: 1, Stderr: "ERROR: probe failed"}, nil
		}
		return &ytdlp.Result{ExitCode: 0, Stdout: f.infoJSON}, nil
	}
	if len(f.downloads) == 0 {
		f.t.Fatalf("unexpected download invocation: %v", args)
	}
	s := f.downloads[0]
	f.downloads = f.downloads[1:]
	if s.effect != nil {
		s.effect()
	}
	return s.result, s.err
}

// downloadCalls filters out info probes.
func (f *fakeRunner) downloadCalls() [][]string {
	var calls [][]string
	for _, c := range f.calls {
		if !slices.Contains(c, "--dump-json") {
			calls = append(calls, c)
		}
	}
	return calls
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.BaseDir = t.TempDir()
	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	return cfg
}

func writeMedia(t *testing.T, dir, name string, size int) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0644); err != nil {
		t.Fatalf("writeMedia: %v", err)
	}
}

const tiktokInfo = `{"id":"123","title":"My Clip","uploader":"someone","formats":[{"height":720,"acodec":"mp4a","vcodec":"avc1"}]}`

func TestDownloadSuccess(t *testing.T) {
	cfg := testConfig(t)
	tiktokDir := cfg.PlatformDir(platform.TikTok)
	runner := &fakeRunner{
		t:        t,
		infoJSON: tiktokInfo,
		downloads: []step{{
			result: &ytdlp.Result{ExitCode: 0},
			effect: func() { writeMedia(t, tiktokDir, "My-Clip_123.mp4", 4096) },
		}},
	}
	p := NewWithRunner(cfg, runner)

	outcome := p.Download(context.Background(), Request{
		URL:     "https://www.tiktok.com/@a/video/123",
		Quality: format.High,
	})

	if !outcome.Success {
		t.Fatalf("download failed: %s", outcome.Err)
	}
	if outcome.Platform != platform.TikTok {
		t.Errorf("Platform = %s, expected tiktok", outcome.Platform)
	}
	if !strings.Contains(outcome.FilePath, "123") {
		t.Errorf("resolved file should contain the item id: %s", outcome.FilePath)
	}
	if outcome.FileSize != 4096 {
		t.Errorf("FileSize = %d, expected 4096", outcome.FileSize)
	}
	if outcome.Quality != "high" {
		t.Errorf("Quality = %q, expected high", outcome.Quality)
	}

	calls := runner.downloadCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 download invocation, got %d", len(calls))
	}
	args := calls[0]
	if !slices.Contains(args, "User-Agent:"+cfg.UserAgent) {
		t.Errorf("tiktok download should carry the browser user-agent: %v", args)
	}
	if !slices.Contains(args, "--no-playlist") {
		t.Errorf("single download must pass --no-playlist: %v", args)
	}
	// TikTok uses the generic selector table, not the fallback-prone one.
	if !slices.Contains(args, format.Resolve(platform.TikTok, format.High)) {
		t.Errorf("download args missing the negotiated selector: %v", args)
	}
}

func TestDownloadForcedPlatform(t *testing.T) {
	cfg := testConfig(t)
	dir := cfg.PlatformDir(platform.Twitter)
	runner := &fakeRunner{
		t:        t,
		infoJSON: `{"id":"t1","title":"clip"}`,
		downloads: []step{{
			result: &ytdlp.Result{ExitCode: 0},
			effect: func() { writeMedia(t, dir, "clip_t1.mp4", 10) },
		}},
	}
	outcome := NewWithRunner(cfg, runner).Download(context.Background(), Request{
		URL:      "https://example.org/mirror/video",
		Quality:  format.Best,
		Platform: platform.Twitter,
	})
	if !outcome.Success || outcome.Platform != platform.Twitter {
		t.Errorf("forced platform not honored: %+v", outcome)
	}
}

func TestDownloadFallbackRetryOnce(t *testing.T) {
	cfg := testConfig(t)
	fbDir := cfg.PlatformDir(platform.Facebook)
	runner := &fakeRunner{
		t:         t,
		infoFails: true,
		downloads: []step{
			{result: &ytdlp.Result{ExitCode: 1, Stderr: "ERROR: Requested format is not available"}},
			{
				result: &ytdlp.Result{ExitCode: 0},
				effect: func() { writeMedia(t, fbDir, "whatever-the-tool-named-it.mp4", 2048) },
			},
		},
	}
	p := NewWithRunner(cfg, runner)

	outcome := p.Download(context.Background(), Request{
		URL:     "https://www.facebook.com/watch?v=1",
		Quality: format.Best,
	})

	if !outcome.Success {
		t.Fatalf("fallback download failed: %s", outcome.Err)
	}
	if outcome.Quality != "fallback" {
		t.Errorf("Quality = %q, expected fallback", outcome.Quality)
	}
	if outcome.Info.ID != "unknown" {
		t.Errorf("failed probe should leave placeholder metadata, got %+v", outcome.Info)
	}

	calls := runner.downloadCalls()
	if len(calls) != 2 {
		t.Fatalf("expected exactly 2 download attempts, got %d", len(calls))
	}
	if !slices.Contains(calls[1], format.FallbackSelector) {
		t.Errorf("second attempt should use the fallback selector: %v", calls[1])
	}
	if slices.Contains(calls[1], "--write-thumbnail") {
		t.Errorf("fallback attempt should not request sidecars: %v", calls[1])
	}
}

func TestDownloadSecondRejectionIsTerminal(t *testing.T) {
	cfg := testConfig(t)
	rejected := &ytdlp.Result{ExitCode: 1, Stderr: "ERROR: Requested format is not available"}
	runner := &fakeRunner{
		t:         t,
		infoFails: true,
		downloads: []step{{result: rejected}, {result: rejected}},
	}
	outcome := NewWithRunner(cfg, runner).Download(context.Background(), Request{
		URL:     "https://www.instagram.com/reel/x",
		Quality: format.High,
	})

	if outcome.Success {
		t.Fatal("expected terminal failure")
	}
	if outcome.Err != "Fallback download also failed" {
		t.Errorf("Err = %q", outcome.Err)
	}
	if got := len(runner.downloadCalls()); got != 2 {
		t.Errorf("expected the two-attempt ceiling, got %d attempts", got)
	}
}

func TestDownloadNoFallbackForOtherPlatforms(t *testing.T) {
	cfg := testConfig(t)
	runner := &fakeRunner{
		t:         t,
		infoFails: true,
		downloads: []step{
			{result: &ytdlp.Result{ExitCode: 1, Stderr: "ERROR: Requested format is not available"}},
		},
	}
	outcome := NewWithRunner(cfg, runner).Download(context.Background(), Request{
		URL:     "https://youtu.be/abc",
		Quality: format.High,
	})

	if outcome.Success {
		t.Fatal("expected failure")
	}
	if got := len(runner.downloadCalls()); got != 1 {
		t.Errorf("format fallback is reserved for facebook/instagram, got %d attempts", got)
	}
	if !strings.Contains(outcome.Err, "Requested format is not available") {
		t.Errorf("raw stderr should surface to the caller: %q", outcome.Err)
	}
}

func TestDownloadTimeoutNotRetried(t *testing.T) {
	cfg := testConfig(t)
	runner := &fakeRunner{
		t:         t,
		infoFails: true,
		downloads: []step{{err: ytdlp.ErrTimeout}},
	}
	outcome := NewWithRunner(cfg, runner).Download(context.Background(), Request{
		URL:     "https://www.facebook.com/watch?v=1",
		Quality: format.High,
	})

	if outcome.Success {
		t.Fatal("expected failure")
	}
	if outcome.Err != "Download timeout" {
		t.Errorf("Err = %q, expected Download timeout", outcome.Err)
	}
	if got := len(runner.downloadCalls()); got != 1 {
		t.Errorf("timeouts must not be retried, got %d attempts", got)
	}
}

func TestDownloadOutputNotFound(t *testing.T) {
	cfg := testConfig(t)
	runner := &fakeRunner{
		t:         t,
		infoJSON:  tiktokInfo,
		downloads: []step{{result: &ytdlp.Result{ExitCode: 0}}}, // writes nothing
	}
	outcome := NewWithRunner(cfg, runner).Download(context.Background(), Request{
		URL:     "https://vm.tiktok.com/x",
		Quality: format.High,
	})

	if outcome.Success {
		t.Fatal("empty candidate set must not be silent success")
	}
	if outcome.Err != "Downloaded file not found" {
		t.Errorf("Err = %q", outcome.Err)
	}
}

func TestBatchAccumulatesFailures(t *testing.T) {
	cfg := testConfig(t)
	genDir := cfg.PlatformDir(platform.General)
	runner := &fakeRunner{
		t:        t,
		infoJSON: `{"id":"ok1","title":"first"}`,
		downloads: []step{
			{
				result: &ytdlp.Result{ExitCode: 0},
				effect: func() { writeMedia(t, genDir, "first_ok1.mp4", 100) },
			},
			{result: &ytdlp.Result{ExitCode: 1, Stderr: "ERROR: gone"}},
			{err: ytdlp.ErrTimeout},
		},
	}
	p := NewWithRunner(cfg, runner)

	urls := []string{"https://example.org/a", "https://example.org/b", "https://example.org/c"}
	result := p.Batch(context.Background(), urls, format.High)

	if result.Total != 3 {
		t.Errorf("Total = %d", result.Total)
	}
	if len(result.Successful)+len(result.Failed) != result.Total {
		t.Errorf("successful(%d)+failed(%d) != total(%d)",
			len(result.Successful), len(result.Failed), result.Total)
	}
	if len(result.Successful) != 1 || len(result.Failed) != 2 {
		t.Errorf("expected 1 ok / 2 failed, got %d/%d", len(result.Successful), len(result.Failed))
	}
	if result.Failed[1].Err != "Download timeout" {
		t.Errorf("timeout error not captured: %+v", result.Failed)
	}
	if result.TotalSize != 100 {
		t.Errorf("TotalSize = %d", result.TotalSize)
	}
}

func TestDownloadAudio(t *testing.T) {
	cfg := testConfig(t)
	ytDir := cfg.PlatformDir(platform.YouTube)
	runner := &fakeRunner{
		t: t,
		downloads: []step{{
			result: &ytdlp.Result{ExitCode: 0},
			effect: func() { writeMedia(t, ytDir, "song_abc.m4a", 333) },
		}},
	}
	outcome := NewWithRunner(cfg, runner).DownloadAudio(context.Background(), "https://youtu.be/abc", "m4a")

	if !outcome.Success {
		t.Fatalf("audio download failed: %s", outcome.Err)
	}
	if !strings.HasSuffix(outcome.FilePath, ".m4a") {
		t.Errorf("FilePath = %s", outcome.FilePath)
	}
	args := runner.calls[0]
	if !slices.Contains(args, "--extract-audio") {
		t.Errorf("audio args missing --extract-audio: %v", args)
	}
}

func TestDownloadPlaylist(t *testing.T) {
	cfg := testConfig(t)
	ytDir := cfg.PlatformDir(platform.YouTube)
	runner := &fakeRunner{
		t: t,
		downloads: []step{{
			result: &ytdlp.Result{ExitCode: 0},
			effect: func() {
				writeMedia(t, ytDir, "chan_one_a1.mp4", 100)
				writeMedia(t, ytDir, "chan_two_a2.mp4", 200)
			},
		}},
	}
	outcome := NewWithRunner(cfg, runner).DownloadPlaylist(context.Background(),
		"https://www.youtube.com/playlist?list=PL1", format.Medium, 5)

	if !outcome.Success {
		t.Fatalf("playlist download failed: %s", outcome.Err)
	}
	if len(outcome.Files) != 2 || outcome.TotalSize != 300 {
		t.Errorf("Files=%d TotalSize=%d", len(outcome.Files), outcome.TotalSize)
	}
	if !slices.Contains(runner.calls[0], "--playlist-end") {
		t.Errorf("playlist args missing --playlist-end: %v", runner.calls[0])
	}
}

func TestDownloadPlaylistEmpty(t *testing.T) {
	cfg := testConfig(t)
	runner := &fakeRunner{
		t:         t,
		downloads: []step{{result: &ytdlp.Result{ExitCode: 1, Stderr: "nope"}}},
	}
	outcome := NewWithRunner(cfg, runner).DownloadPlaylist(context.Background(),
		"https://www.youtube.com/playlist?list=PL1", format.Medium, 5)
	if outcome.Success || outcome.Err != "No files downloaded" {
		t.Errorf("unexpected outcome: %+v", outcome)
	}
}

func TestBuildFilenameTemplate(t *testing.T) {
	tests := []struct {
		name     string
		custom   string
		title    string
		expected string
	}{
		{"custom wins", "my-name", "ignored", "my-name.%(ext)s"},
		{"title sanitized", "", "Hello, World! (Official)", "Hello-World-Official_%(id)s.%(ext)s"},
		{"empty title", "", "", "video_%(id)s.%(ext)s"},
		{"symbols only", "", "!!!???", "video_%(id)s.%(ext)s"},
		{"whitespace runs", "", "a   b - c", "a-b-c_%(id)s.%(ext)s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildFilenameTemplate(tt.custom, tt.title); got != tt.expected {
				t.Errorf("buildFilenameTemplate(%q, %q) = %q, expected %q", tt.custom, tt.title, got, tt.expected)
			}
		})
	}
}

func TestBuildFilenameTemplateCapsLength(t *testing.T) {
	got := buildFilenameTemplate("", strings.Repeat("a", 80))
	stem := strings.TrimSuffix(got, "_%(id)s.%(ext)s")
	if len(stem) != 50 {
		t.Errorf("stem length = %d, expected 50", len(stem))
	}
}

func TestReadURLList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://example.org/a\n\n  \nhttps://example.org/b\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	urls, err := ReadURLList(path)
	if err != nil {
		t.Fatalf("ReadURLList failed: %v", err)
	}
	if len(urls) != 2 || urls[0] != "https://example.org/a" || urls[1] != "https://example.org/b" {
		t.Errorf("urls = %v", urls)
	}

	if _, err := ReadURLList(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestInfoTimeoutDistinct(t *testing.T) {
	cfg := testConfig(t)
	cfg.InfoTimeout = 50 * time.Millisecond
	runner := &fakeRunner{t: t}
	runner.infoFails = true
	p := NewWithRunner(cfg, runner)
	if _, err := p.Info(context.Background(), "https://example.org/v"); err == nil {
		t.Error("expected probe error")
	}
}
