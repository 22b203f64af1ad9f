// Package ytdlp wraps invocation of the external yt-dlp tool.
package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
)

// Tool is a located yt-dlp installation: either the standalone binary or a
// python interpreter invoking the yt_dlp module.
type Tool struct {
	path     string
	baseArgs []string
}

// Result carries the raw outcome of one subprocess invocation. A non-zero
// exit is not an error at this layer; the caller decides whether it is
// retryable.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner abstracts subprocess execution so the pipeline can be exercised
// without a real yt-dlp install.
type Runner interface {
	Run(ctx context.Context, args []string) (*Result, error)
}

// ErrTimeout marks a subprocess killed by its deadline. Timeouts are
// terminal, never retried.
var ErrTimeout = errors.New("Download timeout")

// ErrToolUnavailable is fatal at startup, not per request.
var ErrToolUnavailable = errors.New("yt-dlp not available")

// Locate finds yt-dlp, preferring an explicit override, then PATH, then a
// binary next to our own executable, then a python module install.
func Locate(override string) (*Tool, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrToolUnavailable, override)
		}
		return &Tool{path: override}, nil
	}
	if path, err := exec.LookPath("yt-dlp"); err == nil {
		log.Debug().Str("op", "ytdlp/locate").Msgf("Found yt-dlp in PATH: %s", path)
		return &Tool{path: path}, nil
	}
	if execPath, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(execPath), "yt-dlp")
		if runtime.GOOS == "windows" {
			sibling += ".exe"
		}
		if _, err := os.Stat(sibling); err == nil {
			log.Debug().Str("op", "ytdlp/locate").Msgf("Found yt-dlp next to executable: %s", sibling)
			return &Tool{path: sibling}, nil
		}
	}
	// Fall back to the pip-installed module.
	for _, python := range []string{"python3", "python"} {
		path, err := exec.LookPath(python)
		if err != nil {
			continue
		}
		probe := exec.Command(path, "-m", "yt_dlp", "--version")
		if err := probe.Run(); err == nil {
			log.Debug().Str("op", "ytdlp/locate").Msgf("Using yt_dlp module via %s", path)
			return &Tool{path: path, baseArgs: []string{"-m", "yt_dlp"}}, nil
		}
	}
	return nil, ErrToolUnavailable
}

func (t *Tool) String() string {
	if len(t.baseArgs) > 0 {
		return t.path + " -m yt_dlp"
	}
	return t.path
}

// Run executes yt-dlp with the given arguments, capturing both streams. The
// context deadline is the hard wall-clock bound per invocation; exceeding it
// returns ErrTimeout.
func (t *Tool) Run(ctx context.Context, args []string) (*Result, error) {
	full := append(append([]string{}, t.baseArgs...), args...)
	cmd := exec.CommandContext(ctx, t.path, full...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	log.Debug().Str("op", "ytdlp/run").Msgf("Executing: %s", cmd.String())

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, ErrTimeout
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("error running yt-dlp: %v", err)
		}
	}
	return &Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}
