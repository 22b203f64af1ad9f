package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WanXcodinG/socialgrab/internal/format"
	"github.com/WanXcodinG/socialgrab/internal/output"
	"github.com/WanXcodinG/socialgrab/internal/pipeline"
	"github.com/WanXcodinG/socialgrab/internal/platform"
)

func newGetCmd() *cobra.Command {
	var quality string
	var filename string
	var forcePlatform string

	cmd := &cobra.Command{
		Use:     "get [URL] [--quality QUALITY] [--filename NAME]",
		Short:   "Download a single video",
		Aliases: []string{"dl", "download"},
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			tier, ok := format.Parse(quality)
			if !ok {
				output.PrintError(fmt.Sprintf("Invalid quality %q, use one of %v", quality, format.Qualities()))
				os.Exit(1)
			}
			req := pipeline.Request{
				URL:            args[0],
				Quality:        tier,
				CustomFilename: filename,
			}
			if forcePlatform != "" {
				p, ok := platform.Parse(forcePlatform)
				if !ok {
					output.PrintError(fmt.Sprintf("Unknown platform %q", forcePlatform))
					os.Exit(1)
				}
				req.Platform = p
			}

			outcome := newPipeline().Download(context.Background(), req)
			if !outcome.Success {
				output.PrintError("Download failed: " + outcome.Err)
				os.Exit(1)
			}
			output.PrintSuccess("Download successful")
			output.PrintDetail("File: " + outcome.FilePath)
			output.PrintDetail("Size: " + output.FormatBytes(uint64(outcome.FileSize)))
			output.PrintDetail(fmt.Sprintf("Platform: %s (quality: %s)", outcome.Platform, outcome.Quality))
		},
	}

	cmd.Flags().StringVarP(&quality, "quality", "q", "high", "Quality tier (best, high, medium, low, audio_only)")
	cmd.Flags().StringVarP(&filename, "filename", "f", "", "Custom filename (extension added automatically)")
	cmd.Flags().StringVarP(&forcePlatform, "platform", "p", "", "Force platform detection (youtube, tiktok, facebook, instagram, twitter)")
	return cmd
}
