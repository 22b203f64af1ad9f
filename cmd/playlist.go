package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/WanXcodinG/socialgrab/internal/format"
	"github.com/WanXcodinG/socialgrab/internal/output"
)

func newPlaylistCmd() *cobra.Command {
	var quality string
	var maxItems int

	cmd := &cobra.Command{
		Use:   "playlist [URL] [--max N]",
		Short: "Download a playlist (capped at --max items)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			tier, ok := format.Parse(quality)
			if !ok {
				output.PrintError(fmt.Sprintf("Invalid quality %q, use one of %v", quality, format.Qualities()))
				os.Exit(1)
			}
			outcome := newPipeline().DownloadPlaylist(context.Background(), args[0], tier, maxItems)
			if !outcome.Success {
				output.PrintError("Playlist download failed: " + outcome.Err)
				os.Exit(1)
			}
			output.PrintSuccess(fmt.Sprintf("Playlist download finished: %d files (%s)",
				len(outcome.Files), output.FormatBytes(uint64(outcome.TotalSize))))
			for _, f := range outcome.Files {
				output.PrintDetail(filepath.Base(f))
			}
		},
	}

	cmd.Flags().StringVarP(&quality, "quality", "q", "high", "Quality tier (best, high, medium, low)")
	cmd.Flags().IntVarP(&maxItems, "max", "m", 10, "Maximum number of items to download")
	return cmd
}
