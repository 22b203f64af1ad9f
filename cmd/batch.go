package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WanXcodinG/socialgrab/internal/format"
	"github.com/WanXcodinG/socialgrab/internal/output"
	"github.com/WanXcodinG/socialgrab/internal/pipeline"
)

func newBatchCmd() *cobra.Command {
	var quality string

	cmd := &cobra.Command{
		Use:   "batch [URL_FILE] [--quality QUALITY]",
		Short: "Download every URL in a file (one per line)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			tier, ok := format.Parse(quality)
			if !ok {
				output.PrintError(fmt.Sprintf("Invalid quality %q, use one of %v", quality, format.Qualities()))
				os.Exit(1)
			}
			urls, err := pipeline.ReadURLList(args[0])
			if err != nil {
				output.PrintError(err.Error())
				os.Exit(1)
			}
			if len(urls) == 0 {
				output.PrintError("No URLs found in " + args[0])
				os.Exit(1)
			}

			result := newPipeline().Batch(context.Background(), urls, tier)

			// Per-item reporting; a batch always exits 0 so partial
			// failures do not mask the successes.
			output.PrintRule()
			output.PrintHeader("BATCH RESULTS")
			for _, item := range result.Successful {
				output.PrintSuccess(fmt.Sprintf("%s (%s)", item.FilePath, output.FormatBytes(uint64(item.FileSize))))
			}
			for _, item := range result.Failed {
				output.PrintError(fmt.Sprintf("%s: %s", item.URL, item.Err))
			}
			output.PrintInfo(fmt.Sprintf("%d/%d successful, %s total",
				len(result.Successful), result.Total, output.FormatBytes(uint64(result.TotalSize))))
		},
	}

	cmd.Flags().StringVarP(&quality, "quality", "q", "high", "Quality tier for every URL")
	return cmd
}
