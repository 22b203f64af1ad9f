package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WanXcodinG/socialgrab/internal/output"
	"github.com/WanXcodinG/socialgrab/internal/platform"
	"github.com/WanXcodinG/socialgrab/internal/stats"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show download statistics per platform",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := stats.Collect(cfg)
			output.PrintHeader("DOWNLOAD STATISTICS")
			output.PrintInfo(fmt.Sprintf("Total: %d files, %s", s.TotalFiles, output.FormatBytes(uint64(s.TotalSize))))
			for _, p := range platform.All() {
				ps := s.Platforms[p]
				output.PrintDetail(fmt.Sprintf("%s: %d files (%s)", p, ps.Files, output.FormatBytes(uint64(ps.Size))))
			}
			if len(s.Recent) > 0 {
				output.PrintHeader("RECENT DOWNLOADS")
				for _, f := range s.Recent {
					output.PrintDetail(fmt.Sprintf("%s (%s) %s", f.Name, f.Platform, output.FormatBytes(uint64(f.Size))))
				}
			}
		},
	}
	return cmd
}
