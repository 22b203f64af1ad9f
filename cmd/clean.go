package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/WanXcodinG/socialgrab/internal/output"
	"github.com/WanXcodinG/socialgrab/internal/stats"
)

func newCleanCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "clean [--days N]",
		Short: "Delete downloads older than N days",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			removed, freed := stats.Cleanup(cfg, time.Duration(days)*24*time.Hour)
			output.PrintSuccess(fmt.Sprintf("Cleanup finished: %d files deleted, %s freed",
				removed, output.FormatBytes(uint64(freed))))
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Delete files older than this many days")
	return cmd
}
