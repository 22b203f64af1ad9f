package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WanXcodinG/socialgrab/internal/output"
	"github.com/WanXcodinG/socialgrab/internal/platform"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [URL]",
		Short: "Show video metadata without downloading",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			info, err := newPipeline().Info(context.Background(), args[0])
			if err != nil {
				output.PrintError(fmt.Sprintf("Error getting video info: %v", err))
				os.Exit(1)
			}
			output.PrintHeader("VIDEO INFO")
			output.PrintDetail("Title: " + info.Title)
			output.PrintDetail("Uploader: " + info.Uploader)
			output.PrintDetail(fmt.Sprintf("Duration: %ds", info.Duration))
			output.PrintDetail(fmt.Sprintf("Views: %d", info.ViewCount))
			output.PrintDetail(fmt.Sprintf("Platform: %s", platform.Detect(args[0])))
			output.PrintDetail("Best quality: " + info.BestQuality)
			output.PrintDetail(fmt.Sprintf("Formats available: %d", info.FormatCount))
			output.PrintDetail(fmt.Sprintf("Has audio: %v, has video: %v", info.HasAudio, info.HasVideo))
			if info.Description != "" {
				output.PrintDetail("Description: " + info.Description)
			}
		},
	}
	return cmd
}
