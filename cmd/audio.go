package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WanXcodinG/socialgrab/internal/output"
)

func newAudioCmd() *cobra.Command {
	var audioFormat string

	cmd := &cobra.Command{
		Use:   "audio [URL] [--format FORMAT]",
		Short: "Download the audio track only",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			switch audioFormat {
			case "mp3", "m4a", "wav":
			default:
				output.PrintError(fmt.Sprintf("Invalid audio format %q, use mp3, m4a, or wav", audioFormat))
				os.Exit(1)
			}
			outcome := newPipeline().DownloadAudio(context.Background(), args[0], audioFormat)
			if !outcome.Success {
				output.PrintError("Audio download failed: " + outcome.Err)
				os.Exit(1)
			}
			output.PrintSuccess("Audio download successful")
			output.PrintDetail("File: " + outcome.FilePath)
			output.PrintDetail("Size: " + output.FormatBytes(uint64(outcome.FileSize)))
		},
	}

	cmd.Flags().StringVarP(&audioFormat, "format", "f", "m4a", "Audio format (mp3, m4a, wav)")
	return cmd
}
