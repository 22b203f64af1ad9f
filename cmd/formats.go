package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WanXcodinG/socialgrab/internal/output"
)

func newFormatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formats [URL]",
		Short: "List every format the extractor offers for a URL",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			formats, err := newPipeline().ListFormats(context.Background(), args[0])
			if err != nil {
				output.PrintError(fmt.Sprintf("Error listing formats: %v", err))
				os.Exit(1)
			}
			fmt.Print(formats)
		},
	}
	return cmd
}
