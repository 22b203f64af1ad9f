package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WanXcodinG/socialgrab/internal/archive"
	"github.com/WanXcodinG/socialgrab/internal/output"
	"github.com/WanXcodinG/socialgrab/internal/platform"
)

func newArchiveCmd() *cobra.Command {
	var bucket string
	var prefix string
	var profile string

	cmd := &cobra.Command{
		Use:   "archive [PLATFORM] --bucket BUCKET [--prefix PREFIX]",
		Short: "Upload a platform's downloads to an S3 bucket",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			dir := cfg.BaseDir
			if len(args) == 1 {
				p, ok := platform.Parse(args[0])
				if !ok {
					output.PrintError(fmt.Sprintf("Unknown platform %q", args[0]))
					os.Exit(1)
				}
				dir = cfg.PlatformDir(p)
			}
			ctx := context.Background()
			uploader, err := archive.NewUploader(ctx, profile)
			if err != nil {
				output.PrintError(err.Error())
				os.Exit(1)
			}
			count, total, err := uploader.UploadDir(ctx, dir, bucket, prefix)
			if err != nil {
				output.PrintError(fmt.Sprintf("Archive failed after %d files: %v", count, err))
				os.Exit(1)
			}
			output.PrintSuccess(fmt.Sprintf("Archived %d files (%s) to s3://%s",
				count, output.FormatBytes(uint64(total)), bucket))
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Destination S3 bucket")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix inside the bucket")
	cmd.Flags().StringVar(&profile, "profile", "default", "AWS shared config profile")
	cmd.MarkFlagRequired("bucket")
	return cmd
}
