package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WanXcodinG/socialgrab/internal/config"
	"github.com/WanXcodinG/socialgrab/internal/output"
	"github.com/WanXcodinG/socialgrab/internal/pipeline"
)

var (
	cfgFile   string
	baseDir   string
	userAgent string
	debug     bool

	cfg *config.Config
)

var SocialgrabVersion = "dev"

var rootCmd = &cobra.Command{
	Use:     "socialgrab",
	Short:   "Socialgrab downloads videos from social platforms via yt-dlp",
	Version: SocialgrabVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		output.InitLogger(debug)
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if baseDir != "" {
			cfg.BaseDir = baseDir
		}
		if userAgent != "" {
			cfg.UserAgent = userAgent
		}
		return cfg.EnsureDirs()
	},
}

func Execute() {
	rootCmd.Version = SocialgrabVersion
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newPipeline builds the download pipeline; a missing yt-dlp install is
// fatal here, before any request starts.
func newPipeline() *pipeline.Pipeline {
	p, err := pipeline.New(cfg)
	if err != nil {
		output.PrintError("yt-dlp not found, install with: pip install yt-dlp")
		os.Exit(1)
	}
	return p
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVarP(&baseDir, "dir", "d", "", "Downloads base directory (default: ./downloads)")
	rootCmd.PersistentFlags().StringVarP(&userAgent, "user-agent", "a", "", "User agent for platforms that block the default one")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newGetCmd(),
		newAudioCmd(),
		newPlaylistCmd(),
		newInfoCmd(),
		newFormatsCmd(),
		newBatchCmd(),
		newStatsCmd(),
		newCleanCmd(),
		newArchiveCmd(),
	)
}
