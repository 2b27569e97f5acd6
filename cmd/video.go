package cmd

import (
	"os"
	"strings"

	"github.com/mzahur/vidgrab/internal/scheduler"
	"github.com/mzahur/vidgrab/internal/utils"
	"github.com/mzahur/vidgrab/internal/ytdlp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newVideoCmd() *cobra.Command {
	var outputPath string
	var outputDir string
	var format string
	var uploadTarget string
	var awsProfile string

	cmd := &cobra.Command{
		Use:     "video [URL] [--output OUTPUT_PATH] [--dir DIR] [--format FORMAT]",
		Short:   "Download a video, merging best video and audio streams",
		Aliases: []string{"yt", "v"},
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if format == "" {
				format = globalConfig.Format
			}
			if outputDir == "" {
				outputDir = globalConfig.OutputDir
			}
			if outputPath != "" {
				if _, err := os.Stat(outputPath); err == nil {
					outputPath = utils.RenewOutputPath(outputPath)
				}
			}
			job := utils.Job{
				JobType:          "video",
				URL:              args[0],
				OutputPath:       outputPath,
				OutputDir:        outputDir,
				Format:           format,
				UploadTarget:     uploadTarget,
				HTTPClientConfig: globalHTTPConfig,
				Metadata:         make(map[string]any),
			}
			if uploadTarget != "" {
				job.Metadata["awsProfile"] = awsProfile
			}
			jobs := []utils.Job{job}
			log.Debug().Str("op", "cmd/video").Msgf("Starting scheduler with %d jobs", len(jobs))
			if err := scheduler.Run(jobs, workers, historyStore); err != nil {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path")
	cmd.Flags().StringVarP(&outputDir, "dir", "d", "", "Destination folder")
	cmd.Flags().StringVar(&format, "format", "", "Video format ("+strings.Join(ytdlp.FormatNames(), ", ")+")")
	cmd.Flags().StringVar(&uploadTarget, "upload", "", "Upload finished file to s3://bucket/prefix")
	cmd.Flags().StringVar(&awsProfile, "profile", "default", "AWS profile for --upload")
	return cmd
}
