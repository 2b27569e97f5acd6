package cmd

import (
	"os"

	"github.com/mzahur/vidgrab/internal/scheduler"
	"github.com/mzahur/vidgrab/internal/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newAudioCmd() *cobra.Command {
	var outputPath string
	var outputDir string
	var uploadTarget string
	var awsProfile string

	cmd := &cobra.Command{
		Use:     "audio [URL] [--output OUTPUT_PATH] [--dir DIR]",
		Short:   "Download and extract MP3 audio",
		Aliases: []string{"mp3", "a"},
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if outputDir == "" {
				outputDir = globalConfig.OutputDir
			}
			if outputPath != "" {
				if _, err := os.Stat(outputPath); err == nil {
					outputPath = utils.RenewOutputPath(outputPath)
				}
			}
			job := utils.Job{
				JobType:          "audio",
				URL:              args[0],
				OutputPath:       outputPath,
				OutputDir:        outputDir,
				UploadTarget:     uploadTarget,
				HTTPClientConfig: globalHTTPConfig,
				Metadata:         make(map[string]any),
			}
			if uploadTarget != "" {
				job.Metadata["awsProfile"] = awsProfile
			}
			jobs := []utils.Job{job}
			log.Debug().Str("op", "cmd/audio").Msgf("Starting scheduler with %d jobs", len(jobs))
			if err := scheduler.Run(jobs, workers, historyStore); err != nil {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path")
	cmd.Flags().StringVarP(&outputDir, "dir", "d", "", "Destination folder")
	cmd.Flags().StringVar(&uploadTarget, "upload", "", "Upload finished file to s3://bucket/prefix")
	cmd.Flags().StringVar(&awsProfile, "profile", "default", "AWS profile for --upload")
	return cmd
}
