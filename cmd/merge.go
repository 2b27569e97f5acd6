package cmd

import (
	"os"

	"github.com/mzahur/vidgrab/internal/ffmpeg"
	"github.com/mzahur/vidgrab/internal/output"
	"github.com/mzahur/vidgrab/internal/utils"
	"github.com/mzahur/vidgrab/internal/ytdlp"
	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "merge [VIDEO_FILE] [AUDIO_FILE] [--output OUTPUT_PATH]",
		Short: "Mux separately fetched video and audio streams into one container",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			videoPath, audioPath := args[0], args[1]
			ffmpegPath, err := ytdlp.EnsureFFmpeg()
			if err != nil {
				output.PrintError("ffmpeg not found, install it to merge streams")
				os.Exit(1)
			}
			if outputPath == "" {
				outputPath = ffmpeg.DefaultOutputPath(videoPath)
			}
			if _, err := os.Stat(outputPath); err == nil {
				outputPath = utils.RenewOutputPath(outputPath)
			}
			merger := ffmpeg.NewMerger(ffmpegPath)
			if err := merger.Merge(videoPath, audioPath, outputPath, output.PrintDetail); err != nil {
				output.PrintError("Merge failed: " + err.Error())
				os.Exit(1)
			}
			output.PrintSuccess("Merged into " + outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: video name with .mp4)")
	return cmd
}
