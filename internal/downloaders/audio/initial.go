package audio

import (
	"fmt"
	"path/filepath"

	"github.com/mzahur/vidgrab/internal/downloaders/video"
	"github.com/mzahur/vidgrab/internal/utils"
	"github.com/mzahur/vidgrab/internal/ytdlp"
)

// AudioDownloader extracts MP3 audio from a video URL via yt-dlp -x.
type AudioDownloader struct{}

func (d *AudioDownloader) ValidateJob(job *utils.Job) error {
	if !video.IsSupportedURL(job.URL) {
		return fmt.Errorf("invalid YouTube URL")
	}
	return nil
}

func (d *AudioDownloader) BuildJob(job *utils.Job) error {
	job.Format = "mp3"

	ytdlpPath, err := ytdlp.EnsureYtdlp(job.HTTPClientConfig)
	if err != nil {
		return fmt.Errorf("error ensuring yt-dlp: %v", err)
	}
	job.Metadata["ytdlpPath"] = ytdlpPath

	ffmpegPath, err := ytdlp.EnsureFFmpeg()
	if err != nil {
		return fmt.Errorf("error ensuring ffmpeg: %v", err)
	}
	job.Metadata["ffmpegPath"] = ffmpegPath

	if job.OutputPath == "" {
		template := "%(title)s.%(ext)s"
		if job.OutputDir != "" {
			template = filepath.Join(job.OutputDir, template)
		}
		job.OutputPath = template
	}
	return nil
}
