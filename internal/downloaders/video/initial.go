package video

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mzahur/vidgrab/internal/utils"
	"github.com/mzahur/vidgrab/internal/ytdlp"
)

type VideoDownloader struct{}

func (d *VideoDownloader) ValidateJob(job *utils.Job) error {
	if !IsSupportedURL(job.URL) {
		return fmt.Errorf("invalid YouTube URL")
	}
	if job.Format != "" && !ytdlp.KnownFormat(job.Format) {
		return fmt.Errorf("unsupported format: %s", job.Format)
	}
	return nil
}

func (d *VideoDownloader) BuildJob(job *utils.Job) error {
	if job.Format == "" {
		job.Format = "best"
	}
	selector, err := ytdlp.ResolveFormat(job.Format)
	if err != nil {
		return err
	}
	job.Metadata["formatSelector"] = selector

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
	ffprobePath, err := ytdlp.EnsureFFprobe()
	if err != nil {
		return fmt.Errorf("error ensuring ffprobe: %v", err)
	}
	job.Metadata["ffprobePath"] = ffprobePath

	if job.OutputPath == "" {
		template := "%(title)s.%(ext)s"
		if job.OutputDir != "" {
			template = filepath.Join(job.OutputDir, template)
		}
		job.OutputPath = template
	}
	return nil
}

// IsSupportedURL reports whether url points at a video yt-dlp can fetch from
// YouTube.
func IsSupportedURL(url string) bool {
	return strings.Contains(url, "youtube.com/watch") ||
		strings.Contains(url, "youtube.com/shorts/") ||
		strings.Contains(url, "youtu.be/") ||
		strings.Contains(url, "music.youtube.com")
}
