package video

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/mzahur/vidgrab/internal/utils"
	"github.com/mzahur/vidgrab/internal/ytdlp"
	"github.com/rs/zerolog/log"
)

func (d *VideoDownloader) Download(job *utils.Job) error {
	ytdlpPath := job.Metadata["ytdlpPath"].(string)
	selector := job.Metadata["formatSelector"].(string)
	ffmpegPath := job.Metadata["ffmpegPath"].(string)
	args := []string{
		"--progress",
		"--newline",
		"--no-warnings",
		"-f", selector,
		"--merge-output-format", "mp4",
		"--ffmpeg-location", ffmpegPath,
		"-o", job.OutputPath,
		"--no-playlist",
		job.URL,
	}
	cmd := exec.Command(ytdlpPath, args...)
	log.Debug().Str("op", "video/download").Msgf("Executing yt-dlp command: %s", cmd.String())

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("error creating stdout pipe: %v", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("error creating stderr pipe: %v", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("error starting yt-dlp: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		processStream(stdout, job, true)
	}()
	go func() {
		defer wg.Done()
		// Progress and destination lines only appear on stdout
		processStream(stderr, job, false)
	}()
	wg.Wait()
	if err := cmd.Wait(); err != nil {
		log.Error().Str("op", "video/download").Err(err).Msg("yt-dlp command failed")
		return fmt.Errorf("yt-dlp failed: %v", err)
	}

	recordOutputFile(job)
	log.Info().Str("op", "video/download").Msgf("yt-dlp download completed for %s", job.URL)
	return nil
}

// processStream forwards yt-dlp output lines, splitting parsed progress
// updates from plain stream lines.
func processStream(reader io.Reader, job *utils.Job, parse bool) {
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if parse {
			if dest, ok := ytdlp.ParseDestination(line); ok {
				job.Metadata["destination"] = dest
			}
			if progress, ok := ytdlp.ParseProgress(line); ok {
				if job.ProgressFunc != nil {
					job.ProgressFunc(progress.Percent, progress.Speed, progress.ETA)
				}
				continue
			}
		}
		if job.StreamFunc != nil {
			job.StreamFunc(line)
		}
	}
}

// recordOutputFile resolves the template output path to the file yt-dlp
// actually wrote, and stats it for the history record.
func recordOutputFile(job *utils.Job) {
	if dest, ok := job.Metadata["destination"].(string); ok {
		job.OutputPath = dest
	}
	if info, err := os.Stat(job.OutputPath); err == nil {
		job.Metadata["fileSize"] = info.Size()
	}
}
