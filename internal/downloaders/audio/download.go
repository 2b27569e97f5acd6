package audio

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

func (d *AudioDownloader) Download(job *utils.Job) error {
	ytdlpPath := job.Metadata["ytdlpPath"].(string)
	ffmpegPath := job.Metadata["ffmpegPath"].(string)
	args := []string{
		"--progress",
		"--newline",
		"--no-warnings",
		"-x", // Extract audio
		"--audio-format", "mp3",
		"--audio-quality", "0", // Best quality
		"--ffmpeg-location", ffmpegPath,
		"-o", job.OutputPath,
		"--no-playlist",
		job.URL,
	}
	cmd := exec.Command(ytdlpPath, args...)
	log.Debug().Str("op", "audio/download").Msgf("Executing yt-dlp command: %s", cmd.String())

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
		processStream(stderr, job, false)
	}()
	wg.Wait()
	if err := cmd.Wait(); err != nil {
		log.Error().Str("op", "audio/download").Err(err).Msg("yt-dlp command failed")
		return fmt.Errorf("yt-dlp failed: %v", err)
	}

	if dest, ok := job.Metadata["destination"].(string); ok {
		job.OutputPath = dest
	}
	if info, err := os.Stat(job.OutputPath); err == nil {
		job.Metadata["fileSize"] = info.Size()
	}
	log.Info().Str("op", "audio/download").Msgf("audio extraction completed for %s", job.URL)
	return nil
}

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
