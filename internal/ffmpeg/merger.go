package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Merger muxes separately fetched video and audio streams into one container
// with stream copy. Re-encoding is yt-dlp's problem, not ours.
type Merger struct {
	FFmpegPath string
}

func NewMerger(ffmpegPath string) *Merger {
	return &Merger{FFmpegPath: ffmpegPath}
}

// MergeArgs builds the ffmpeg argument list for muxing videoPath+audioPath
// into outputPath.
func MergeArgs(videoPath, audioPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-c", "copy",
		"-movflags", "+faststart",
		outputPath,
	}
}

// Merge runs ffmpeg to mux the two streams. streamFunc, when set, receives
// ffmpeg's stderr lines for the live display.
func (m *Merger) Merge(videoPath, audioPath, outputPath string, streamFunc func(string)) error {
	for _, p := range []string{videoPath, audioPath} {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("input not found: %s", p)
		}
	}
	args := MergeArgs(videoPath, audioPath, outputPath)
	cmd := exec.Command(m.FFmpegPath, args...)
	log.Debug().Str("op", "ffmpeg/merge").Msgf("Executing ffmpeg command: %s", cmd.String())
	out, err := cmd.CombinedOutput()
	if err != nil {
		if streamFunc != nil {
			for _, line := range lastLines(string(out), 5) {
				streamFunc(line)
			}
		}
		return fmt.Errorf("ffmpeg failed: %v", err)
	}
	return nil
}

// DefaultOutputPath derives the merged container path from the video stream
// path: same directory and stem, .mp4 extension.
func DefaultOutputPath(videoPath string) string {
	dir := filepath.Dir(videoPath)
	base := filepath.Base(videoPath)
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]
	// Strip yt-dlp's format suffix (e.g. name.f137) when present
	if i := strings.LastIndex(stem, ".f"); i > 0 && isDigits(stem[i+2:]) {
		stem = stem[:i]
	}
	return filepath.Join(dir, stem+".mp4")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func lastLines(s string, n int) []string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
