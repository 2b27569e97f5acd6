package ytdlp

import (
	"regexp"
	"strconv"
	"strings"
)

// Progress is one parsed `[download]` line from yt-dlp's --newline output.
type Progress struct {
	Percent   float64
	TotalSize string
	Speed     string
	ETA       string
}

// yt-dlp progress line, e.g.
// [download]  42.5% of ~ 123.45MiB at 1.23MiB/s ETA 00:42
var progressRegex = regexp.MustCompile(`\[download\]\s+(\d+\.?\d*)%\s+of\s+~?\s*(\S+)\s+at\s+(\S+)\s+ETA\s+(\S+)`)

// Terminal form once the fragment is done:
// [download] 100% of 10.00MiB in 00:00:05 at 2.00MiB/s
var doneRegex = regexp.MustCompile(`\[download\]\s+(\d+\.?\d*)%\s+of\s+(\S+)\s+in\s+(\S+)`)

var destinationRegex = regexp.MustCompile(`\[(?:download|ExtractAudio)\]\s+Destination:\s+(.+)`)

var mergeRegex = regexp.MustCompile(`\[Merger\]\s+Merging formats into\s+"(.+)"`)

// ParseProgress extracts percent/size/speed/ETA from a yt-dlp output line.
// Returns false for lines that are not progress updates.
func ParseProgress(line string) (Progress, bool) {
	if m := progressRegex.FindStringSubmatch(line); m != nil {
		percent, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Progress{}, false
		}
		eta := m[4]
		if eta == "Unknown" {
			eta = "—"
		}
		return Progress{
			Percent:   clampPercent(percent),
			TotalSize: m[2],
			Speed:     m[3],
			ETA:       eta,
		}, true
	}
	if m := doneRegex.FindStringSubmatch(line); m != nil {
		percent, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Progress{}, false
		}
		return Progress{
			Percent:   clampPercent(percent),
			TotalSize: m[2],
			ETA:       "—",
		}, true
	}
	return Progress{}, false
}

// ParseDestination extracts the output file path from `Destination:` and
// `[Merger]` lines. The last one seen wins, that is the merged container.
func ParseDestination(line string) (string, bool) {
	if m := mergeRegex.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	if m := destinationRegex.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
