package ytdlp

import (
	"fmt"
	"sort"
)

// Named format presets mapped to yt-dlp format selectors. "best" and "audio"
// are the common cases, the rest are bandwidth tiers.
var formatPresets = map[string]string{
	"best":     "bestvideo+bestaudio/best",
	"best60":   "bestvideo[fps<=60]+bestaudio/best",
	"bestmp4":  "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]",
	"decent":   "bestvideo[height<=1080]+bestaudio/best",
	"decent60": "bestvideo[height<=1080][fps<=60]+bestaudio/best",
	"cheap":    "bestvideo[height<=720]+bestaudio/best",
	"1080p":    "bestvideo[height=1080][ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]",
	"720p":     "bestvideo[height=720][ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]",
	"480p":     "bestvideo[height=480][ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]",
	"audio":    "bestaudio[ext=m4a]/bestaudio",
}

// ResolveFormat maps a preset name to its yt-dlp selector.
func ResolveFormat(preset string) (string, error) {
	selector, ok := formatPresets[preset]
	if !ok {
		return "", fmt.Errorf("unsupported format: %s", preset)
	}
	return selector, nil
}

// KnownFormat reports whether preset names a supported format.
func KnownFormat(preset string) bool {
	_, ok := formatPresets[preset]
	return ok
}

// FormatNames returns the preset names sorted for help text.
func FormatNames() []string {
	names := make([]string, 0, len(formatPresets))
	for name := range formatPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
