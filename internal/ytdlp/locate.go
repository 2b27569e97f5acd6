package ytdlp

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/mzahur/vidgrab/internal/utils"
	"github.com/rs/zerolog/log"
)

// EnsureYtdlp locates yt-dlp on PATH or next to the vidgrab binary, and as a
// last resort fetches it from the latest GitHub release into the temp dir.
func EnsureYtdlp(clientConfig utils.HTTPClientConfig) (string, error) {
	path, err := exec.LookPath("yt-dlp")
	if err == nil {
		return path, nil
	}
	execDir, err := os.Executable()
	if err == nil {
		ytdlpPath := filepath.Join(filepath.Dir(execDir), "yt-dlp")
		if runtime.GOOS == "windows" {
			ytdlpPath += ".exe"
		}
		if _, err := os.Stat(ytdlpPath); err == nil {
			return ytdlpPath, nil
		}
	}
	return downloadYtdlp(clientConfig)
}

// EnsureFFmpeg locates ffmpeg on PATH or next to the vidgrab binary. No
// auto-fetch here, ffmpeg builds are platform soup.
func EnsureFFmpeg() (string, error) {
	return ensureLocalTool("ffmpeg")
}

func EnsureFFprobe() (string, error) {
	return ensureLocalTool("ffprobe")
}

func ensureLocalTool(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err == nil {
		return path, nil
	}
	execDir, err := os.Executable()
	if err == nil {
		toolPath := filepath.Join(filepath.Dir(execDir), name)
		if runtime.GOOS == "windows" {
			toolPath += ".exe"
		}
		if _, err := os.Stat(toolPath); err == nil {
			return toolPath, nil
		}
	}
	return "", fmt.Errorf("%s not found in PATH, please install manually", name)
}

func downloadYtdlp(clientConfig utils.HTTPClientConfig) (string, error) {
	goos := runtime.GOOS
	goarch := runtime.GOARCH
	var filename string
	switch {
	case goos == "windows" && goarch == "amd64":
		filename = "yt-dlp.exe"
	case goos == "windows" && goarch == "arm64":
		filename = "yt-dlp_arm64.exe"
	case goos == "linux" && goarch == "amd64":
		filename = "yt-dlp_linux"
	case goos == "linux" && goarch == "arm64":
		filename = "yt-dlp_linux_aarch64"
	case goos == "darwin":
		filename = "yt-dlp_macos"
	default:
		return "", fmt.Errorf("unsupported OS/arch: %s/%s", goos, goarch)
	}

	tempDir := utils.TempDirName
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return "", fmt.Errorf("error creating temp directory: %v", err)
	}
	downloadURL := fmt.Sprintf("https://github.com/yt-dlp/yt-dlp/releases/latest/download/%s", filename)
	filePath := filepath.Join(tempDir, "yt-dlp")
	if goos == "windows" {
		filePath += ".exe"
	}
	log.Debug().Str("op", "ytdlp/locate").Msgf("Fetching yt-dlp from %s", downloadURL)
	if err := downloadFile(downloadURL, filePath, clientConfig); err != nil {
		return "", err
	}
	if goos != "windows" {
		if err := os.Chmod(filePath, 0755); err != nil {
			return "", fmt.Errorf("error setting permissions: %v", err)
		}
	}
	return filePath, nil
}

func downloadFile(url, filepath string, clientConfig utils.HTTPClientConfig) error {
	client := utils.NewVidgrabHTTPClient(clientConfig)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}
	out, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, resp.Body)
	return err
}
