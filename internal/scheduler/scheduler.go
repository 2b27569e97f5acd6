package scheduler

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mzahur/vidgrab/internal/downloaders/audio"
	"github.com/mzahur/vidgrab/internal/downloaders/video"
	"github.com/mzahur/vidgrab/internal/ffmpeg"
	"github.com/mzahur/vidgrab/internal/history"
	"github.com/mzahur/vidgrab/internal/output"
	"github.com/mzahur/vidgrab/internal/upload"
	"github.com/mzahur/vidgrab/internal/utils"
	"github.com/rs/zerolog/log"
)

// downloaderRegistry maps job types to their downloader implementations
var downloaderRegistry = map[string]utils.Downloader{
	"video": &video.VideoDownloader{},
	"audio": &audio.AudioDownloader{},
}

// Run executes jobs across numWorkers workers with a live display, records
// every finished job in the history store, and returns an error if any job
// failed. A nil store disables history.
func Run(jobs []utils.Job, numWorkers int, store *history.Store) error {
	if numWorkers < 1 {
		numWorkers = 1
	}
	outputMgr := output.NewManager()
	// The display owns the terminal until StopDisplay; interleaved log lines
	// would corrupt the redraw.
	utils.SetLogOutput(io.Discard)
	outputMgr.StartDisplay()

	jobCh := make(chan utils.Job, len(jobs))
	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			processJobs(jobCh, outputMgr, store)
		}()
	}
	wg.Wait()
	outputMgr.StopDisplay()
	utils.SetLogOutput(os.Stderr)

	if outputMgr.HasErrors() {
		return fmt.Errorf("encountered failed job(s)")
	}
	return nil
}

func processJobs(jobCh <-chan utils.Job, outputMgr *output.Manager, store *history.Store) {
	for job := range jobCh {
		job.ID = uuid.New().String()
		job.Metadata = ensureMetadata(job.Metadata)
		funcID := outputMgr.RegisterJob(job.URL)
		startedAt := time.Now()

		job.StreamFunc = func(line string) {
			outputMgr.AddStreamLine(funcID, line)
		}
		job.ProgressFunc = func(percent float64, speed, eta string) {
			detail := fmt.Sprintf("%s %s ETA %s", speed, output.StyleSymbols["bullet"], eta)
			if speed == "" {
				detail = ""
			}
			outputMgr.AddProgressToStream(funcID, percent, detail)
			outputMgr.SetMessage(funcID, fmt.Sprintf("Downloading %s", job.URL))
		}

		downloader, exists := downloaderRegistry[job.JobType]
		if !exists {
			err := fmt.Errorf("%w: %s", utils.ErrUnknownJobType, job.JobType)
			outputMgr.ReportError(funcID, err)
			outputMgr.SetMessage(funcID, fmt.Sprintf("Error: unknown job type %s", job.JobType))
			continue
		}

		outputMgr.SetStatus(funcID, "pending")
		outputMgr.SetMessage(funcID, fmt.Sprintf("Validating %s job", job.JobType))
		if err := downloader.ValidateJob(&job); err != nil {
			failJob(outputMgr, store, &job, funcID, startedAt, fmt.Errorf("validation failed: %v", err))
			continue
		}

		outputMgr.SetMessage(funcID, fmt.Sprintf("Preparing %s job", job.JobType))
		if err := downloader.BuildJob(&job); err != nil {
			failJob(outputMgr, store, &job, funcID, startedAt, fmt.Errorf("build failed: %v", err))
			continue
		}

		outputMgr.SetMessage(funcID, fmt.Sprintf("Downloading %s", job.URL))
		if err := downloader.Download(&job); err != nil {
			failJob(outputMgr, store, &job, funcID, startedAt, err)
			continue
		}

		if job.UploadTarget != "" {
			outputMgr.SetMessage(funcID, fmt.Sprintf("Uploading to %s", job.UploadTarget))
			if err := uploadOutput(&job); err != nil {
				failJob(outputMgr, store, &job, funcID, startedAt, fmt.Errorf("upload failed: %v", err))
				continue
			}
		}

		recordJob(store, &job, startedAt, nil)
		outputMgr.Complete(funcID, fmt.Sprintf("Completed %s", jobTitle(&job)))
	}
}

func failJob(outputMgr *output.Manager, store *history.Store, job *utils.Job, funcID int, startedAt time.Time, err error) {
	outputMgr.ReportError(funcID, err)
	outputMgr.SetMessage(funcID, fmt.Sprintf("Failed %s", job.URL))
	recordJob(store, job, startedAt, err)
}

func uploadOutput(job *utils.Job) error {
	if !outputResolved(job.OutputPath) {
		return fmt.Errorf("output path %q was never resolved, nothing to upload", job.OutputPath)
	}
	profile, _ := job.Metadata["awsProfile"].(string)
	if profile == "" {
		profile = "default"
	}
	uploader, err := upload.NewS3Uploader(profile)
	if err != nil {
		return err
	}
	location, err := uploader.Upload(context.Background(), job.UploadTarget, job.OutputPath)
	if err != nil {
		return err
	}
	job.Metadata["uploadLocation"] = location
	if job.StreamFunc != nil {
		job.StreamFunc(fmt.Sprintf("Uploaded to %s", location))
	}
	return nil
}

func recordJob(store *history.Store, job *utils.Job, startedAt time.Time, jobErr error) {
	if store == nil {
		return
	}
	record := history.Record{
		ID:         job.ID,
		URL:        job.URL,
		Title:      jobTitle(job),
		Format:     job.Format,
		OutputPath: job.OutputPath,
		Status:     history.StatusCompleted,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}
	if jobErr != nil {
		record.Status = history.StatusFailed
		record.Error = jobErr.Error()
		record.OutputPath = ""
	}
	if size, ok := job.Metadata["fileSize"].(int64); ok {
		record.FileSize = size
	}
	if jobErr == nil && outputResolved(job.OutputPath) {
		if ffprobePath, ok := job.Metadata["ffprobePath"].(string); ok {
			if duration, err := ffmpeg.ProbeDuration(ffprobePath, job.OutputPath); err == nil {
				record.Duration = duration.Round(time.Second).String()
			}
		}
	}
	if err := store.Append(record); err != nil {
		log.Warn().Str("op", "scheduler/record").Err(err).Msg("Failed to write history record")
	}
}

// jobTitle derives a display title from the resolved output file, falling
// back to the URL while the template is still unresolved. The filename is
// sanitized before it reaches the single-line display and the history file.
func jobTitle(job *utils.Job) string {
	if !outputResolved(job.OutputPath) {
		return job.URL
	}
	base := filepath.Base(job.OutputPath)
	ext := filepath.Ext(base)
	return utils.SanitizeFilename(base[:len(base)-len(ext)])
}

// outputResolved reports whether the path is a real file path rather than a
// still-unexpanded yt-dlp output template. yt-dlp emits no Destination line
// when a file has already been downloaded, leaving the template in place.
func outputResolved(path string) bool {
	return path != "" && !strings.Contains(path, "%(")
}

func ensureMetadata(m map[string]any) map[string]any {
	if m == nil {
		return make(map[string]any)
	}
	return m
}
