package utils

import "errors"

// Downloader is implemented once per job type. ValidateJob checks the job as
// given, BuildJob resolves external tools and fills derived metadata, and
// Download runs the job to completion.
type Downloader interface {
	ValidateJob(job *Job) error
	BuildJob(job *Job) error
	Download(job *Job) error
}

// Job is a single user-initiated download: one URL fetched into one output
// path. Metadata carries per-type details (format selector, tool paths, etc).
type Job struct {
	ID               string
	JobType          string
	URL              string
	OutputDir        string
	OutputPath       string
	Format           string
	UploadTarget     string
	ProgressFunc     func(percent float64, speed, eta string)
	StreamFunc       func(line string)
	Metadata         map[string]any
	HTTPClientConfig HTTPClientConfig
}

const TempDirName = ".vidgrab-temp"

var ErrUnknownJobType = errors.New("unknown job type")
