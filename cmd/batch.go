package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mzahur/vidgrab/internal/scheduler"
	"github.com/mzahur/vidgrab/internal/utils"
	"github.com/spf13/cobra"
)

type BatchEntry struct {
	OutputPath string `yaml:"op,omitempty"`
	Link       string `yaml:"link"`
	Format     string `yaml:"format,omitempty"`
}

type BatchFile map[string][]BatchEntry

func newBatchCmd() *cobra.Command {
	var uploadTarget string
	var awsProfile string

	cmd := &cobra.Command{
		Use:   "batch [YAML_FILE] [OPTIONS]",
		Short: "Process multiple downloads from a YAML file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			yamlFile := args[0]
			data, err := os.ReadFile(yamlFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading YAML file: %v\n", err)
				os.Exit(1)
			}
			var batchFile BatchFile
			if err := yaml.Unmarshal(data, &batchFile); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing YAML file: %v\n", err)
				os.Exit(1)
			}
			jobs := buildJobsFromBatch(batchFile, uploadTarget, awsProfile)
			if len(jobs) == 0 {
				fmt.Fprintf(os.Stderr, "No valid jobs found in the batch file\n")
				os.Exit(1)
			}
			if err := scheduler.Run(jobs, workers, historyStore); err != nil {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&uploadTarget, "upload", "", "Upload every finished file to s3://bucket/prefix")
	cmd.Flags().StringVar(&awsProfile, "profile", "default", "AWS profile for --upload")
	return cmd
}

func buildJobsFromBatch(batchFile BatchFile, uploadTarget, awsProfile string) []utils.Job {
	var jobs []utils.Job
	for jobType, entries := range batchFile {
		normalizedType := normalizeJobType(jobType)
		if normalizedType == "" {
			fmt.Fprintf(os.Stderr, "Warning: Unknown job type '%s', skipping...\n", jobType)
			continue
		}
		for _, entry := range entries {
			if entry.Link == "" {
				fmt.Fprintf(os.Stderr, "Warning: Empty link found in %s section, skipping...\n", jobType)
				continue
			}
			format := entry.Format
			if normalizedType == "video" && format == "" {
				format = globalConfig.Format
			}
			job := utils.Job{
				JobType:          normalizedType,
				URL:              entry.Link,
				OutputPath:       entry.OutputPath,
				OutputDir:        globalConfig.OutputDir,
				Format:           format,
				UploadTarget:     uploadTarget,
				HTTPClientConfig: globalHTTPConfig,
				Metadata:         make(map[string]any),
			}
			if uploadTarget != "" {
				job.Metadata["awsProfile"] = awsProfile
			}
			jobs = append(jobs, job)
		}
	}
	return jobs
}

func normalizeJobType(jobType string) string {
	typeMap := map[string]string{
		"video":   "video",
		"videos":  "video",
		"yt":      "video",
		"youtube": "video",
		"audio":   "audio",
		"mp3":     "audio",
		"music":   "audio",
	}
	return typeMap[strings.ToLower(jobType)]
}
