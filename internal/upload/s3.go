package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// S3Uploader pushes a finished download to an S3 bucket, used by the
// scheduler when a job carries an upload target.
type S3Uploader struct {
	uploader *manager.Uploader
}

func NewS3Uploader(profile string) (*S3Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithSharedConfigProfile(profile),
		awsconfig.WithRetryMode("adaptive"),
	)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %v", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3Uploader{uploader: manager.NewUploader(client)}, nil
}

// ParseS3Target splits an s3://bucket/prefix URL. The prefix may be empty.
func ParseS3Target(target string) (bucket, prefix string, err error) {
	if !strings.HasPrefix(target, "s3://") {
		return "", "", fmt.Errorf("upload target must be an s3:// URL")
	}
	target = strings.TrimPrefix(target, "s3://")
	parts := strings.SplitN(target, "/", 2)
	if len(parts) < 1 || parts[0] == "" {
		return "", "", fmt.Errorf("invalid S3 URL format")
	}
	bucket = parts[0]
	if len(parts) > 1 {
		prefix = parts[1]
	}
	return bucket, prefix, nil
}

// Upload stores filePath under target (s3://bucket/prefix). The object key is
// prefix + file base name.
func (u *S3Uploader) Upload(ctx context.Context, target, filePath string) (string, error) {
	bucket, prefix, err := ParseS3Target(target)
	if err != nil {
		return "", err
	}
	key := ObjectKey(prefix, filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("error opening file: %v", err)
	}
	defer file.Close()

	log.Debug().Str("op", "upload/s3").Msgf("Uploading %s to s3://%s/%s", filePath, bucket, key)
	_, err = u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return "", fmt.Errorf("error uploading to S3: %v", err)
	}
	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}

// ObjectKey joins the target prefix with the file base name.
func ObjectKey(prefix, filePath string) string {
	name := filepath.Base(filePath)
	if prefix == "" {
		return name
	}
	return strings.TrimSuffix(prefix, "/") + "/" + name
}
