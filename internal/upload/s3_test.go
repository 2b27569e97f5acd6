package upload

import "testing"

func TestParseS3Target(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantBucket string
		wantPrefix string
		wantErr    bool
	}{
		{
			name:       "bucket only",
			target:     "s3://my-bucket",
			wantBucket: "my-bucket",
		},
		{
			name:       "bucket with prefix",
			target:     "s3://my-bucket/videos/2026",
			wantBucket: "my-bucket",
			wantPrefix: "videos/2026",
		},
		{
			name:    "missing scheme",
			target:  "my-bucket/videos",
			wantErr: true,
		},
		{
			name:    "empty bucket",
			target:  "s3://",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, prefix, err := ParseS3Target(tt.target)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseS3Target(%q) error = %v, wantErr %v", tt.target, err, tt.wantErr)
			}
			if bucket != tt.wantBucket {
				t.Errorf("bucket = %q, want %q", bucket, tt.wantBucket)
			}
			if prefix != tt.wantPrefix {
				t.Errorf("prefix = %q, want %q", prefix, tt.wantPrefix)
			}
		})
	}
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		filePath string
		expected string
	}{
		{
			name:     "no prefix",
			prefix:   "",
			filePath: "/downloads/video.mp4",
			expected: "video.mp4",
		},
		{
			name:     "prefix without slash",
			prefix:   "archive",
			filePath: "/downloads/video.mp4",
			expected: "archive/video.mp4",
		},
		{
			name:     "prefix with trailing slash",
			prefix:   "archive/",
			filePath: "video.mp4",
			expected: "archive/video.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ObjectKey(tt.prefix, tt.filePath); got != tt.expected {
				t.Errorf("ObjectKey(%q, %q) = %q, want %q", tt.prefix, tt.filePath, got, tt.expected)
			}
		})
	}
}
