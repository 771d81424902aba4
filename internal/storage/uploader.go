package storage

import (
	"context"
	"os"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/viralclips/clip-engine/internal/config"
	"github.com/viralclips/clip-engine/internal/models"
)

const defaultRegion = "us-east-1"

// Uploader pushes local files to an S3-compatible object store. Credentials
// arrive with each job, so the client is built per call rather than at
// process start.
type Uploader struct {
	timeout time.Duration
}

func NewUploader(cfg *config.Config) *Uploader {
	return &Uploader{timeout: cfg.Worker.UploadTimeout}
}

func (u *Uploader) Upload(ctx context.Context, storage models.StorageConfig, localPath, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	client, err := newS3Client(ctx, storage)
	if err != nil {
		return "", err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", errors.Wrap(err, "open clip file")
	}
	defer file.Close()

	contentType := "video/mp4"
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &storage.Bucket,
		Key:         &key,
		Body:        file,
		ContentType: &contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "put object")
	}
	return PublicURL(storage, key), nil
}

// PublicURL is the deterministic address of an uploaded object:
// endpoint/bucket/key.
func PublicURL(storage models.StorageConfig, key string) string {
	return strings.TrimRight(storage.Endpoint, "/") + "/" + storage.Bucket + "/" + key
}

func newS3Client(ctx context.Context, storage models.StorageConfig) (*s3.Client, error) {
	region := storage.Region
	if region == "" {
		region = defaultRegion
	}
	cfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				storage.AccessKey,
				storage.SecretKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "load s3 configuration")
	}
	endpoint := storage.Endpoint
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = &endpoint
	})
	return client, nil
}
