package s3

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	customErrors "github.com/lumenchat/auth-service/internal/domain/auth/errors"
	"github.com/lumenchat/auth-service/internal/infra/config"
)

// ObjectStore uploads avatar payloads to an S3-compatible bucket (AWS or
// MinIO) and returns the public URL of the stored object.
type ObjectStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func New(ctx context.Context, cfg *config.Config) (*ObjectStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "load object store config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true // MinIO
		}
	})

	baseURL := strings.TrimRight(cfg.S3PublicURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &ObjectStore{client: client, bucket: cfg.S3Bucket, baseURL: baseURL}, nil
}

func (s *ObjectStore) Upload(ctx context.Context, payload []byte, contentType string) (string, error) {
	key := storageKey()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", customErrors.WrapInternal(err, "put object")
	}

	return s.baseURL + "/" + key, nil
}

func storageKey() string {
	d := time.Now()
	return fmt.Sprintf("avatars/%d/%02d/%v", d.Year(), d.Month(), uuid.New())
}
