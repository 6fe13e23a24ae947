// Package storage writes published schedule snapshots to an S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/workforce-scheduler/internal/config"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

var _ schedule.Archiver = (*S3Archive)(nil)

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Archive struct {
	client objectPutter
	bucket string
}

func NewS3Archive(cfg config.StorageConfig) *S3Archive {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &S3Archive{client: s3.New(opts), bucket: cfg.Bucket}
}

// ObjectKey is schedules/<business>/<week start>_<schedule id>.json.
func ObjectKey(s *models.Schedule) string {
	return fmt.Sprintf("schedules/%s/%s_%s.json",
		s.BusinessID, s.WeekStartDate.Format("2006-01-02"), s.ID)
}

// Archive uploads the schedule as JSON and returns the object key.
func (a *S3Archive) Archive(ctx context.Context, s *models.Schedule) (string, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("storage: encode schedule: %w", err)
	}

	key := ObjectKey(s)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload %s: %w", key, err)
	}
	return key, nil
}
