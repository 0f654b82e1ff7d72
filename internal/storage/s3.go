package storage

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/plateful/plateful-backend/config"
)

// S3Store keeps uploaded images in an S3 bucket.
type S3Store struct {
	cfg *config.S3Config
}

func NewS3Store(cfg *config.S3Config) *S3Store {
	return &S3Store{cfg: cfg}
}

func (s *S3Store) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.cfg.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.cfg.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.BucketName),
		Key:    aws.String(key),
	})
	return err
}
