package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/socialite-app/backend/config"
)

// S3Storage stores profile media in an S3 bucket. The object key doubles as
// the relative path persisted on the user or profile record.
type S3Storage struct {
	s3Config *config.S3Config
}

var _ FileStorage = (*S3Storage)(nil)

// NewS3Storage creates a new S3Storage instance
func NewS3Storage(s3Config *config.S3Config) *S3Storage {
	return &S3Storage{s3Config: s3Config}
}

// Store uploads the blob under dir/name and returns the object key.
func (s *S3Storage) Store(ctx context.Context, data []byte, dir, name string) (string, error) {
	key := path.Join(dir, name)
	contentType := http.DetectContentType(data)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	log.Printf("[S3Storage] uploaded %s (%d bytes, %s)", key, len(data), contentType)
	return key, nil
}

// Delete removes the object at the given key. Deleting a missing object is
// not an error in S3, which matches how callers use this.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.s3Config.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}
