package s3

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/logiport/portal/internal/cache"
	"github.com/logiport/portal/internal/config"
	ierr "github.com/logiport/portal/internal/errors"
)

const (
	defaultPresignExpiryDuration = 30 * time.Minute
)

// Service stores uploaded document files. Keys are relative to the
// configured prefix.
type Service interface {
	Upload(ctx context.Context, object *Object) error
	Delete(ctx context.Context, key string) error
	GetPresignedUrl(ctx context.Context, key string) (string, error)
}

type s3ServiceImpl struct {
	client *s3.Client
	config *config.S3Config
	cache  cache.Cache
}

// NewService returns nil when object storage is disabled
func NewService(config *config.Configuration, urlCache cache.Cache) (Service, error) {
	if !config.S3.Enabled {
		return nil, nil
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(config.S3.Region),
	)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to load aws config").
			Mark(ierr.ErrHTTPClient)
	}

	return &s3ServiceImpl{
		config: &config.S3,
		client: s3.NewFromConfig(awsCfg),
		cache:  urlCache,
	}, nil
}

func (s *s3ServiceImpl) objectKey(key string) string {
	if s.config.KeyPrefix != "" {
		return fmt.Sprintf("%s/%s", s.config.KeyPrefix, key)
	}
	return key
}

// GetPresignedUrl implements Service.
func (s *s3ServiceImpl) GetPresignedUrl(ctx context.Context, key string) (string, error) {
	duration := s.config.PresignExpiry
	if duration <= 0 {
		duration = defaultPresignExpiryDuration
	}

	// cached urls live for half the presign expiry
	cacheKey := cache.GenerateKey(cache.PrefixPresignedURL, s.config.Bucket, key)
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		if url, ok := cached.(string); ok {
			return url, nil
		}
	}

	presigner := s3.NewPresignClient(s.client)
	result, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.objectKey(key)),
	}, s3.WithPresignExpires(duration))
	if err != nil {
		return "", ierr.WithError(err).WithHint("failed to get presigned url").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, key).
			Mark(ierr.ErrHTTPClient)
	}

	s.cache.Set(ctx, cacheKey, result.URL, duration/2)
	return result.URL, nil
}

// Upload implements Service.
func (s *s3ServiceImpl) Upload(ctx context.Context, object *Object) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(s.objectKey(object.Key)),
		Body:        bytes.NewReader(object.Data),
		ContentType: aws.String(object.ContentType),
	})
	if err != nil {
		return ierr.WithError(err).WithHint("failed to upload document").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, object.Key).
			Mark(ierr.ErrHTTPClient)
	}

	return nil
}

// Delete implements Service.
func (s *s3ServiceImpl) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return ierr.WithError(err).WithHint("failed to delete document").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, key).
			Mark(ierr.ErrHTTPClient)
	}
	s.cache.Delete(ctx, cache.GenerateKey(cache.PrefixPresignedURL, s.config.Bucket, key))
	return nil
}
