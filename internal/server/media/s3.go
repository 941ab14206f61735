package media

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/windhans/reels/internal/server/config"
)

// S3Store stores videos in an S3-compatible bucket. The transformation
// policy (width limit, quality) is host configuration recorded as object
// metadata; the host applies it, not this process.
type S3Store struct {
	client   *s3.Client
	bucket   string
	baseURL  string
	maxWidth int
	quality  string
}

func NewS3Store(cfg *sc.Config) (*S3Store, error) {
	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Store{
		client:   client,
		bucket:   cfg.S3Bucket,
		baseURL:  strings.TrimSuffix(cfg.S3BaseEndpoint, "/"),
		maxWidth: cfg.MediaMaxWidth,
		quality:  cfg.MediaQuality,
	}, nil
}

func (s *S3Store) objectURL(key string) string {
	return s.baseURL + "/" + s.bucket + "/" + key
}

// keyFromURL is the inverse of objectURL. It rejects URLs that do not point
// into this store's bucket.
func (s *S3Store) keyFromURL(url string) (string, error) {
	prefix := s.baseURL + "/" + s.bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", fmt.Errorf("url %q is not in bucket %q", url, s.bucket)
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" {
		return "", fmt.Errorf("url %q has no object key", url)
	}
	return key, nil
}

func (s *S3Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		Metadata: map[string]string{
			"max-width": strconv.Itoa(s.maxWidth),
			"quality":   s.quality,
		},
	})
	if err != nil {
		return "", fmt.Errorf("media host put: %w", err)
	}

	return s.objectURL(key), nil
}

func (s *S3Store) Remove(ctx context.Context, url string) error {
	key, err := s.keyFromURL(url)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("media host delete: %w", err)
	}

	return nil
}
