package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrObjectNotFound is reported when the provider has no such key.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore is the minimal provider surface the uploader needs.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// S3Store talks to S3 (or any S3-compatible endpoint).
type S3Store struct {
	client  *s3.Client
	bucket  string
	region  string
	baseURL string
}

func NewS3Store(ctx context.Context, region, bucket, accessKey, secretKey, baseURL string) (*S3Store, error) {
	if bucket == "" {
		return nil, errors.New("S3 bucket not configured")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &S3Store{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		region:  region,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put: %w", err)
	}
	return nil
}

// Delete removes an object, first confirming it exists: S3's DeleteObject is
// silent about missing keys and the API wants a 404 there.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return ErrObjectNotFound
		}
		return fmt.Errorf("s3 head: %w", err)
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete: %w", err)
	}
	return nil
}

func (s *S3Store) PublicURL(key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
