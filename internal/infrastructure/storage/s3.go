// Package storage keeps uploaded listing images in S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const defaultPresignTTL = time.Hour

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides the S3 endpoint, e.g. for MinIO.
	Endpoint   string
	PresignTTL time.Duration
}

// ObjectPutter is the subset of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ObjectPresigner is the subset of the presign client used for downloads.
type ObjectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3ImageStore uploads listing images and hands out presigned links to them.
type S3ImageStore struct {
	putter    ObjectPutter
	presigner ObjectPresigner
	bucket    string
	ttl       time.Duration
}

// NewS3ImageStore loads AWS configuration, preferring static credentials when
// both key parts are set.
func NewS3ImageStore(ctx context.Context, cfg S3Config) (*S3ImageStore, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3ImageStoreWithClients(client, s3.NewPresignClient(client), cfg.Bucket, cfg.PresignTTL), nil
}

func NewS3ImageStoreWithClients(putter ObjectPutter, presigner ObjectPresigner, bucket string, ttl time.Duration) *S3ImageStore {
	if ttl <= 0 {
		ttl = defaultPresignTTL
	}
	return &S3ImageStore{putter: putter, presigner: presigner, bucket: bucket, ttl: ttl}
}

// Upload stores body under a fresh key and returns that key.
// Format: listings/<uuid><ext>
func (s *S3ImageStore) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := "listings/" + uuid.NewString() + extensionFor(contentType)
	_, err := s.putter.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		Metadata:    map[string]string{"original-filename": filename},
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	return key, nil
}

// URL returns a presigned GET link for key.
func (s *S3ImageStore) URL(ctx context.Context, key string) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = s.ttl
	})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}
