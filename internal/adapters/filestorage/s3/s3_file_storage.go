package s3

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/seshego-consulting/portal_backend/internal/core/ports/repositories"
	"github.com/seshego-consulting/portal_backend/pkg/config"
)

type s3FileStorage struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucketName string
}

var _ repositories.FileStorage = (*s3FileStorage)(nil)

// NewS3FileStorage connects to S3 (or an S3-compatible endpoint such as
// MinIO/LocalStack when cfg.S3Endpoint is set) for document binaries.
func NewS3FileStorage(ctx context.Context, cfg *config.Config) (repositories.FileStorage, error) {
	var awsCfg aws.Config
	var err error

	if cfg.S3Endpoint != "" {
		customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			if service == s3.ServiceID {
				return aws.Endpoint{
					PartitionID:   "aws",
					URL:           cfg.S3Endpoint,
					SigningRegion: cfg.S3Region,
				}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})

		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.S3Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "test")),
			awsconfig.WithEndpointResolverWithOptions(customResolver),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// Path-style is required by most S3-compatible local endpoints.
		o.UsePathStyle = cfg.S3Endpoint != ""
	})

	return &s3FileStorage{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		bucketName: cfg.S3Bucket,
	}, nil
}

// Upload stores the payload under key and returns a presigned download URL.
func (s *s3FileStorage) Upload(ctx context.Context, key string, contentType string, payload []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}

	return s.PresignedGetURL(ctx, key)
}

// PresignedGetURL returns a download URL valid for 7 days, the longest
// lifetime SigV4 allows.
func (s *s3FileStorage) PresignedGetURL(ctx context.Context, key string) (string, error) {
	request, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(7*24*time.Hour))
	if err != nil {
		return "", fmt.Errorf("failed to presign get object %s: %w", key, err)
	}

	return request.URL, nil
}
