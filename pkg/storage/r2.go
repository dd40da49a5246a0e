package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectPutter is the part of *s3.Client the archive needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// R2Storage keeps settings snapshots in a Cloudflare R2 (S3 compatible) bucket.
type R2Storage struct {
	client        objectPutter
	bucketName    string
	publicURL     string
	prefix        string
	uploadTimeout time.Duration
}

func NewR2Storage(ctx context.Context, accountId, accessKey, secretKey, bucketName, publicURL string, uploadTimeout time.Duration) (*R2Storage, error) {
	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountId),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithEndpointResolverWithOptions(r2Resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return newR2Storage(client, bucketName, publicURL, uploadTimeout), nil
}

func newR2Storage(client objectPutter, bucketName, publicURL string, uploadTimeout time.Duration) *R2Storage {
	if uploadTimeout <= 0 {
		uploadTimeout = 30 * time.Second
	}
	return &R2Storage{
		client:        client,
		bucketName:    bucketName,
		publicURL:     strings.TrimSuffix(publicURL, "/"),
		prefix:        "snapshots",
		uploadTimeout: uploadTimeout,
	}
}

// PutSnapshot stores data under snapshots/<name> and returns its public URL,
// or the object key when no public URL is configured.
func (s *R2Storage) PutSnapshot(ctx context.Context, name string, data []byte) (string, error) {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if name == "" || name == "." {
		return "", fmt.Errorf("invalid snapshot name")
	}
	key := path.Join(s.prefix, name)

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	_, err := s.client.PutObject(uploadCtx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentTypeFor(name)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot to R2: %w", err)
	}

	if s.publicURL == "" {
		return key, nil
	}
	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}

func contentTypeFor(name string) string {
	switch path.Ext(name) {
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
