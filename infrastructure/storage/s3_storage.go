package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pinkcat015/todolist/domain/ports"
	"github.com/pinkcat015/todolist/pkg/logger"
)

const s3Timeout = 30 * time.Second

// S3Storage implements StoragePort for S3-compatible storage (MinIO, R2, e2).
type S3Storage struct {
	client    *minio.Client
	bucket    string
	region    string
	publicURL string
	endpoint  string
	useSSL    bool
}

type S3StorageConfig struct {
	Endpoint  string // minio:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	PublicURL string // optional CDN or public bucket URL
}

// NewS3Client creates the storage without touching the network.
func NewS3Client(config S3StorageConfig) (*S3Storage, error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
		Region: config.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	return &S3Storage{
		client:    client,
		bucket:    config.Bucket,
		region:    config.Region,
		publicURL: strings.TrimSuffix(config.PublicURL, "/"),
		endpoint:  config.Endpoint,
		useSSL:    config.UseSSL,
	}, nil
}

// NewS3Storage creates the storage and makes sure the bucket exists.
func NewS3Storage(config S3StorageConfig) (ports.StoragePort, error) {
	s, err := NewS3Client(config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	logger.Info("S3 storage initialized",
		"endpoint", config.Endpoint,
		"bucket", config.Bucket,
		"ssl", config.UseSSL,
	)
	return s, nil
}

// EnsureBucket creates the bucket when missing.
func (s *S3Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	logger.Info("S3 bucket created", "bucket", s.bucket)
	return nil
}

// SetPublicReadPolicy allows anonymous GET on objects under prefix (e.g. "avatars").
func (s *S3Storage) SetPublicReadPolicy(ctx context.Context, prefix string) (string, error) {
	policy, err := PublicReadPolicy(s.bucket, prefix)
	if err != nil {
		return "", err
	}
	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return "", fmt.Errorf("failed to set bucket policy: %w", err)
	}
	return policy, nil
}

func PublicReadPolicy(bucket, prefix string) (string, error) {
	policy := map[string]any{
		"Version": "2012-10-17",
		"Statement": []map[string]any{
			{
				"Sid":       "PublicRead",
				"Effect":    "Allow",
				"Principal": map[string]any{"AWS": []string{"*"}},
				"Action":    []string{"s3:GetObject"},
				"Resource":  []string{fmt.Sprintf("arn:aws:s3:::%s/%s/*", bucket, strings.Trim(prefix, "/"))},
			},
		},
	}
	data, err := json.MarshalIndent(policy, "", "  ")
	return string(data), err
}

func (s *S3Storage) UploadFile(file io.Reader, path string, size int64, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s3Timeout)
	defer cancel()

	path = normalizeKey(path)
	if size <= 0 {
		size = -1
	}

	_, err := s.client.PutObject(ctx, s.bucket, path, file, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	logger.Debug("File uploaded to S3", "path", path, "content_type", contentType)
	return s.GetFileURL(path), nil
}

func (s *S3Storage) DeleteFile(path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s3Timeout)
	defer cancel()

	path = normalizeKey(path)
	if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Debug("File deleted from S3", "path", path)
	return nil
}

func (s *S3Storage) GetFileURL(path string) string {
	path = normalizeKey(path)
	if s.publicURL != "" {
		return s.publicURL + "/" + path
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, path)
}

func (s *S3Storage) GetProviderName() string {
	return "s3"
}

func normalizeKey(path string) string {
	return strings.TrimPrefix(strings.ReplaceAll(path, "\\", "/"), "/")
}
