package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/jmylchreest/recipe-api/internal/config"
)

// StorageService keeps raw page snapshots in S3-compatible object storage
// (Tigris, MinIO, R2). A disabled service accepts writes and drops them.
type StorageService struct {
	client  *s3.Client
	bucket  string
	enabled bool
	logger  *slog.Logger
}

// NewStorageService creates a new storage service.
func NewStorageService(cfg *appconfig.Config, logger *slog.Logger) (*StorageService, error) {
	if !cfg.StorageEnabled {
		logger.Info("storage service disabled - no bucket configured")
		return &StorageService{
			enabled: false,
			logger:  logger,
		}, nil
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.StorageRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.StorageEndpoint)
		o.UsePathStyle = true
	})

	logger.Info("storage service initialized",
		"bucket", cfg.StorageBucket,
		"endpoint", cfg.StorageEndpoint,
	)

	return &StorageService{
		client:  client,
		bucket:  cfg.StorageBucket,
		enabled: true,
		logger:  logger,
	}, nil
}

// IsEnabled returns whether storage is configured and available.
func (s *StorageService) IsEnabled() bool {
	return s.enabled
}

// SnapshotKey returns the object key for a page URL: pages/{sha256(url)}.html.
func SnapshotKey(pageURL string) string {
	sum := sha256.Sum256([]byte(pageURL))
	return "pages/" + hex.EncodeToString(sum[:]) + ".html"
}

// PutPageSnapshot stores the raw HTML fetched for pageURL and returns its key.
// It is a no-op returning "" when storage is disabled.
func (s *StorageService) PutPageSnapshot(ctx context.Context, pageURL string, body []byte, contentType string) (string, error) {
	if !s.enabled {
		return "", nil
	}
	if contentType == "" {
		contentType = "text/html"
	}

	key := SnapshotKey(pageURL)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		Metadata:    map[string]string{"source-url": pageURL},
	})
	if err != nil {
		return "", fmt.Errorf("failed to store page snapshot: %w", err)
	}

	s.logger.Debug("stored page snapshot",
		"url", pageURL,
		"key", key,
		"size_bytes", len(body),
	)
	return key, nil
}
