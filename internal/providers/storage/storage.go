package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/fiberafrica/missioncontrol/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("providers.storage",
	fx.Provide(NewFromConfig),
)

var ErrUnavailable = errors.New("storage_unavailable")

// Provider stores job documents in an S3-compatible bucket.
type Provider interface {
	// Upload writes the object, replacing any existing object at key.
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Remove(ctx context.Context, key string) error
}

type MinIOProvider struct {
	client *minio.Client
	bucket string
	log    *zap.Logger
}

// NewFromConfig connects to MinIO. Without credentials the provider is
// disabled and every call returns ErrUnavailable.
func NewFromConfig(cfg config.Config, log *zap.Logger) (Provider, error) {
	log = log.Named("storage")
	if strings.TrimSpace(cfg.Storage.AccessKeyID) == "" {
		log.Warn("object storage credentials not configured, document storage disabled")
		return &NoOpProvider{}, nil
	}

	client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKeyID, cfg.Storage.SecretAccessKey, ""),
		Secure: cfg.Storage.UseSSL,
		Region: cfg.Storage.Region,
	})
	if err != nil {
		return nil, err
	}

	return &MinIOProvider{client: client, bucket: cfg.Storage.Bucket, log: log}, nil
}

func (p *MinIOProvider) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := p.client.PutObject(ctx, p.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		p.log.Error("upload failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (p *MinIOProvider) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := p.client.PresignedGetObject(ctx, p.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (p *MinIOProvider) Remove(ctx context.Context, key string) error {
	return p.client.RemoveObject(ctx, p.bucket, key, minio.RemoveObjectOptions{})
}

type NoOpProvider struct{}

func (p *NoOpProvider) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	return ErrUnavailable
}

func (p *NoOpProvider) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "", ErrUnavailable
}

func (p *NoOpProvider) Remove(ctx context.Context, key string) error {
	return ErrUnavailable
}
