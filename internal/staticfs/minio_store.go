package staticfs

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Prefix    string
	Index     string
}

// MinIOStore читает статику из бакета только на чтение
type MinIOStore struct {
	client *minio.Client
	bucket string
	prefix string
	index  string
	logger zerolog.Logger
}

func NewMinIOStore(cfg MinIOConfig, logger zerolog.Logger) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	index := cfg.Index
	if index == "" {
		index = "index.html"
	}

	logger.Info().
		Str("endpoint", cfg.Endpoint).
		Str("bucket", cfg.Bucket).
		Str("prefix", cfg.Prefix).
		Bool("ssl", cfg.UseSSL).
		Msg("Serving static assets from MinIO")

	return &MinIOStore{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		index:  index,
		logger: logger,
	}, nil
}

func (s *MinIOStore) Open(ctx context.Context, name string) (*Asset, error) {
	key := s.objectKey(name)

	asset, err := s.get(ctx, key)
	if err == nil {
		return asset, nil
	}

	// ключ без объекта трактуется как каталог
	if isNotFound(err) && path.Base(key) != s.index {
		return s.get(ctx, path.Join(key, s.index))
	}

	return nil, err
}

func (s *MinIOStore) objectKey(name string) string {
	rel := strings.TrimPrefix(cleanName(name), "/")
	if rel == "" {
		rel = s.index
	}
	if s.prefix == "" {
		return rel
	}
	return s.prefix + "/" + rel
}

func (s *MinIOStore) get(ctx context.Context, key string) (*Asset, error) {
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, key)
		}
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}

	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}

	s.logger.Debug().
		Str("bucket", s.bucket).
		Str("key", key).
		Int64("size", info.Size).
		Msg("Static asset opened")

	return &Asset{
		Name:    path.Base(key),
		ModTime: info.LastModified,
		Content: object,
	}, nil
}
