package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/JaimeStill/collate/pkg/lifecycle"
)

type s3 struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

func newS3(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &s3{
		client: client,
		bucket: cfg.ContainerName,
		logger: logger.With("system", "storage", "provider", ProviderS3),
	}, nil
}

func (s *s3) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting storage system")

	lc.OnStartup("storage", func() error {
		exists, err := s.client.BucketExists(lc.Context(), s.bucket)
		if err != nil {
			return fmt.Errorf("check bucket %s: %w", s.bucket, err)
		}

		if !exists {
			if err := s.client.MakeBucket(lc.Context(), s.bucket, minio.MakeBucketOptions{}); err != nil {
				return fmt.Errorf("create bucket %s: %w", s.bucket, err)
			}
		}

		s.logger.Info("storage bucket ready", "bucket", s.bucket)
		return nil
	})

	return nil
}

func (s *s3) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, reader, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return s.wrapError("upload", key, err)
	}

	return nil
}

func (s *s3) Download(ctx context.Context, key string) (*Object, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrapError("download", key, err)
	}

	// GetObject defers errors until the first read; Stat surfaces them now.
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, s.wrapError("download", key, err)
	}

	return &Object{
		Body:          obj,
		ContentType:   info.ContentType,
		ContentLength: info.Size,
	}, nil
}

func (s *s3) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	// RemoveObject succeeds for missing keys, so probe first to honor
	// the ErrNotFound contract.
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		return s.wrapError("delete", key, err)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return s.wrapError("delete", key, err)
	}

	return nil
}

func (s *s3) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, s.wrapError("check", key, err)
	}

	return true, nil
}

func (s *s3) Find(ctx context.Context, key string) (*Metadata, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, s.wrapError("find", key, err)
	}

	return &Metadata{
		Key:          key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
		ETag:         info.ETag,
	}, nil
}

func (s *s3) List(ctx context.Context, prefix, marker string, maxResults int32) (*ListResult, error) {
	opts := minio.ListObjectsOptions{
		Prefix:     prefix,
		Recursive:  true,
		StartAfter: marker,
		MaxKeys:    int(maxResults),
	}

	result := &ListResult{Objects: []Metadata{}}

	for info := range s.client.ListObjects(ctx, s.bucket, opts) {
		if info.Err != nil {
			return nil, s.wrapError("list", prefix, info.Err)
		}

		result.Objects = append(result.Objects, Metadata{
			Key:          info.Key,
			Size:         info.Size,
			ContentType:  info.ContentType,
			LastModified: info.LastModified,
			ETag:         info.ETag,
		})

		// The listing channel streams past MaxKeys across requests, so
		// cut the page here.
		if int32(len(result.Objects)) >= maxResults {
			result.NextMarker = info.Key
			result.Truncated = true
			break
		}
	}

	return result, nil
}

func (s *s3) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	exists, err := s.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrNotFound
	}

	url, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, nil)
	if err != nil {
		return "", s.wrapError("sign", key, err)
	}

	return url.String(), nil
}

func (s *s3) wrapError(op, key string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return ErrNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return fmt.Errorf("%w: %s %s", ErrAccessDenied, op, key)
	default:
		return fmt.Errorf("%s object %s: %w", op, key, err)
	}
}
