// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig contains configuration for the native MinIO client.
type MinioConfig struct {
	Endpoint  string // host:port, no scheme
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioClient provides object storage operations through the native MinIO SDK.
type MinioClient struct {
	client *minio.Client
	bucket string
}

// NewMinioClient creates a MinIO-backed client and ensures the bucket exists.
func NewMinioClient(ctx context.Context, cfg MinioConfig) (*MinioClient, error) {
	if cfg.Bucket == "" {
		return nil, ErrBucketRequired
	}

	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctxEnsure, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctxEnsure, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}

	if !exists {
		if err := cli.MakeBucket(ctxEnsure, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &MinioClient{
		client: cli,
		bucket: cfg.Bucket,
	}, nil
}

// Upload stores content from a reader at the given key.
func (client *MinioClient) Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)
	ctx, span := tracer.Start(ctx, "repository.storage.upload")

	defer span.End()

	if key == "" {
		return "", ErrKeyRequired
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("reading data: %w", err)
	}

	_, err = client.client.PutObject(ctx, client.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "failed to upload object", err)

		if logger != nil {
			logger.Errorf("failed to upload object %s: %v", key, err)
		}

		return "", fmt.Errorf("uploading object: %w", err)
	}

	return key, nil
}

// Download retrieves content from the given key.
func (client *MinioClient) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)
	ctx, span := tracer.Start(ctx, "repository.storage.download")

	defer span.End()

	if key == "" {
		return nil, ErrKeyRequired
	}

	obj, err := client.client.GetObject(ctx, client.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "failed to download object", err)

		return nil, fmt.Errorf("downloading object: %w", err)
	}

	// GetObject is lazy; Stat forces the first round-trip so a missing key
	// surfaces here instead of on first read.
	if _, err := obj.Stat(); err != nil {
		obj.Close()

		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrObjectNotFound
		}

		if logger != nil {
			logger.Errorf("failed to download object %s: %v", key, err)
		}

		return nil, fmt.Errorf("downloading object: %w", err)
	}

	return obj, nil
}

// Delete removes an object by key.
func (client *MinioClient) Delete(ctx context.Context, key string) error {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)
	ctx, span := tracer.Start(ctx, "repository.storage.delete")

	defer span.End()

	if key == "" {
		return ErrKeyRequired
	}

	if err := client.client.RemoveObject(ctx, client.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		libOpentelemetry.HandleSpanError(&span, "failed to delete object", err)

		if logger != nil {
			logger.Errorf("failed to delete object %s: %v", key, err)
		}

		return fmt.Errorf("deleting object: %w", err)
	}

	return nil
}

// Exists checks if an object exists at the given key.
func (client *MinioClient) Exists(ctx context.Context, key string) (bool, error) {
	_, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)
	ctx, span := tracer.Start(ctx, "repository.storage.exists")

	defer span.End()

	if key == "" {
		return false, ErrKeyRequired
	}

	if _, err := client.client.StatObject(ctx, client.bucket, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}

		libOpentelemetry.HandleSpanError(&span, "failed to check object existence", err)

		return false, fmt.Errorf("checking object existence: %w", err)
	}

	return true, nil
}

// GeneratePresignedURL creates a time-limited download URL.
func (client *MinioClient) GeneratePresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	_, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)
	ctx, span := tracer.Start(ctx, "repository.storage.generate_presigned_url")

	defer span.End()

	if key == "" {
		return "", ErrKeyRequired
	}

	u, err := client.client.PresignedGetObject(ctx, client.bucket, key, expiry, url.Values{})
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "failed to generate presigned url", err)

		return "", fmt.Errorf("generating presigned url: %w", err)
	}

	return u.String(), nil
}

// Compile-time interface check.
var _ ObjectStorage = (*MinioClient)(nil)
