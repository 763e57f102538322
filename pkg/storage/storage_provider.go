// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package storage

import (
	"context"
	"fmt"
)

// NewObjectStorage creates an object storage client based on the configured
// provider. Returns the generic ObjectStorage interface so callers never
// depend on a concrete backend.
func NewObjectStorage(ctx context.Context, config *Config) (ObjectStorage, error) {
	switch config.Provider {
	case "", "minio":
		return NewMinioClient(ctx, MinioConfig{
			Endpoint:  config.MinioEndpoint,
			AccessKey: config.MinioAccessKey,
			SecretKey: config.MinioSecretKey,
			Bucket:    config.MinioBucket,
			UseSSL:    config.MinioUseSSL,
		})
	case "s3":
		client, err := NewS3Client(ctx, S3Config{
			Region:          config.S3Region,
			Bucket:          config.S3Bucket,
			AccessKeyID:     config.S3AccessKeyID,
			SecretAccessKey: config.S3SecretAccessKey,
			Endpoint:        config.S3Endpoint,
			UsePathStyle:    config.S3ForcePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}

		return client, nil
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", config.Provider)
	}
}
