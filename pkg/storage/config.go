// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package storage

// Config holds configuration for all storage providers
type Config struct {
	// Storage provider selection
	Provider string // "s3", "minio", or "" (defaults to minio)

	// S3 Configuration
	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Endpoint        string // Optional: for MinIO, LocalStack, etc.
	S3ForcePathStyle  bool   // Optional: for MinIO, LocalStack, etc.

	// MinIO Configuration
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}
