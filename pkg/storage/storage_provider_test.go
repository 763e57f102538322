// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewObjectStorageUnsupportedProvider(t *testing.T) {
	_, err := NewObjectStorage(context.Background(), &Config{Provider: "ftp"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage provider")
}

func TestNewObjectStorageS3RequiresBucket(t *testing.T) {
	_, err := NewObjectStorage(context.Background(), &Config{Provider: "s3"})

	require.ErrorIs(t, err, ErrBucketRequired)
}

func TestNewObjectStorageMinioRequiresBucket(t *testing.T) {
	_, err := NewObjectStorage(context.Background(), &Config{
		Provider:      "minio",
		MinioEndpoint: "localhost:9000",
	})

	require.ErrorIs(t, err, ErrBucketRequired)
}

func TestNewObjectStorageMinioRequiresEndpoint(t *testing.T) {
	_, err := NewObjectStorage(context.Background(), &Config{
		Provider:    "minio",
		MinioBucket: "documents",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint")
}

func TestS3ClientKeyValidation(t *testing.T) {
	client := &S3Client{bucket: "documents"}

	_, err := client.Upload(context.Background(), "", nil, "text/plain")
	assert.ErrorIs(t, err, ErrKeyRequired)

	_, err = client.Download(context.Background(), "")
	assert.ErrorIs(t, err, ErrKeyRequired)

	err = client.Delete(context.Background(), "")
	assert.ErrorIs(t, err, ErrKeyRequired)

	_, err = client.Exists(context.Background(), "")
	assert.ErrorIs(t, err, ErrKeyRequired)
}
