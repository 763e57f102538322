// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

const ApplicationName = "docstack"

// ErrFileAccepted is the Fiber error message when no file is associated with the given form key.
const ErrFileAccepted = "there is no uploaded file associated with the given key"

// IdempotencyKeyHeader carries the caller-supplied deduplication key on generation requests.
const IdempotencyKeyHeader = "X-Idempotency-Key"

// FormFileField is the multipart form key for uploaded documents.
const FormFileField = "file"

// DefaultMaxUploadSizeBytes caps multipart uploads when MAX_UPLOAD_SIZE_BYTES is unset.
const DefaultMaxUploadSizeBytes = 25 * 1024 * 1024

// RedactPlaceholder replaces credentials in connection strings before logging.
const RedactPlaceholder = "REDACTED"
