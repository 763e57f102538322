// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

import "time"

type contextKey string

const (
	// IdempotencyKeyPrefix is the Redis key prefix for generation idempotency locks.
	IdempotencyKeyPrefix = "idempotency"

	// IdempotencyTTL is the time-to-live for idempotency keys (24 hours).
	IdempotencyTTL = 24 * time.Hour

	// IdempotencyKeyCtx is the context key for client-provided X-Idempotency-Key header values.
	IdempotencyKeyCtx = contextKey("idempotency_key")

	// IdempotencyReplayedCtx is the context key for signaling a replayed idempotent response
	// from the service layer back to the handler.
	IdempotencyReplayedCtx = contextKey("idempotency_replayed")
)
