// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

import "time"

// RabbitMQ Consumer Retry Configuration
const (
	// MaxMessageRetries is the maximum number of retry attempts before sending to DLQ.
	MaxMessageRetries = 5

	// RetryInitialBackoff is the base delay for exponential backoff calculation.
	RetryInitialBackoff = 1 * time.Second

	// RetryMaxBackoff is the upper bound for the backoff delay.
	RetryMaxBackoff = 30 * time.Second

	// RetryJitterMax is the maximum random jitter added to backoff to prevent thundering herd.
	RetryJitterMax = 500 * time.Millisecond

	// RetryCountHeader is the RabbitMQ message header key for tracking retry attempts.
	RetryCountHeader = "x-retry-count"

	// RetryFailureReasonHeader is the RabbitMQ message header key for tracking the last failure reason.
	RetryFailureReasonHeader = "x-failure-reason"

	// RetryFailureReasonMaxLen is the maximum length for the failure reason stored in message headers.
	// Truncation prevents leaking internal infrastructure details (e.g., connection strings from DB driver errors).
	RetryFailureReasonMaxLen = 256

	// DefaultWorkerCount is the number of concurrent workers consuming each queue.
	DefaultWorkerCount = 5

	// DefaultPrefetchCount is the per-channel QoS prefetch applied before consuming.
	DefaultPrefetchCount = 10

	// ConnectionMonitorInterval is how often the background monitor checks the
	// broker connection and triggers reconnection when it is dead.
	ConnectionMonitorInterval = 10 * time.Second
)

// Circuit Breaker Configuration
const (
	// CircuitBreakerThreshold is the number of consecutive failures before the breaker opens.
	CircuitBreakerThreshold = 5

	// CircuitBreakerMaxRequests is the number of probe requests allowed while half-open.
	CircuitBreakerMaxRequests = 3

	// CircuitBreakerInterval is the cyclic period for clearing counts while closed.
	CircuitBreakerInterval = 60 * time.Second

	// CircuitBreakerTimeout is how long the breaker stays open before probing.
	CircuitBreakerTimeout = 30 * time.Second

	// CircuitBreakerStateClosed is the reported state for a healthy upstream.
	CircuitBreakerStateClosed = "closed"

	// CircuitBreakerStateOpen is the reported state for a fast-failing upstream.
	CircuitBreakerStateOpen = "open"

	// CircuitBreakerStateHalfOpen is the reported state while recovery is probed.
	CircuitBreakerStateHalfOpen = "half-open"
)

// RabbitMQ Producer Retry Configuration
const (
	// ProducerMaxRetries is the maximum number of publish retry attempts before giving up.
	ProducerMaxRetries = 5

	// ProducerInitialBackoff is the initial delay before the first retry attempt.
	ProducerInitialBackoff = 500 * time.Millisecond

	// ProducerMaxBackoff is the upper bound for the producer retry backoff delay.
	ProducerMaxBackoff = 10 * time.Second

	// ProducerBackoffFactor is the multiplier applied to the backoff on each successive retry.
	ProducerBackoffFactor = 2.0
)
