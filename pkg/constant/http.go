// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

import "time"

// HTTP Pagination Defaults
const (
	DefaultPaginationLimit    = 10
	DefaultPaginationPage     = 1
	DefaultMaxPaginationLimit = 100
)

// Upstream HTTP Clients
const (
	// UpstreamCMS names the content service circuit breaker.
	UpstreamCMS = "cms"

	// UpstreamTMS names the template service circuit breaker.
	UpstreamTMS = "tms"

	// UpstreamHTTPTimeout bounds a single upstream request. Generation calls
	// include a conversion, so this sits above the converter timeout.
	UpstreamHTTPTimeout = 60 * time.Second
)
