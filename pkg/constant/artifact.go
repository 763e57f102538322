// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

import "time"

// Generated-artifact store defaults.
const (
	// DefaultArtifactRetention is how long a generated document stays downloadable.
	DefaultArtifactRetention = 24 * time.Hour

	// DefaultArtifactSweepInterval is the period between expiry sweeps.
	DefaultArtifactSweepInterval = 5 * time.Minute

	// ArtifactFilePermissions restricts generated files to the service user.
	ArtifactFilePermissions = 0o600

	// ArtifactDirPermissions restricts the artifact directory to the service user.
	ArtifactDirPermissions = 0o700
)

// External converter defaults.
const (
	// DefaultConverterBin is the LibreOffice binary used when CONVERTER_BIN is unset.
	DefaultConverterBin = "soffice"

	// DefaultConverterTimeout bounds a single conversion attempt.
	DefaultConverterTimeout = 30 * time.Second
)
