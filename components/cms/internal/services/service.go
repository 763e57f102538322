// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package services implements the document storage operations exposed by CMS.
package services

import (
	"github.com/docstackhq/docstack/components/cms/internal/adapters/postgres/document"
	"github.com/docstackhq/docstack/pkg/storage"
)

// UseCase is a struct that aggregates various repositories for simplified access in use case implementation.
type UseCase struct {
	// DocumentRepo provides an abstraction on top of the document metadata data source.
	DocumentRepo document.Repository

	// Storage holds the blob bytes behind the object storage port.
	Storage storage.ObjectStorage
}
