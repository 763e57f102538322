// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

import (
	"time"

	"github.com/google/uuid"
)

// Document represents stored file content: a metadata row plus a blob in
// object storage addressed by BlobKey.
//
// swagger:model Document
// @Description Document is a stored file with its metadata.
type Document struct {
	ID          uuid.UUID  `json:"id" example:"00000000-0000-0000-0000-000000000000"`
	Name        string     `json:"name" example:"invoice.docx"`
	ContentType string     `json:"contentType" example:"application/vnd.openxmlformats-officedocument.wordprocessingml.document"`
	SizeBytes   int64      `json:"sizeBytes" example:"10240"`
	BlobKey     string     `json:"-"`
	Lifecycle   Lifecycle  `json:"lifecycle" example:"active"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
} // @name Document
