// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package document

import (
	"time"

	"github.com/docstackhq/docstack/pkg/model"

	"github.com/google/uuid"
)

// DocumentPostgreSQLModel represents the PostgreSQL row for a stored document.
type DocumentPostgreSQLModel struct {
	ID          uuid.UUID
	Name        string
	ContentType string
	SizeBytes   int64
	BlobKey     string
	Lifecycle   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// ToEntity converts DocumentPostgreSQLModel to model.Document
func (dm *DocumentPostgreSQLModel) ToEntity() *model.Document {
	return &model.Document{
		ID:          dm.ID,
		Name:        dm.Name,
		ContentType: dm.ContentType,
		SizeBytes:   dm.SizeBytes,
		BlobKey:     dm.BlobKey,
		Lifecycle:   model.Lifecycle(dm.Lifecycle),
		CreatedAt:   dm.CreatedAt,
		UpdatedAt:   dm.UpdatedAt,
		DeletedAt:   dm.DeletedAt,
	}
}

// FromEntity converts model.Document to DocumentPostgreSQLModel
func (dm *DocumentPostgreSQLModel) FromEntity(d *model.Document) {
	dm.ID = d.ID
	dm.Name = d.Name
	dm.ContentType = d.ContentType
	dm.SizeBytes = d.SizeBytes
	dm.BlobKey = d.BlobKey
	dm.Lifecycle = string(d.Lifecycle)
	dm.CreatedAt = d.CreatedAt
	dm.UpdatedAt = d.UpdatedAt
	dm.DeletedAt = d.DeletedAt
}
