// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package template

import (
	"time"

	"github.com/docstackhq/docstack/pkg/model"

	"github.com/google/uuid"
)

// TemplateMongoDBModel represents the MongoDB model for a template
type TemplateMongoDBModel struct {
	ID            uuid.UUID  `bson:"_id"`
	Name          string     `bson:"name"`
	Description   string     `bson:"description"`
	Category      string     `bson:"category"`
	DocumentID    uuid.UUID  `bson:"document_id"`
	FileName      string     `bson:"file_name"`
	Placeholders  []string   `bson:"placeholders"`
	DefaultFormat string     `bson:"default_format"`
	SuccessCount  int64      `bson:"success_count"`
	FailureCount  int64      `bson:"failure_count"`
	Lifecycle     string     `bson:"lifecycle"`
	CreatedAt     time.Time  `bson:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at"`
	DeletedAt     *time.Time `bson:"deleted_at"`
}

// ToEntity converts TemplateMongoDBModel to model.Template
func (tm *TemplateMongoDBModel) ToEntity() *model.Template {
	return &model.Template{
		ID:            tm.ID,
		Name:          tm.Name,
		Description:   tm.Description,
		Category:      tm.Category,
		DocumentID:    tm.DocumentID,
		FileName:      tm.FileName,
		Placeholders:  tm.Placeholders,
		DefaultFormat: tm.DefaultFormat,
		SuccessCount:  tm.SuccessCount,
		FailureCount:  tm.FailureCount,
		Lifecycle:     model.Lifecycle(tm.Lifecycle),
		CreatedAt:     tm.CreatedAt,
		UpdatedAt:     tm.UpdatedAt,
		DeletedAt:     tm.DeletedAt,
	}
}

// FromEntity converts model.Template to TemplateMongoDBModel
func (tm *TemplateMongoDBModel) FromEntity(t *model.Template) {
	tm.ID = t.ID
	tm.Name = t.Name
	tm.Description = t.Description
	tm.Category = t.Category
	tm.DocumentID = t.DocumentID
	tm.FileName = t.FileName
	tm.Placeholders = t.Placeholders
	tm.DefaultFormat = t.DefaultFormat
	tm.SuccessCount = t.SuccessCount
	tm.FailureCount = t.FailureCount
	tm.Lifecycle = string(t.Lifecycle)
	tm.CreatedAt = t.CreatedAt
	tm.UpdatedAt = t.UpdatedAt
	tm.DeletedAt = t.DeletedAt
}
