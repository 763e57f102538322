// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

import (
	"time"

	"github.com/google/uuid"
)

// Template represents a reusable document template backed by a CMS document.
//
// swagger:model Template
// @Description Template is a document template with its declared placeholder set.
type Template struct {
	ID            uuid.UUID  `json:"id" bson:"_id" example:"00000000-0000-0000-0000-000000000000"`
	Name          string     `json:"name" bson:"name" example:"Invoice"`
	Description   string     `json:"description,omitempty" bson:"description" example:"Monthly invoice template"`
	Category      string     `json:"category,omitempty" bson:"category" example:"billing"`
	DocumentID    uuid.UUID  `json:"documentId" bson:"document_id" example:"00000000-0000-0000-0000-000000000000"`
	FileName      string     `json:"fileName" bson:"file_name" example:"invoice.docx"`
	Placeholders  []string   `json:"placeholders" bson:"placeholders" example:"CustomerName,InvoiceDate"`
	DefaultFormat string     `json:"defaultFormat,omitempty" bson:"default_format" example:"pdf"`
	SuccessCount  int64      `json:"successCount" bson:"success_count" example:"10"`
	FailureCount  int64      `json:"failureCount" bson:"failure_count" example:"1"`
	Lifecycle     Lifecycle  `json:"lifecycle" bson:"lifecycle" example:"active"`
	CreatedAt     time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" bson:"updated_at"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty" bson:"deleted_at"`
} // @name Template

// CreateTemplateInput is a struct designed to encapsulate request create payload data.
//
// swagger:model CreateTemplateInput
// @Description CreateTemplateInput is the input payload to create a template.
type CreateTemplateInput struct {
	Name          string `json:"name" validate:"required,max=256" example:"Invoice"`
	Description   string `json:"description" validate:"max=1024" example:"Monthly invoice template"`
	Category      string `json:"category" validate:"max=128" example:"billing"`
	DefaultFormat string `json:"defaultFormat" validate:"omitempty,oneof=original word html emailhtml pdf" example:"pdf"`
} // @name CreateTemplateInput

// UpdateTemplateInput is a struct designed to encapsulate request update payload data.
//
// swagger:model UpdateTemplateInput
// @Description UpdateTemplateInput is the input payload to update a template.
type UpdateTemplateInput struct {
	Name          string    `json:"name" validate:"omitempty,max=256" example:"Invoice"`
	Description   string    `json:"description" validate:"omitempty,max=1024" example:"Monthly invoice template"`
	Category      string    `json:"category" validate:"omitempty,max=128" example:"billing"`
	DefaultFormat string    `json:"defaultFormat" validate:"omitempty,oneof=original word html emailhtml pdf" example:"pdf"`
	Lifecycle     Lifecycle `json:"lifecycle" validate:"omitempty,oneof=active inactive" example:"inactive"`
} // @name UpdateTemplateInput

// CounterKind selects which template counter IncrementCounter bumps.
type CounterKind string

const (
	CounterSuccess CounterKind = "success"
	CounterFailure CounterKind = "failure"
)
