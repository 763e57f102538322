// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

import (
	"time"

	"github.com/google/uuid"
)

// EmbedInput describes one child template to render and splice into the
// parent at the given placeholder.
//
// swagger:model EmbedInput
// @Description EmbedInput is one embedded child template of a generation request.
type EmbedInput struct {
	EmbedTemplateID     string            `json:"embedTemplateId" validate:"required,uuid" example:"00000000-0000-0000-0000-000000000000"`
	EmbedPlaceholder    string            `json:"embedPlaceholder" validate:"required" example:"Terms"`
	EmbedTemplateValues map[string]string `json:"embedTemplateValues"`
} // @name EmbedInput

// GenerationInput is a struct designed to encapsulate request generation payload data.
//
// swagger:model GenerationInput
// @Description GenerationInput is the input payload to generate a document from a template.
type GenerationInput struct {
	Values       map[string]string `json:"values"`
	ExportFormat string            `json:"exportFormat" validate:"omitempty,oneof=original word html emailhtml pdf" example:"pdf"`
	Embeds       []EmbedInput      `json:"embeds" validate:"omitempty,dive"`
} // @name GenerationInput

// GenerationResponse is a struct designed to encapsulate response payload data.
//
// swagger:model GenerationResponse
// @Description GenerationResponse describes the generated artifact.
type GenerationResponse struct {
	GenerationID              uuid.UUID `json:"generationId" example:"00000000-0000-0000-0000-000000000000"`
	TemplateID                uuid.UUID `json:"templateId" example:"00000000-0000-0000-0000-000000000000"`
	FileName                  string    `json:"fileName" example:"invoice.pdf"`
	FileSizeBytes             int64     `json:"fileSizeBytes" example:"10240"`
	ExportFormat              string    `json:"exportFormat" example:"pdf"`
	ExpiresAt                 time.Time `json:"expiresAt"`
	ProcessedPlaceholderCount int       `json:"processedPlaceholderCount" example:"4"`
	DownloadURL               string    `json:"downloadUrl" example:"/v1/generations/00000000-0000-0000-0000-000000000000/download"`
} // @name GenerationResponse
