// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

import "github.com/google/uuid"

// SendMessageInput is a struct designed to encapsulate request send payload data.
//
// swagger:model SendMessageInput
// @Description SendMessageInput is the input payload to queue an outbound message.
type SendMessageInput struct {
	To                    []string          `json:"to" validate:"required,min=1,dive,email" example:"billing@example.com"`
	Subject               string            `json:"subject" validate:"required,max=512" example:"Invoice {{InvoiceNumber}}"`
	TemplateID            string            `json:"templateId" validate:"required,uuid" example:"00000000-0000-0000-0000-000000000000"`
	TemplateValues        map[string]string `json:"templateValues"`
	AttachmentDocumentIDs []string          `json:"attachmentDocumentIds" validate:"omitempty,dive,uuid"`
} // @name SendMessageInput

// MessageJob is the queue payload carried through RabbitMQ between the mailer
// API and its consumer.
//
// swagger:model MessageJob
// @Description MessageJob represents a message job sent through RabbitMQ.
type MessageJob struct {
	MessageID             uuid.UUID         `json:"messageId" example:"00000000-0000-0000-0000-000000000000"`
	To                    []string          `json:"to"`
	Subject               string            `json:"subject"`
	TemplateID            uuid.UUID         `json:"templateId" example:"00000000-0000-0000-0000-000000000000"`
	TemplateValues        map[string]string `json:"templateValues"`
	AttachmentDocumentIDs []uuid.UUID       `json:"attachmentDocumentIds"`
} // @name MessageJob

// Attachment is one file attached to a composed message.
type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Message is a fully composed outbound message handed to the dispatcher.
type Message struct {
	ID          uuid.UUID
	To          []string
	Subject     string
	BodyHTML    []byte
	Attachments []Attachment
}
