// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"github.com/docstackhq/docstack/components/cms/internal/services"
	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/net/http"

	"github.com/LerianStudio/lib-commons/v3/commons"
	commonsHttp "github.com/LerianStudio/lib-commons/v3/commons/net/http"
	"github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// DocumentHandler struct contains a cms use case for managing document related operations.
type DocumentHandler struct {
	Service *services.UseCase
}

// CreateDocument is a method that stores an uploaded file.
//
//	@Summary		Upload a document
//	@Description	Store a file as an object storage blob plus a metadata row
//	@Tags			Documents
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"File to store"
//	@Success		201		{object}	model.Document
//	@Router			/v1/documents [post]
func (dh *DocumentHandler) CreateDocument(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.create_document")
	defer span.End()

	c.SetUserContext(ctx)

	fileHeader, err := c.FormFile(constant.FormFileField)
	if err != nil {
		err := pkg.ValidateBusinessError(constant.ErrInvalidFileUploaded, "")

		opentelemetry.HandleSpanError(&span, "Missing file in request", err)

		return http.WithError(c, err)
	}

	if err := http.ValidateUploadedFile(fileHeader, maxUploadSizeBytes(), constant.DefaultAllowedSourceExtensions); err != nil {
		opentelemetry.HandleSpanError(&span, "Rejected uploaded file", err)

		return http.WithError(c, err)
	}

	fileBytes, err := http.ReadMultipartFile(fileHeader)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to read uploaded file", err)

		return http.WithError(c, err)
	}

	contentType := fileHeader.Header.Get(fiber.HeaderContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	logger.Infof("Request to store document %s (%d bytes)", fileHeader.Filename, fileHeader.Size)

	doc, err := dh.Service.CreateDocument(ctx, fileHeader.Filename, contentType, fileBytes)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to store document", err)

		logger.Errorf("Failed to store document, Error: %s", err.Error())

		return http.WithError(c, err)
	}

	logger.Infof("Successfully stored document %s", doc.ID)

	return commonsHttp.Created(c, doc)
}

// GetDocumentByID is a method that returns document metadata by id.
//
//	@Summary		Get document metadata
//	@Description	Get a document's metadata row by its id
//	@Tags			Documents
//	@Produce		json
//	@Param			id	path		string	true	"Document ID"
//	@Success		200	{object}	model.Document
//	@Router			/v1/documents/{id} [get]
func (dh *DocumentHandler) GetDocumentByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.get_document_by_id")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)
	logger.Infof("Request to retrieve document %s", id)

	doc, err := dh.Service.GetDocumentByID(ctx, id)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to retrieve document", err)

		logger.Errorf("Failed to retrieve document %s, Error: %s", id, err.Error())

		return http.WithError(c, err)
	}

	logger.Infof("Successfully retrieved document %s", id)

	return commonsHttp.OK(c, doc)
}

// DownloadDocumentContent is a method that streams the stored bytes back to the caller.
//
//	@Summary		Download document content
//	@Description	Download the blob bytes of a stored document
//	@Tags			Documents
//	@Produce		octet-stream
//	@Param			id	path	string	true	"Document ID"
//	@Success		200	{file}	binary
//	@Router			/v1/documents/{id}/content [get]
func (dh *DocumentHandler) DownloadDocumentContent(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.download_document_content")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)
	logger.Infof("Request to download document %s", id)

	doc, data, err := dh.Service.DownloadDocument(ctx, id)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to download document", err)

		logger.Errorf("Failed to download document %s, Error: %s", id, err.Error())

		return http.WithError(c, err)
	}

	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.Name+`"`)

	return c.Status(fiber.StatusOK).Send(data)
}

// DeleteDocumentByID is a method that soft deletes a document.
//
//	@Summary		Delete a document
//	@Description	Soft delete a document by its id
//	@Tags			Documents
//	@Param			id	path	string	true	"Document ID"
//	@Success		204
//	@Router			/v1/documents/{id} [delete]
func (dh *DocumentHandler) DeleteDocumentByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.delete_document_by_id")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)
	logger.Infof("Request to delete document %s", id)

	if err := dh.Service.DeleteDocumentByID(ctx, id); err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to delete document", err)

		logger.Errorf("Failed to delete document %s, Error: %s", id, err.Error())

		return http.WithError(c, err)
	}

	logger.Infof("Successfully deleted document %s", id)

	return commonsHttp.NoContent(c)
}

// maxUploadSizeBytes resolves the upload limit from the environment with a sane default.
func maxUploadSizeBytes() int64 {
	return pkg.GetenvIntOrDefault("MAX_UPLOAD_SIZE_BYTES", constant.DefaultMaxUploadSizeBytes)
}
