// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"github.com/docstackhq/docstack/components/tms/internal/services"
	"github.com/docstackhq/docstack/pkg/model"
	"github.com/docstackhq/docstack/pkg/net/http"

	"github.com/LerianStudio/lib-commons/v3/commons"
	commonsHttp "github.com/LerianStudio/lib-commons/v3/commons/net/http"
	"github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GenerationHandler exposes the document generation endpoints.
type GenerationHandler struct {
	Service *services.UseCase
}

// CreateGeneration is a method that generates a document from a template.
//
//	@Summary		Generate a document
//	@Description	Generate a document from a template with the given placeholder values and embeds
//	@Tags			Generations
//	@Accept			json
//	@Produce		json
//	@Param			id					path		string					true	"Template ID"
//	@Param			X-Idempotency-Key	header		string					false	"Deduplication key; repeated requests under the same key replay the first response"
//	@Param			generation			body		model.GenerationInput	true	"Generation Input"
//	@Success		201					{object}	model.GenerationResponse
//	@Router			/v1/templates/{id}/generations [post]
func (gh *GenerationHandler) CreateGeneration(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.create_generation")
	defer span.End()

	c.SetUserContext(ctx)

	templateID := c.Locals("id").(uuid.UUID)
	payload := p.(*model.GenerationInput)

	logger.Infof("Request to generate a document for template %s", templateID)

	resp, replayed, err := gh.Service.GenerateDocument(ctx, templateID, payload)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to generate document", err)

		return http.WithError(c, err)
	}

	if replayed {
		logger.Infof("Replayed generation %s for template %s", resp.GenerationID, templateID)

		return commonsHttp.OK(c, resp)
	}

	logger.Infof("Successfully generated document %s for template %s", resp.GenerationID, templateID)

	return commonsHttp.Created(c, resp)
}

// DownloadGeneration is a method that streams a generated document back to the caller.
//
//	@Summary		Download a generated document
//	@Description	Download a generated document while it is inside its retention window
//	@Tags			Generations
//	@Produce		octet-stream
//	@Param			id	path	string	true	"Generation ID"
//	@Success		200	{file}	binary
//	@Router			/v1/generations/{id}/download [get]
func (gh *GenerationHandler) DownloadGeneration(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.download_generation")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)
	logger.Infof("Request to download generation %s", id)

	record, data, err := gh.Service.DownloadGeneration(ctx, id)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to download generation", err)

		logger.Errorf("Failed to download generation %s, Error: %s", id, err.Error())

		return http.WithError(c, err)
	}

	c.Set(fiber.HeaderContentType, record.MimeType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+record.FileName+`"`)
	c.Set("X-Template-Id", record.TemplateID.String())

	return c.Status(fiber.StatusOK).Send(data)
}
