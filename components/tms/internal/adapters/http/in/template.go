// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"strings"

	"github.com/docstackhq/docstack/components/tms/internal/services"
	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/model"
	"github.com/docstackhq/docstack/pkg/net/http"

	"github.com/LerianStudio/lib-commons/v3/commons"
	commonsHttp "github.com/LerianStudio/lib-commons/v3/commons/net/http"
	"github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// TemplateHandler exposes the template management endpoints.
type TemplateHandler struct {
	Service *services.UseCase
}

// CreateTemplate is a method that creates a template.
//
//	@Summary		Create a Template
//	@Description	Create a Template from an uploaded source document and metadata
//	@Tags			Templates
//	@Accept			mpfd
//	@Produce		json
//	@Param			file			formData	file	true	"Template source document (.docx, .html, .txt)"
//	@Param			name			formData	string	true	"Template name"
//	@Param			description		formData	string	false	"Description of the template"
//	@Param			category		formData	string	false	"Category used for listing filters"
//	@Param			defaultFormat	formData	string	false	"Default export format (original, word, html, emailhtml, pdf)"
//	@Success		201				{object}	model.Template
//	@Router			/v1/templates [post]
func (th *TemplateHandler) CreateTemplate(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.create_template")
	defer span.End()

	c.SetUserContext(ctx)

	logger.Info("Request to create template")

	input := &model.CreateTemplateInput{
		Name:          c.FormValue("name"),
		Description:   c.FormValue("description"),
		Category:      c.FormValue("category"),
		DefaultFormat: c.FormValue("defaultFormat"),
	}

	if commons.IsNilOrEmpty(&input.Name) {
		return http.WithError(c, pkg.ValidateBusinessError(constant.ErrMissingFieldsInRequest, "", "name"))
	}

	if !commons.IsNilOrEmpty(&input.DefaultFormat) && !pkg.IsExportFormatValid(&input.DefaultFormat) {
		return http.WithError(c, pkg.ValidateBusinessError(constant.ErrInvalidExportFormat, "", input.DefaultFormat))
	}

	fileHeader, err := c.FormFile(constant.FormFileField)
	if err != nil {
		return http.WithError(c, pkg.ValidateBusinessError(constant.ErrInvalidFileUploaded, "", err))
	}

	if errValidate := http.ValidateUploadedFile(fileHeader, maxUploadSizeBytes(), constant.DefaultAllowedSourceExtensions); errValidate != nil {
		logger.Errorf("Error to validate uploaded file, Error: %v", errValidate)

		return http.WithError(c, errValidate)
	}

	fileBytes, err := http.ReadMultipartFile(fileHeader)
	if err != nil {
		return http.WithError(c, err)
	}

	templateOut, err := th.Service.CreateTemplate(ctx, input, fileHeader.Filename, fileBytes)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to create template on command", err)

		return http.WithError(c, err)
	}

	logger.Infof("Successfully created template %v", templateOut.ID)

	return commonsHttp.Created(c, templateOut)
}

// UpdateTemplateByID is a method that update a Template by a given id.
//
//	@Summary		Update a template
//	@Description	Update a template's metadata with the input payload. A multipart request carrying a file field replaces the source document and re-runs the placeholder scanner.
//	@Tags			Templates
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string						true	"Template ID"
//	@Param			template	body		model.UpdateTemplateInput	true	"Template Input"
//	@Success		200			{object}	model.Template
//	@Router			/v1/templates/{id} [patch]
func (th *TemplateHandler) UpdateTemplateByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.update_template")
	defer span.End()

	c.SetUserContext(ctx)

	id := c.Locals("id").(uuid.UUID)
	logger.Infof("Initiating update of Template with ID: %s", id)

	payload := &model.UpdateTemplateInput{}

	var (
		fileName  string
		fileBytes []byte
	)

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		payload.Name = c.FormValue("name")
		payload.Description = c.FormValue("description")
		payload.Category = c.FormValue("category")
		payload.DefaultFormat = c.FormValue("defaultFormat")
		payload.Lifecycle = model.Lifecycle(c.FormValue("lifecycle"))

		if fileHeader, errFile := c.FormFile(constant.FormFileField); errFile == nil {
			if errValidate := http.ValidateUploadedFile(fileHeader, maxUploadSizeBytes(), constant.DefaultAllowedSourceExtensions); errValidate != nil {
				logger.Errorf("Error to validate uploaded file, Error: %v", errValidate)

				return http.WithError(c, errValidate)
			}

			data, errRead := http.ReadMultipartFile(fileHeader)
			if errRead != nil {
				return http.WithError(c, errRead)
			}

			fileName = fileHeader.Filename
			fileBytes = data
		}
	} else {
		if err := c.BodyParser(payload); err != nil {
			return http.WithError(c, pkg.ValidateBusinessError(constant.ErrBadRequest, "", err))
		}
	}

	if err := http.ValidateStruct(payload); err != nil {
		return http.WithError(c, err)
	}

	templateUpdated, err := th.Service.UpdateTemplateByID(ctx, id, payload, fileName, fileBytes)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to update template", err)

		logger.Errorf("Failed to update Template with ID: %s, Error: %s", id, err.Error())

		return http.WithError(c, err)
	}

	logger.Infof("Successfully updated Template with ID: %s", id)

	return commonsHttp.OK(c, templateUpdated)
}

// GetTemplateByID is a method that retrieves a Template information by a given id.
//
//	@Summary		Get template
//	@Description	Get a template by id
//	@Tags			Templates
//	@Produce		json
//	@Param			id	path		string	true	"Template ID"
//	@Success		200	{object}	model.Template
//	@Router			/v1/templates/{id} [get]
func (th *TemplateHandler) GetTemplateByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.get_template")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)
	logger.Infof("Initiating get a Template with ID: %s", id)

	templateModel, err := th.Service.GetTemplateByID(ctx, id)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to retrieve template on query", err)

		logger.Errorf("Failed to retrieve Template with ID: %s, Error: %s", id, err.Error())

		return http.WithError(c, err)
	}

	logger.Infof("Successfully retrieve Template with ID: %s", id)

	return commonsHttp.OK(c, templateModel)
}

// GetAllTemplates is a method that recovery all Templates information.
//
//	@Summary		Get all templates
//	@Description	List all the templates
//	@Tags			Templates
//	@Produce		json
//	@Param			limit			query		int		false	"Limit"	default(10)
//	@Param			page			query		int		false	"Page"	default(1)
//	@Param			category		query		string	false	"Category filter"
//	@Param			lifecycle		query		string	false	"Lifecycle filter (active, inactive)"
//	@Param			export_format	query		string	false	"Default export format filter"
//	@Param			cursor			query		string	false	"Opaque cursor returned by a previous page"
//	@Success		200				{object}	model.Pagination{items=[]model.Template,page=int,limit=int,total=int}
//	@Router			/v1/templates [get]
func (th *TemplateHandler) GetAllTemplates(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.get_all_templates")
	defer span.End()

	headerParams, err := http.ValidateParameters(c.Queries())
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to validate query parameters", err)

		logger.Errorf("Failed to validate query parameters, Error: %s", err.Error())

		return http.WithError(c, err)
	}

	pagination := model.Pagination{
		Limit: headerParams.Limit,
		Page:  headerParams.Page,
	}

	logger.Infof("Initiating retrieval all templates")

	templates, err := th.Service.GetAllTemplates(ctx, *headerParams)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to retrieve all Templates on query", err)

		logger.Errorf("Failed to retrieve all Templates, Error: %s", err.Error())

		return http.WithError(c, err)
	}

	logger.Infof("Successfully retrieved all Templates")

	pagination.SetItems(templates)
	pagination.SetTotal(len(templates))

	// A full page may have a successor; hand back a cursor seeking past it.
	if len(templates) == headerParams.Limit {
		last := templates[len(templates)-1]
		pagination.NextCursor = http.EncodeCursor(http.Cursor{ID: last.ID.String(), PointsNext: true})
	}

	return commonsHttp.OK(c, pagination)
}

// DeleteTemplateByID is a method that removes a template information by a given id.
//
//	@Summary		SoftDelete a Template by ID
//	@Description	SoftDelete a Template with the input ID
//	@Tags			Templates
//	@Param			id	path	string	true	"Template ID"
//	@Success		204
//	@Router			/v1/templates/{id} [delete]
func (th *TemplateHandler) DeleteTemplateByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.delete_template_by_id")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)
	logger.Infof("Initiating removal of Template with ID: %s", id.String())

	if err := th.Service.DeleteTemplateByID(ctx, id); err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to remove template on database", err)

		logger.Errorf("Failed to remove Template with ID: %s, Error: %s", id.String(), err.Error())

		return http.WithError(c, err)
	}

	logger.Infof("Successfully removed Template with ID: %s", id.String())

	return commonsHttp.NoContent(c)
}

// GetPlaceholders is a method that lists the placeholder tokens of a template.
//
//	@Summary		Get template placeholders
//	@Description	List the distinct placeholder tokens of a template in document order
//	@Tags			Templates
//	@Produce		json
//	@Param			id	path		string	true	"Template ID"
//	@Success		200	{object}	map[string][]string
//	@Router			/v1/templates/{id}/placeholders [get]
func (th *TemplateHandler) GetPlaceholders(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.get_placeholders")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)
	logger.Infof("Initiating get placeholders of Template with ID: %s", id)

	placeholders, err := th.Service.GetPlaceholders(ctx, id)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to retrieve placeholders on query", err)

		logger.Errorf("Failed to retrieve placeholders of Template with ID: %s, Error: %s", id, err.Error())

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, fiber.Map{"placeholders": placeholders})
}

// maxUploadSizeBytes reads the upload cap from the environment with a sane default.
func maxUploadSizeBytes() int64 {
	return pkg.GetenvIntOrDefault("MAX_UPLOAD_SIZE_BYTES", constant.DefaultMaxUploadSizeBytes)
}
