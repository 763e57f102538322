// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"time"

	"github.com/docstackhq/docstack/components/tms/internal/adapters/mongodb/template"
	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/model"
	"github.com/docstackhq/docstack/pkg/placeholder"

	"github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"go.opentelemetry.io/otel/attribute"
)

// CreateTemplate registers a new template: the source file goes to the content
// service first, then the metadata record is created with the scanned
// placeholder set. A failed metadata write rolls the uploaded document back.
func (uc *UseCase) CreateTemplate(ctx context.Context, input *model.CreateTemplateInput, fileName string, fileBytes []byte) (*model.Template, error) {
	logger, tracer, reqId, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.create_template")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.template_name", input.Name),
		attribute.String("app.request.file_name", fileName),
	)

	logger.Infof("Creating template")

	placeholders, err := placeholder.Scan(fileBytes, fileName)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to scan template placeholders", err)

		logger.Errorf("Error scanning template placeholders, Error: %v", err)

		return nil, pkg.ValidateBusinessError(constant.ErrFileContentInvalid, "template")
	}

	mimeType := placeholder.DetectKind(fileBytes, fileName).MimeType()

	document, err := uc.CMSClient.CreateDocument(ctx, fileName, mimeType, fileBytes)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to store template file", err)

		logger.Errorf("Error storing template file, Error: %v", err)

		return nil, err
	}

	defaultFormat := constant.FormatOriginal
	if !commons.IsNilOrEmpty(&input.DefaultFormat) {
		defaultFormat = pkg.NormalizeExportFormat(input.DefaultFormat)
	}

	now := time.Now().UTC()

	templateModel := &template.TemplateMongoDBModel{
		ID:            commons.GenerateUUIDv7(),
		Name:          input.Name,
		Description:   input.Description,
		Category:      input.Category,
		DocumentID:    document.ID,
		FileName:      fileName,
		Placeholders:  placeholders,
		DefaultFormat: defaultFormat,
		Lifecycle:     string(model.LifecycleActive),
		CreatedAt:     now,
		UpdatedAt:     now,
		DeletedAt:     nil,
	}

	result, err := uc.TemplateRepo.Create(ctx, templateModel)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to create template in repository", err)

		logger.Errorf("Error into creating a template, Error: %v", err)

		// Compensating transaction: remove the uploaded document so no orphaned file remains.
		if errDelete := uc.CMSClient.DeleteDocument(ctx, document.ID); errDelete != nil {
			logger.Errorf("Failed to roll back document %s after repository failure. Error: %s", document.ID.String(), errDelete.Error())
		}

		return nil, err
	}

	return result, nil
}
