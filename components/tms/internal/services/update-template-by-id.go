// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"time"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/model"
	"github.com/docstackhq/docstack/pkg/placeholder"

	"github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.opentelemetry.io/otel/attribute"
)

// UpdateTemplateByID updates an existent template's metadata. When fileBytes
// is non-empty the source document is replaced: the new file is scanned for
// placeholders, stored in the content service and swapped in atomically with
// the metadata update; the previous document is removed afterwards.
func (uc *UseCase) UpdateTemplateByID(ctx context.Context, id uuid.UUID, input *model.UpdateTemplateInput, fileName string, fileBytes []byte) (*model.Template, error) {
	logger, tracer, reqId, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.update_template")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.template_id", id.String()),
	)

	logger.Infof("Updating template")

	current, err := uc.GetTemplateByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setFields := bson.M{}

	if !commons.IsNilOrEmpty(&input.Name) {
		setFields["name"] = input.Name
	}

	if !commons.IsNilOrEmpty(&input.Description) {
		setFields["description"] = input.Description
	}

	if !commons.IsNilOrEmpty(&input.Category) {
		setFields["category"] = input.Category
	}

	if !commons.IsNilOrEmpty(&input.DefaultFormat) {
		if !pkg.IsExportFormatValid(&input.DefaultFormat) {
			logger.Errorf("Error invalid defaultFormat value %v", input.DefaultFormat)

			return nil, pkg.ValidateBusinessError(constant.ErrInvalidExportFormat, "", input.DefaultFormat)
		}

		setFields["default_format"] = pkg.NormalizeExportFormat(input.DefaultFormat)
	}

	lifecycle := string(input.Lifecycle)
	if !commons.IsNilOrEmpty(&lifecycle) {
		if !current.Lifecycle.CanTransitionTo(input.Lifecycle) {
			logger.Errorf("Error invalid lifecycle transition from %s to %s", current.Lifecycle, input.Lifecycle)

			return nil, pkg.ValidateBusinessError(constant.ErrDocumentLifecycleInvalid, "", current.Lifecycle, input.Lifecycle)
		}

		setFields["lifecycle"] = lifecycle
	}

	var newDocumentID uuid.UUID

	if len(fileBytes) > 0 {
		documentID, placeholders, errUpload := uc.replaceTemplateSource(ctx, fileName, fileBytes)
		if errUpload != nil {
			libOpentelemetry.HandleSpanError(&span, "Failed to replace template source", errUpload)

			return nil, errUpload
		}

		newDocumentID = documentID
		setFields["document_id"] = documentID
		setFields["file_name"] = fileName
		setFields["placeholders"] = placeholders
	}

	setFields["updated_at"] = time.Now().UTC()

	updateFields := bson.M{"$set": setFields}

	if errUpdate := uc.TemplateRepo.Update(ctx, id, &updateFields); errUpdate != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to update template on repo", errUpdate)

		logger.Errorf("Error updating template, Error: %v", errUpdate)

		if newDocumentID != uuid.Nil {
			// Compensating transaction: remove the freshly uploaded document.
			if errDelete := uc.CMSClient.DeleteDocument(ctx, newDocumentID); errDelete != nil {
				logger.Errorf("Failed to roll back document %s after repository failure. Error: %s", newDocumentID.String(), errDelete.Error())
			}
		}

		return nil, errUpdate
	}

	if newDocumentID != uuid.Nil {
		// The old source is unreachable once the swap lands; its removal is
		// best effort.
		if errDelete := uc.CMSClient.DeleteDocument(ctx, current.DocumentID); errDelete != nil {
			logger.Warnf("Failed to remove replaced document %s: %v", current.DocumentID, errDelete)
		}
	}

	return uc.GetTemplateByID(ctx, id)
}

// replaceTemplateSource scans the new source file and stores it in the
// content service, returning the new document id and placeholder set.
func (uc *UseCase) replaceTemplateSource(ctx context.Context, fileName string, fileBytes []byte) (uuid.UUID, []string, error) {
	logger := commons.NewLoggerFromContext(ctx)

	placeholders, err := placeholder.Scan(fileBytes, fileName)
	if err != nil {
		logger.Errorf("Error scanning replacement template placeholders, Error: %v", err)

		return uuid.Nil, nil, pkg.ValidateBusinessError(constant.ErrFileContentInvalid, "template")
	}

	mimeType := placeholder.DetectKind(fileBytes, fileName).MimeType()

	document, err := uc.CMSClient.CreateDocument(ctx, fileName, mimeType, fileBytes)
	if err != nil {
		logger.Errorf("Error storing replacement template file, Error: %v", err)

		return uuid.Nil, nil, err
	}

	return document.ID, placeholders, nil
}
