// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"database/sql"
	"errors"
	"reflect"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
)

// DeleteDocumentByID soft deletes a document. The blob stays in object storage
// so templates that still reference it keep working until retention cleanup.
func (uc *UseCase) DeleteDocumentByID(ctx context.Context, id uuid.UUID) error {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.delete_document_by_id")
	defer span.End()

	logger.Infof("Deleting document %s", id)

	doc, err := uc.GetDocumentByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to find document", err)

		return err
	}

	if !doc.Lifecycle.CanTransitionTo(model.LifecycleDeleted) {
		err := pkg.ValidateBusinessError(constant.ErrDocumentLifecycleInvalid, "", doc.Lifecycle, model.LifecycleDeleted)

		libOpentelemetry.HandleSpanError(&span, "Invalid lifecycle transition", err)

		return err
	}

	if err := uc.DocumentRepo.SoftDelete(ctx, id); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to soft delete document", err)

		if errors.Is(err, sql.ErrNoRows) {
			return pkg.ValidateBusinessError(constant.ErrEntityNotFound, "", reflect.TypeOf(model.Document{}).Name())
		}

		return err
	}

	logger.Infof("Successfully deleted document %s", id)

	return nil
}
