// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/model"

	"github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// DeleteTemplateByID soft deletes a template from the repository. The stored
// source document stays in the content service; generations against the
// template stop immediately.
func (uc *UseCase) DeleteTemplateByID(ctx context.Context, id uuid.UUID) error {
	logger, tracer, reqId, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.delete_template_by_id")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.template_id", id.String()),
	)

	logger.Infof("Remove template for id: %s", id)

	current, err := uc.GetTemplateByID(ctx, id)
	if err != nil {
		return err
	}

	if !current.Lifecycle.CanTransitionTo(model.LifecycleDeleted) {
		return pkg.ValidateBusinessError(constant.ErrDocumentLifecycleInvalid, "", current.Lifecycle, model.LifecycleDeleted)
	}

	if err := uc.TemplateRepo.SoftDelete(ctx, id); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to delete template on repo by id", err)

		logger.Errorf("Error deleting template on repo by id: %v", err)

		return err
	}

	return nil
}
