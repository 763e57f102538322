// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"

	"github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// GetPlaceholders returns the distinct placeholder tokens of a template in the
// order they appear in the source document. The set is scanned once at upload
// time; stored documents are immutable so it never goes stale.
func (uc *UseCase) GetPlaceholders(ctx context.Context, id uuid.UUID) ([]string, error) {
	logger, tracer, reqId, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.get_placeholders")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.template_id", id.String()),
	)

	logger.Infof("Retrieving placeholders for template %v.", id)

	templateModel, err := uc.GetTemplateByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if templateModel.Placeholders == nil {
		return []string{}, nil
	}

	return templateModel.Placeholders, nil
}
