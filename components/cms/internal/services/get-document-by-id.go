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

// GetDocumentByID fetches the metadata row for a document.
func (uc *UseCase) GetDocumentByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.get_document_by_id")
	defer span.End()

	logger.Infof("Retrieving document %s", id)

	doc, err := uc.DocumentRepo.FindByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to find document", err)

		if errors.Is(err, sql.ErrNoRows) {
			return nil, pkg.ValidateBusinessError(constant.ErrEntityNotFound, "", reflect.TypeOf(model.Document{}).Name())
		}

		return nil, err
	}

	return doc, nil
}
