// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"

	"github.com/docstackhq/docstack/pkg/artifact"

	"github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// DownloadGeneration fetches a generated document from the artifact store.
// Unknown and expired generations both surface as not-found to the caller.
func (uc *UseCase) DownloadGeneration(ctx context.Context, id uuid.UUID) (*artifact.Record, []byte, error) {
	logger, tracer, reqId, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.download_generation")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.generation_id", id.String()),
	)

	logger.Infof("Downloading generation %s", id)

	record, data, err := uc.ArtifactStore.Retrieve(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to retrieve generation", err)

		logger.Errorf("Error retrieving generation %s: %v", id, err)

		return nil, nil, err
	}

	return record, data, nil
}
