// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/docstackhq/docstack/components/cms/internal/adapters/postgres/document"
	"github.com/docstackhq/docstack/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
)

// CreateDocument uploads the blob to object storage and inserts the metadata
// row. If the metadata insert fails the blob is deleted again so no orphaned
// bytes are left behind.
func (uc *UseCase) CreateDocument(ctx context.Context, fileName, contentType string, data []byte) (*model.Document, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.create_document")
	defer span.End()

	id := libCommons.GenerateUUIDv7()
	blobKey := fmt.Sprintf("documents/%s/%s", id, fileName)

	logger.Infof("Storing document %s (%d bytes) at %s", fileName, len(data), blobKey)

	if _, err := uc.Storage.Upload(ctx, blobKey, bytes.NewReader(data), contentType); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to upload blob", err)

		logger.Errorf("Failed to upload blob %s: %v", blobKey, err)

		return nil, err
	}

	now := time.Now().UTC()

	record := &document.DocumentPostgreSQLModel{
		ID:          id,
		Name:        fileName,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		BlobKey:     blobKey,
		Lifecycle:   string(model.LifecycleActive),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := uc.DocumentRepo.Create(ctx, record)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to insert document metadata", err)

		// Compensating transaction: the blob was already written, remove it
		// so a failed insert leaves no orphaned bytes.
		if delErr := uc.Storage.Delete(ctx, blobKey); delErr != nil {
			logger.Errorf("Failed to roll back blob %s after metadata failure: %v", blobKey, delErr)
		}

		return nil, err
	}

	logger.Infof("Successfully stored document %s", created.ID)

	return created, nil
}
