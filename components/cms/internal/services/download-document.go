// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"io"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
)

// DownloadDocument returns the metadata row together with the blob bytes.
// A live metadata row whose blob is missing is reported as a storage
// inconsistency, not as a plain not-found.
func (uc *UseCase) DownloadDocument(ctx context.Context, id uuid.UUID) (*model.Document, []byte, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.download_document")
	defer span.End()

	doc, err := uc.GetDocumentByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to find document", err)

		return nil, nil, err
	}

	reader, err := uc.Storage.Download(ctx, doc.BlobKey)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to download blob", err)

		logger.Errorf("Document %s metadata exists but blob %s is unreadable: %v", id, doc.BlobKey, err)

		return nil, nil, pkg.ValidateBusinessError(constant.ErrStorageInconsistency, "", id)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to read blob", err)

		return nil, nil, pkg.ValidateBusinessError(constant.ErrStorageInconsistency, "", id)
	}

	logger.Infof("Downloaded document %s (%d bytes)", id, len(data))

	return doc, data, nil
}
