// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
)

// SendMessage validates the request, builds a message job, and publishes it
// to RabbitMQ. The message is composed and dispatched asynchronously by the
// consumer, so acceptance here only guarantees the job is queued.
func (uc *UseCase) SendMessage(ctx context.Context, input *model.SendMessageInput) (*model.MessageJob, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.send_message")
	defer span.End()

	templateID, err := uuid.Parse(input.TemplateID)
	if err != nil {
		return nil, pkg.ValidateBusinessError(constant.ErrInvalidTemplateID, "", input.TemplateID)
	}

	attachmentIDs := make([]uuid.UUID, 0, len(input.AttachmentDocumentIDs))

	for _, rawID := range input.AttachmentDocumentIDs {
		attachmentID, parseErr := uuid.Parse(rawID)
		if parseErr != nil {
			return nil, pkg.ValidateBusinessError(constant.ErrInvalidPathParameter, "", rawID)
		}

		attachmentIDs = append(attachmentIDs, attachmentID)
	}

	job := &model.MessageJob{
		MessageID:             libCommons.GenerateUUIDv7(),
		To:                    input.To,
		Subject:               input.Subject,
		TemplateID:            templateID,
		TemplateValues:        input.TemplateValues,
		AttachmentDocumentIDs: attachmentIDs,
	}

	if _, err := uc.Producer.ProducerDefault(ctx, uc.Exchange, uc.RoutingKey, *job); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to publish message job", err)

		logger.Errorf("Failed to publish message job %s: %v", job.MessageID, err)

		return nil, err
	}

	logger.Infof("Message job %s queued for template %s", job.MessageID, templateID)

	return job, nil
}
