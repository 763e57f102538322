// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
)

// ProcessMessage consumes a queued message job: it renders the subject and
// the email body, downloads every attachment from CMS, composes the final
// message, and hands it to the dispatcher.
func (uc *UseCase) ProcessMessage(ctx context.Context, body []byte) error {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.process_message")
	defer span.End()

	var job model.MessageJob

	if err := json.Unmarshal(body, &job); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to unmarshal message job", err)

		logger.Errorf("Failed to unmarshal message job: %v", err)

		// Malformed payloads will never parse; route straight to DLQ.
		return pkg.ValidateBusinessError(constant.ErrBadRequest, "MessageJob")
	}

	logger.Infof("Processing message job %s for template %s", job.MessageID, job.TemplateID)

	subject, err := uc.Renderer.RenderString(ctx, job.Subject, job.TemplateValues)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to render subject", err)

		return fmt.Errorf("failed to render subject for message %s: %w", job.MessageID, err)
	}

	bodyHTML, err := uc.TMSClient.RenderEmailBody(ctx, job.TemplateID, job.TemplateValues)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to render email body", err)

		logger.Errorf("Failed to render email body for message %s: %v", job.MessageID, err)

		return err
	}

	attachments, err := uc.fetchAttachments(ctx, &job)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to fetch attachments", err)

		return err
	}

	message := &model.Message{
		ID:          job.MessageID,
		To:          job.To,
		Subject:     subject,
		BodyHTML:    bodyHTML,
		Attachments: attachments,
	}

	if err := uc.Dispatcher.Dispatch(ctx, message); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to dispatch message", err)

		logger.Errorf("Failed to dispatch message %s: %v", job.MessageID, err)

		return err
	}

	logger.Infof("Message %s dispatched to %d recipient(s)", message.ID, len(message.To))

	return nil
}

// fetchAttachments downloads every attachment document from CMS and pairs the
// bytes with the stored file name and content type.
func (uc *UseCase) fetchAttachments(ctx context.Context, job *model.MessageJob) ([]model.Attachment, error) {
	logger := libCommons.NewLoggerFromContext(ctx)

	attachments := make([]model.Attachment, 0, len(job.AttachmentDocumentIDs))

	for _, documentID := range job.AttachmentDocumentIDs {
		document, err := uc.CMSClient.GetDocument(ctx, documentID)
		if err != nil {
			logger.Errorf("Failed to fetch attachment metadata %s for message %s: %v", documentID, job.MessageID, err)

			return nil, err
		}

		data, contentType, err := uc.CMSClient.DownloadContent(ctx, documentID)
		if err != nil {
			logger.Errorf("Failed to download attachment %s for message %s: %v", documentID, job.MessageID, err)

			return nil, err
		}

		if contentType == "" {
			contentType = document.ContentType
		}

		attachments = append(attachments, model.Attachment{
			FileName:    document.Name,
			ContentType: contentType,
			Data:        data,
		})
	}

	return attachments, nil
}
