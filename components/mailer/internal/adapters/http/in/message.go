// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"github.com/docstackhq/docstack/components/mailer/internal/services"
	"github.com/docstackhq/docstack/pkg/model"
	"github.com/docstackhq/docstack/pkg/net/http"

	"github.com/LerianStudio/lib-commons/v3/commons"
	commonsHttp "github.com/LerianStudio/lib-commons/v3/commons/net/http"
	"github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/gofiber/fiber/v2"
)

// MessageHandler exposes the outbound message endpoints.
type MessageHandler struct {
	Service *services.UseCase
}

// SendMessage is a method that queues an outbound message.
//
//	@Summary		Queue an outbound message
//	@Description	Validate the payload and queue a message job; rendering and dispatch happen asynchronously
//	@Tags			Messages
//	@Accept			json
//	@Produce		json
//	@Param			message	body		model.SendMessageInput	true	"Message Input"
//	@Success		202		{object}	model.MessageJob
//	@Router			/v1/messages [post]
func (mh *MessageHandler) SendMessage(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.send_message")
	defer span.End()

	c.SetUserContext(ctx)

	payload := p.(*model.SendMessageInput)

	logger.Infof("Request to queue message for template %s", payload.TemplateID)

	job, err := mh.Service.SendMessage(ctx, payload)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to queue message", err)

		return http.WithError(c, err)
	}

	logger.Infof("Successfully queued message job %s", job.MessageID)

	return commonsHttp.JSONResponse(c, fiber.StatusAccepted, job)
}
