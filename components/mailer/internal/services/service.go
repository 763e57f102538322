// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package services implements the mailer business operations: queueing
// outbound messages and composing them from rendered bodies and attachments.
package services

import (
	"github.com/docstackhq/docstack/components/mailer/internal/adapters/dispatcher"
	"github.com/docstackhq/docstack/pkg/clients/cms"
	"github.com/docstackhq/docstack/pkg/clients/tms"
	"github.com/docstackhq/docstack/pkg/pongo"
	"github.com/docstackhq/docstack/pkg/rabbitmq"
)

// UseCase wires the mailer ports together.
type UseCase struct {
	// Producer publishes accepted message jobs to RabbitMQ.
	Producer rabbitmq.ProducerRepository

	// TMSClient renders email bodies from registered templates.
	TMSClient tms.RenderClient

	// CMSClient fetches attachment documents.
	CMSClient cms.DocumentClient

	// Dispatcher is the outbound delivery channel for composed messages.
	Dispatcher dispatcher.Dispatcher

	// Renderer renders the subject line with the same syntax as template bodies.
	Renderer *pongo.TemplateRenderer

	// Exchange and RoutingKey address the message queue.
	Exchange   string
	RoutingKey string
}
