// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package dispatcher is the outbound delivery port for composed messages.
package dispatcher

import (
	"context"

	"github.com/docstackhq/docstack/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
)

// Dispatcher hands a fully composed message to the outbound delivery channel.
//
//go:generate mockgen --destination=dispatcher.mock.go --package=dispatcher --copyright_file=../../../../../COPYRIGHT . Dispatcher
type Dispatcher interface {
	Dispatch(ctx context.Context, message *model.Message) error
}

// LogDispatcher records composed messages in the structured log. It is the
// default delivery channel when no SMTP relay is configured, which keeps the
// full pipeline (render, attach, compose) exercisable in any environment.
type LogDispatcher struct{}

// NewLogDispatcher creates the logging delivery channel.
func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

// Dispatch logs the composed message instead of delivering it.
func (d *LogDispatcher) Dispatch(ctx context.Context, message *model.Message) error {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	_, span := tracer.Start(ctx, "repository.dispatcher.dispatch")
	defer span.End()

	logger.Infof("Dispatching message %s to %d recipient(s) with %d attachment(s), body %d bytes",
		message.ID, len(message.To), len(message.Attachments), len(message.BodyHTML))

	return nil
}
