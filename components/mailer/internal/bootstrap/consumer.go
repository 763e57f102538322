// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/docstackhq/docstack/components/mailer/internal/adapters/rabbitmq"
	"github.com/docstackhq/docstack/components/mailer/internal/services"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
)

// MultiQueueConsumer runs the registered queue handlers until the process is
// signalled to stop.
type MultiQueueConsumer struct {
	consumerRoutes *rabbitmq.ConsumerRoutes
}

// NewMultiQueueConsumer creates the consumer and registers the message queue handler.
func NewMultiQueueConsumer(cfg *Config, routes *rabbitmq.ConsumerRoutes, messageService *services.UseCase) *MultiQueueConsumer {
	consumer := &MultiQueueConsumer{
		consumerRoutes: routes,
	}

	routes.Register(cfg.RabbitMQSendMessageQueue, messageService.ProcessMessage)

	return consumer
}

// Run starts consumers for all registered queues and blocks until an
// interrupt or termination signal arrives, then waits for in-flight workers.
func (mq *MultiQueueConsumer) Run(l *libCommons.Launcher) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wg := &sync.WaitGroup{}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigs
		cancel()
	}()

	if err := mq.consumerRoutes.RunConsumers(ctx, wg); err != nil {
		return err
	}

	wg.Wait()

	return nil
}
