// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package bootstrap wires configuration, connections, and handlers into a
// runnable mailer service.
package bootstrap

import (
	"fmt"

	"github.com/docstackhq/docstack/components/mailer/internal/adapters/dispatcher"
	"github.com/docstackhq/docstack/components/mailer/internal/adapters/http/in"
	"github.com/docstackhq/docstack/components/mailer/internal/services"
	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/clients/cms"
	"github.com/docstackhq/docstack/pkg/clients/tms"
	"github.com/docstackhq/docstack/pkg/pongo"
)

// Config is the top level configuration struct for the entire application.
type Config struct {
	EnvName                 string `env:"ENV_NAME"`
	ServerAddress           string `env:"SERVER_ADDRESS" default:"0.0.0.0:4012"`
	LogLevel                string `env:"LOG_LEVEL"`
	OtelServiceName         string `env:"OTEL_RESOURCE_SERVICE_NAME"`
	OtelLibraryName         string `env:"OTEL_LIBRARY_NAME"`
	OtelServiceVersion      string `env:"OTEL_RESOURCE_SERVICE_VERSION"`
	OtelDeploymentEnv       string `env:"OTEL_RESOURCE_DEPLOYMENT_ENVIRONMENT"`
	OtelColExporterEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	EnableTelemetry         bool   `env:"ENABLE_TELEMETRY"`
	// RabbitMQ
	RabbitURI                string `env:"RABBITMQ_URI" default:"amqp"`
	RabbitMQHost             string `env:"RABBITMQ_HOST"`
	RabbitMQPortHost         string `env:"RABBITMQ_PORT_HOST"`
	RabbitMQPortAMQP         string `env:"RABBITMQ_PORT_AMQP"`
	RabbitMQUser             string `env:"RABBITMQ_DEFAULT_USER"`
	RabbitMQPass             string `env:"RABBITMQ_DEFAULT_PASS"`
	RabbitMQHealthCheckURL   string `env:"RABBITMQ_HEALTH_CHECK_URL"`
	RabbitMQExchange         string `env:"RABBITMQ_EXCHANGE" default:"mailer.exchange"`
	RabbitMQSendMessageKey   string `env:"RABBITMQ_SEND_MESSAGE_KEY" default:"mailer.messages"`
	RabbitMQSendMessageQueue string `env:"RABBITMQ_SEND_MESSAGE_QUEUE" default:"mailer.messages.queue"`
	RabbitMQNumWorkers       int    `env:"RABBITMQ_NUMBERS_OF_WORKERS"`
	// Upstream services
	TMSBaseURL string `env:"TMS_BASE_URL"`
	CMSBaseURL string `env:"CMS_BASE_URL"`
}

// Validate checks that the configuration is usable before any connection is attempted.
func (cfg *Config) Validate() error {
	if pkg.ValidateServerAddress(cfg.ServerAddress) == "" {
		return fmt.Errorf("invalid SERVER_ADDRESS %q, expected <host>:<port>", cfg.ServerAddress)
	}

	if cfg.RabbitMQHost == "" {
		return fmt.Errorf("RABBITMQ_HOST must be set")
	}

	if cfg.TMSBaseURL == "" || cfg.CMSBaseURL == "" {
		return fmt.Errorf("TMS_BASE_URL and CMS_BASE_URL must be set")
	}

	return nil
}

// InitServers initializes the HTTP server, the queue consumer, and all of
// their dependencies.
func InitServers() (*Service, error) {
	cfg, logger, err := initConfigAndLogger()
	if err != nil {
		return nil, err
	}

	telemetry, telemetryCleanup, err := initTelemetry(cfg, logger)
	if err != nil {
		return nil, err
	}

	cleanups := []func(){telemetryCleanup}
	runCleanups := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	rabbitRes, rabbitCleanups := initRabbitMQ(cfg, logger)
	cleanups = append(cleanups, rabbitCleanups...)

	consumerRoutes, err := initConsumer(cfg, rabbitRes, logger, telemetry)
	if err != nil {
		runCleanups()
		return nil, err
	}

	breakers := pkg.NewCircuitBreakerManager(logger)

	messageService := &services.UseCase{
		Producer:   rabbitRes.producer,
		TMSClient:  tms.NewClient(cfg.TMSBaseURL, breakers),
		CMSClient:  cms.NewClient(cfg.CMSBaseURL, breakers),
		Dispatcher: dispatcher.NewLogDispatcher(),
		Renderer:   pongo.NewTemplateRenderer(),
		Exchange:   cfg.RabbitMQExchange,
		RoutingKey: cfg.RabbitMQSendMessageKey,
	}

	messageHandler := &in.MessageHandler{
		Service: messageService,
	}

	multiQueueConsumer := NewMultiQueueConsumer(cfg, consumerRoutes, messageService)

	httpApp := in.NewRoutes(logger, telemetry, messageHandler, &in.ReadinessDeps{
		RabbitMQConnection: rabbitRes.connection,
	})

	serverAPI := NewServer(cfg, httpApp, logger, telemetry)

	return &Service{
		Server:   serverAPI,
		Consumer: multiQueueConsumer,
		Logger:   logger,
		cleanups: cleanups,
	}, nil
}
