// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"fmt"

	"github.com/docstackhq/docstack/components/mailer/internal/adapters/rabbitmq"
	"github.com/docstackhq/docstack/pkg"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/LerianStudio/lib-commons/v3/commons/log"
	libOtel "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	libRabbitmq "github.com/LerianStudio/lib-commons/v3/commons/rabbitmq"
	"github.com/LerianStudio/lib-commons/v3/commons/zap"
)

// rabbitResources holds RabbitMQ-related resources created during initialization.
type rabbitResources struct {
	connection *libRabbitmq.RabbitMQConnection
	producer   *rabbitmq.ProducerRabbitMQRepository
	monitor    *RabbitMQMonitor
}

// initConfigAndLogger loads configuration from environment variables, validates it,
// and initializes the structured logger.
func initConfigAndLogger() (*Config, log.Logger, error) {
	cfg := &Config{}
	if err := libCommons.SetConfigFromEnvVars(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to load config from env vars: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := zap.InitializeLoggerWithError()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger, nil
}

// initTelemetry initializes OpenTelemetry tracing and returns the telemetry instance
// along with a cleanup function that shuts down the telemetry provider.
func initTelemetry(cfg *Config, logger log.Logger) (*libOtel.Telemetry, func(), error) {
	telemetry, err := libOtel.InitializeTelemetryWithError(&libOtel.TelemetryConfig{
		LibraryName:               cfg.OtelLibraryName,
		ServiceName:               cfg.OtelServiceName,
		ServiceVersion:            cfg.OtelServiceVersion,
		DeploymentEnv:             cfg.OtelDeploymentEnv,
		CollectorExporterEndpoint: cfg.OtelColExporterEndpoint,
		EnableTelemetry:           cfg.EnableTelemetry,
		Logger:                    logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	cleanup := func() {
		logger.Info("Cleanup: shutting down telemetry")
		telemetry.ShutdownTelemetry()
	}

	return telemetry, cleanup, nil
}

// initRabbitMQ establishes the RabbitMQ connection, creates the producer,
// starts the background connection monitor, and returns cleanup functions for
// the monitor and the connection itself.
func initRabbitMQ(cfg *Config, logger log.Logger) (*rabbitResources, []func()) {
	rabbitSource := fmt.Sprintf("%s://%s:%s@%s:%s",
		cfg.RabbitURI, cfg.RabbitMQUser, cfg.RabbitMQPass, cfg.RabbitMQHost, cfg.RabbitMQPortAMQP)

	logger.Infof("RabbitMQ connecting to %s", pkg.RedactConnectionString(rabbitSource))

	rabbitMQConnection := &libRabbitmq.RabbitMQConnection{
		ConnectionStringSource: rabbitSource,
		HealthCheckURL:         cfg.RabbitMQHealthCheckURL,
		Host:                   cfg.RabbitMQHost,
		Port:                   cfg.RabbitMQPortHost,
		User:                   cfg.RabbitMQUser,
		Pass:                   cfg.RabbitMQPass,
		Queue:                  cfg.RabbitMQSendMessageQueue,
		Logger:                 logger,
	}

	producerRabbitMQRepository := rabbitmq.NewProducerRabbitMQ(rabbitMQConnection)

	// Start background RabbitMQ connection monitor.
	// This goroutine periodically checks if the connection is alive and
	// calls EnsureChannel() to reconnect when needed, breaking the deadlock
	// where /ready returns 503 but nothing triggers reconnection.
	rabbitMQMonitor := NewRabbitMQMonitor(rabbitMQConnection, logger)
	rabbitMQMonitor.Start()

	logger.Info("RabbitMQ background connection monitor started")

	cleanups := []func(){
		func() {
			logger.Info("Cleanup: stopping RabbitMQ connection monitor")
			rabbitMQMonitor.Stop()
		},
		func() {
			logger.Info("Cleanup: closing RabbitMQ connection")

			if rabbitMQConnection.Channel != nil {
				if closeErr := rabbitMQConnection.Channel.Close(); closeErr != nil {
					logger.Errorf("Cleanup: failed to close RabbitMQ channel: %v", closeErr)
				}
			}

			if rabbitMQConnection.Connection != nil && !rabbitMQConnection.Connection.IsClosed() {
				if closeErr := rabbitMQConnection.Connection.Close(); closeErr != nil {
					logger.Errorf("Cleanup: failed to close RabbitMQ connection: %v", closeErr)
				}
			}
		},
	}

	return &rabbitResources{
		connection: rabbitMQConnection,
		producer:   producerRabbitMQRepository,
		monitor:    rabbitMQMonitor,
	}, cleanups
}

// initConsumer creates the worker-pool consumer bound to the shared connection.
func initConsumer(cfg *Config, rabbitRes *rabbitResources, logger log.Logger, telemetry *libOtel.Telemetry) (*rabbitmq.ConsumerRoutes, error) {
	consumerRoutes, err := rabbitmq.NewConsumerRoutes(rabbitRes.connection, cfg.RabbitMQNumWorkers, logger, telemetry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rabbitmq consumer: %w", err)
	}

	return consumerRoutes, nil
}
