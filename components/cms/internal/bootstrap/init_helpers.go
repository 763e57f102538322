// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"context"
	"fmt"
	"net/url"

	"github.com/docstackhq/docstack/components/cms/internal/adapters/postgres/document"
	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/postgres"
	"github.com/docstackhq/docstack/pkg/storage"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/LerianStudio/lib-commons/v3/commons/log"
	libOtel "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/LerianStudio/lib-commons/v3/commons/zap"
)

// postgresResources holds PostgreSQL-related resources created during initialization.
type postgresResources struct {
	connection   *postgres.Connection
	documentRepo *document.DocumentPostgreSQLRepository
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

// initPostgres establishes the PostgreSQL connection, creates the document
// repository, and returns a cleanup function that closes the pool.
func initPostgres(cfg *Config, logger log.Logger) (*postgresResources, func(), error) {
	escapedPass := url.QueryEscape(cfg.PostgresPassword)
	postgresSource := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.PostgresUser, escapedPass, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDBName, cfg.PostgresSSLMode)

	logger.Infof("PostgreSQL connecting to %s", pkg.RedactConnectionString(postgresSource))

	postgresConnection := &postgres.Connection{
		ConnectionString:   postgresSource,
		DBName:             cfg.PostgresDBName,
		Logger:             logger,
		MaxOpenConnections: cfg.PostgresMaxOpenConnections,
		MaxIdleConnections: cfg.PostgresMaxIdleConnections,
	}

	documentPostgreSQLRepository, err := document.NewDocumentPostgreSQLRepository(postgresConnection)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize document postgres repository: %w", err)
	}

	cleanup := func() {
		if postgresConnection.ConnectionDB != nil {
			logger.Info("Cleanup: closing PostgreSQL connection")

			if closeErr := postgresConnection.ConnectionDB.Close(); closeErr != nil {
				logger.Errorf("Cleanup: failed to close PostgreSQL connection: %v", closeErr)
			}
		}
	}

	return &postgresResources{
		connection:   postgresConnection,
		documentRepo: documentPostgreSQLRepository,
	}, cleanup, nil
}

// initStorage creates the object storage client behind the generic port.
func initStorage(cfg *Config, logger log.Logger) (storage.ObjectStorage, error) {
	storageConfig := &storage.Config{
		Provider:          cfg.StorageProvider,
		S3Region:          cfg.S3Region,
		S3Bucket:          cfg.S3Bucket,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
		S3Endpoint:        cfg.S3Endpoint,
		S3ForcePathStyle:  cfg.S3ForcePathStyle,
		MinioEndpoint:     cfg.MinioEndpoint,
		MinioAccessKey:    cfg.MinioAccessKey,
		MinioSecretKey:    cfg.MinioSecretKey,
		MinioBucket:       cfg.MinioBucket,
		MinioUseSSL:       cfg.MinioUseSSL,
	}

	ctx := pkg.ContextWithLogger(context.Background(), logger)

	storageClient, err := storage.NewObjectStorage(ctx, storageConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	logger.Infof("Storage initialized with provider %s", cfg.StorageProvider)

	return storageClient, nil
}
