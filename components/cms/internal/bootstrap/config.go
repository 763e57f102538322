// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"fmt"

	"github.com/docstackhq/docstack/components/cms/internal/adapters/http/in"
	"github.com/docstackhq/docstack/components/cms/internal/services"
	"github.com/docstackhq/docstack/pkg"
)

// Config is the top level configuration struct for the entire application.
type Config struct {
	EnvName                 string `env:"ENV_NAME"`
	ServerAddress           string `env:"SERVER_ADDRESS" default:"0.0.0.0:4011"`
	LogLevel                string `env:"LOG_LEVEL"`
	OtelServiceName         string `env:"OTEL_RESOURCE_SERVICE_NAME"`
	OtelLibraryName         string `env:"OTEL_LIBRARY_NAME"`
	OtelServiceVersion      string `env:"OTEL_RESOURCE_SERVICE_VERSION"`
	OtelDeploymentEnv       string `env:"OTEL_RESOURCE_DEPLOYMENT_ENVIRONMENT"`
	OtelColExporterEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	EnableTelemetry         bool   `env:"ENABLE_TELEMETRY"`
	// PostgreSQL
	PostgresHost               string `env:"POSTGRES_HOST"`
	PostgresPort               string `env:"POSTGRES_PORT"`
	PostgresUser               string `env:"POSTGRES_USER"`
	PostgresPassword           string `env:"POSTGRES_PASSWORD"`
	PostgresDBName             string `env:"POSTGRES_NAME"`
	PostgresSSLMode            string `env:"POSTGRES_SSL_MODE" default:"disable"`
	PostgresMaxOpenConnections int    `env:"POSTGRES_MAX_OPEN_CONNECTIONS" default:"20"`
	PostgresMaxIdleConnections int    `env:"POSTGRES_MAX_IDLE_CONNECTIONS" default:"10"`
	// Object storage
	StorageProvider   string `env:"STORAGE_PROVIDER" default:"minio"`
	S3Region          string `env:"S3_REGION"`
	S3Bucket          string `env:"S3_BUCKET"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3ForcePathStyle  bool   `env:"S3_FORCE_PATH_STYLE"`
	MinioEndpoint     string `env:"MINIO_ENDPOINT"`
	MinioAccessKey    string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey    string `env:"MINIO_SECRET_KEY"`
	MinioBucket       string `env:"MINIO_BUCKET"`
	MinioUseSSL       bool   `env:"MINIO_USE_SSL"`
}

// Validate checks that the configuration is usable before any connection is attempted.
func (cfg *Config) Validate() error {
	if pkg.ValidateServerAddress(cfg.ServerAddress) == "" {
		return fmt.Errorf("invalid SERVER_ADDRESS %q, expected <host>:<port>", cfg.ServerAddress)
	}

	if cfg.PostgresHost == "" || cfg.PostgresDBName == "" {
		return fmt.Errorf("POSTGRES_HOST and POSTGRES_NAME must be set")
	}

	switch cfg.StorageProvider {
	case "", "minio":
		if cfg.MinioEndpoint == "" || cfg.MinioBucket == "" {
			return fmt.Errorf("MINIO_ENDPOINT and MINIO_BUCKET must be set for the minio provider")
		}
	case "s3":
		if cfg.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET must be set for the s3 provider")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_PROVIDER %q", cfg.StorageProvider)
	}

	return nil
}

// InitServers initializes the HTTP server and all of its dependencies.
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

	postgresRes, postgresCleanup, err := initPostgres(cfg, logger)
	if err != nil {
		runCleanups()
		return nil, err
	}

	cleanups = append(cleanups, postgresCleanup)

	storageClient, err := initStorage(cfg, logger)
	if err != nil {
		runCleanups()
		return nil, err
	}

	documentService := &services.UseCase{
		DocumentRepo: postgresRes.documentRepo,
		Storage:      storageClient,
	}

	documentHandler := &in.DocumentHandler{
		Service: documentService,
	}

	httpApp := in.NewRoutes(logger, telemetry, documentHandler, &in.ReadinessDeps{
		PostgresConnection: postgresRes.connection,
		Storage:            storageClient,
	})

	serverAPI := NewServer(cfg, httpApp, logger, telemetry)

	return &Service{
		Server:   serverAPI,
		Logger:   logger,
		cleanups: cleanups,
	}, nil
}
