// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"fmt"

	"github.com/docstackhq/docstack/components/tms/internal/adapters/http/in"
	"github.com/docstackhq/docstack/components/tms/internal/services"
	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/clients/cms"
	"github.com/docstackhq/docstack/pkg/compose"
)

// Config is the top level configuration struct for the entire application.
type Config struct {
	EnvName                 string `env:"ENV_NAME"`
	ServerAddress           string `env:"SERVER_ADDRESS" default:"0.0.0.0:4010"`
	LogLevel                string `env:"LOG_LEVEL"`
	OtelServiceName         string `env:"OTEL_RESOURCE_SERVICE_NAME"`
	OtelLibraryName         string `env:"OTEL_LIBRARY_NAME"`
	OtelServiceVersion      string `env:"OTEL_RESOURCE_SERVICE_VERSION"`
	OtelDeploymentEnv       string `env:"OTEL_RESOURCE_DEPLOYMENT_ENVIRONMENT"`
	OtelColExporterEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	EnableTelemetry         bool   `env:"ENABLE_TELEMETRY"`
	// MongoDB
	MongoURI          string `env:"MONGO_URI"`
	MongoDBHost       string `env:"MONGO_HOST"`
	MongoDBName       string `env:"MONGO_NAME"`
	MongoDBUser       string `env:"MONGO_USER"`
	MongoDBPassword   string `env:"MONGO_PASSWORD"`
	MongoDBPort       string `env:"MONGO_PORT"`
	MongoDBParameters string `env:"MONGO_PARAMETERS"`
	MongoMaxPoolSize  string `env:"MONGO_MAX_POOL_SIZE"`
	// Redis / Valkey
	RedisHost                    string `env:"REDIS_HOST"`
	RedisPassword                string `env:"REDIS_PASSWORD"`
	RedisDB                      int    `env:"REDIS_DB"`
	RedisProtocol                int    `env:"REDIS_PROTOCOL"`
	RedisMasterName              string `env:"REDIS_MASTER_NAME"`
	RedisTLS                     bool   `env:"REDIS_TLS"`
	RedisCACert                  string `env:"REDIS_CA_CERT"`
	RedisUseGCPIAM               bool   `env:"REDIS_USE_GCP_IAM"`
	RedisServiceAccount          string `env:"REDIS_SERVICE_ACCOUNT"`
	GoogleApplicationCredentials string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	RedisTokenLifeTime           int    `env:"REDIS_TOKEN_LIFETIME_MINUTES"`
	RedisTokenRefreshDuration    int    `env:"REDIS_TOKEN_REFRESH_MINUTES"`
	// CMS upstream
	CMSBaseURL string `env:"CMS_BASE_URL"`
	// Generated artifact store
	ArtifactDir                  string `env:"ARTIFACT_DIR" default:"./artifacts"`
	ArtifactRetentionHours       int    `env:"ARTIFACT_RETENTION_HOURS"`
	ArtifactSweepIntervalMinutes int    `env:"ARTIFACT_SWEEP_INTERVAL_MINUTES"`
	// Generation behavior
	TemplateStrictValues bool `env:"TEMPLATE_STRICT_VALUES"`
	// Format conversion
	ConverterBin            string `env:"CONVERTER_BIN"`
	ConverterTimeoutSeconds int    `env:"CONVERTER_TIMEOUT_SECONDS"`
	PdfPoolWorkers          int    `env:"PDF_POOL_WORKERS" default:"2"`
	PdfPoolTimeoutSeconds   int    `env:"PDF_TIMEOUT_SECONDS" default:"90"`
}

// Validate checks that the configuration is usable before any connection is attempted.
func (cfg *Config) Validate() error {
	if pkg.ValidateServerAddress(cfg.ServerAddress) == "" {
		return fmt.Errorf("invalid SERVER_ADDRESS %q, expected <host>:<port>", cfg.ServerAddress)
	}

	if cfg.MongoURI == "" || cfg.MongoDBHost == "" || cfg.MongoDBName == "" {
		return fmt.Errorf("MONGO_URI, MONGO_HOST and MONGO_NAME must be set")
	}

	if cfg.RedisHost == "" {
		return fmt.Errorf("REDIS_HOST must be set")
	}

	if cfg.CMSBaseURL == "" {
		return fmt.Errorf("CMS_BASE_URL must be set")
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

	mongoRes, mongoCleanup, err := initMongoDB(cfg, logger)
	if err != nil {
		runCleanups()
		return nil, err
	}

	cleanups = append(cleanups, mongoCleanup)

	redisRepository, redisConnection, redisCleanup, err := initRedis(cfg, logger)
	if err != nil {
		runCleanups()
		return nil, err
	}

	cleanups = append(cleanups, redisCleanup)

	artifactStore, artifactCleanup, err := initArtifactStore(cfg, logger)
	if err != nil {
		runCleanups()
		return nil, err
	}

	cleanups = append(cleanups, artifactCleanup)

	converter, pdfPool := initRendering(cfg, logger)

	cleanups = append(cleanups, func() {
		logger.Info("Cleanup: closing PDF worker pool")
		pdfPool.Close()
	})

	cmsClient := cms.NewClient(cfg.CMSBaseURL, pkg.NewCircuitBreakerManager(logger))

	templateService := &services.UseCase{
		TemplateRepo:  mongoRes.templateRepo,
		CMSClient:     cmsClient,
		Composer:      compose.NewEngine(),
		Converter:     converter,
		ArtifactStore: artifactStore,
		RedisRepo:     redisRepository,
		StrictValues:  cfg.TemplateStrictValues,
	}

	templateHandler := &in.TemplateHandler{
		Service: templateService,
	}

	generationHandler := &in.GenerationHandler{
		Service: templateService,
	}

	httpApp := in.NewRoutes(logger, telemetry, templateHandler, generationHandler, &in.ReadinessDeps{
		MongoConnection: mongoRes.connection,
		RedisConnection: redisConnection,
	})

	serverAPI := NewServer(cfg, httpApp, logger, telemetry)

	return &Service{
		Server:   serverAPI,
		Logger:   logger,
		cleanups: cleanups,
	}, nil
}
