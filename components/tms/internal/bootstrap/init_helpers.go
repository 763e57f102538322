// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/docstackhq/docstack/components/tms/internal/adapters/mongodb/template"
	"github.com/docstackhq/docstack/components/tms/internal/adapters/redis"
	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/artifact"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/convert"
	"github.com/docstackhq/docstack/pkg/pdf"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/LerianStudio/lib-commons/v3/commons/log"
	mongoDB "github.com/LerianStudio/lib-commons/v3/commons/mongo"
	libOtel "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	libRedis "github.com/LerianStudio/lib-commons/v3/commons/redis"
	"github.com/LerianStudio/lib-commons/v3/commons/zap"
)

// mongoResources holds MongoDB-related resources created during initialization.
type mongoResources struct {
	connection   *mongoDB.MongoConnection
	templateRepo *template.TemplateMongoDBRepository
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

// initMongoDB establishes the MongoDB connection, creates the template
// repository, ensures indexes exist, and returns a cleanup function that
// disconnects the client.
func initMongoDB(cfg *Config, logger log.Logger) (*mongoResources, func(), error) {
	escapedPass := url.QueryEscape(cfg.MongoDBPassword)
	mongoSource := fmt.Sprintf("%s://%s:%s@%s:%s",
		cfg.MongoURI, cfg.MongoDBUser, escapedPass, cfg.MongoDBHost, cfg.MongoDBPort)

	if cfg.MongoDBParameters != "" {
		mongoSource += "/?" + cfg.MongoDBParameters
	}

	mongoMaxPoolSize, _ := strconv.ParseUint(cfg.MongoMaxPoolSize, 10, 64)
	if mongoMaxPoolSize == 0 {
		mongoMaxPoolSize = constant.MongoDefaultMaxPoolSize
	}

	logger.Infof("MongoDB connecting to %s", pkg.RedactConnectionString(mongoSource))

	mongoConnection := &mongoDB.MongoConnection{
		ConnectionStringSource: mongoSource,
		Database:               cfg.MongoDBName,
		Logger:                 logger,
		MaxPoolSize:            mongoMaxPoolSize,
	}

	templateMongoDBRepository, err := template.NewTemplateMongoDBRepository(mongoConnection)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize template mongodb repository: %w", err)
	}

	logger.Info("Ensuring MongoDB indexes exist for templates...")

	ctx := pkg.ContextWithLogger(context.Background(), logger)

	if err = templateMongoDBRepository.EnsureIndexes(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure template indexes: %w", err)
	}

	cleanup := func() {
		if mongoConnection.DB != nil {
			logger.Info("Cleanup: disconnecting MongoDB")

			if disconnectErr := mongoConnection.DB.Disconnect(context.Background()); disconnectErr != nil {
				logger.Errorf("Cleanup: failed to disconnect MongoDB: %v", disconnectErr)
			}
		}
	}

	return &mongoResources{
		connection:   mongoConnection,
		templateRepo: templateMongoDBRepository,
	}, cleanup, nil
}

// initRedis establishes the Redis/Valkey connection used for generation
// idempotency keys and returns a cleanup function that closes the connection.
func initRedis(cfg *Config, logger log.Logger) (*redis.IdempotencyRedisRepository, *libRedis.RedisConnection, func(), error) {
	redisConnection := &libRedis.RedisConnection{
		Address:                      strings.Split(cfg.RedisHost, ","),
		Password:                     cfg.RedisPassword,
		DB:                           cfg.RedisDB,
		Protocol:                     cfg.RedisProtocol,
		MasterName:                   cfg.RedisMasterName,
		UseTLS:                       cfg.RedisTLS,
		CACert:                       cfg.RedisCACert,
		UseGCPIAMAuth:                cfg.RedisUseGCPIAM,
		ServiceAccount:               cfg.RedisServiceAccount,
		GoogleApplicationCredentials: cfg.GoogleApplicationCredentials,
		TokenLifeTime:                time.Duration(cfg.RedisTokenLifeTime) * time.Minute,
		RefreshDuration:              time.Duration(cfg.RedisTokenRefreshDuration) * time.Minute,
		Logger:                       logger,
	}

	idempotencyRedisRepository, err := redis.NewIdempotencyRedis(redisConnection)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize redis connection: %w", err)
	}

	cleanup := func() {
		logger.Info("Cleanup: closing Redis connection")

		if closeErr := redisConnection.Close(); closeErr != nil {
			logger.Errorf("Cleanup: failed to close Redis connection: %v", closeErr)
		}
	}

	return idempotencyRedisRepository, redisConnection, cleanup, nil
}

// initArtifactStore creates the on-disk store for generated documents and
// starts the background expiry sweeper. The returned cleanup stops the sweeper.
func initArtifactStore(cfg *Config, logger log.Logger) (*artifact.Store, func(), error) {
	retention := constant.DefaultArtifactRetention
	if cfg.ArtifactRetentionHours > 0 {
		retention = time.Duration(cfg.ArtifactRetentionHours) * time.Hour
	}

	store, err := artifact.NewStore(cfg.ArtifactDir, retention, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize artifact store: %w", err)
	}

	sweepInterval := constant.DefaultArtifactSweepInterval
	if cfg.ArtifactSweepIntervalMinutes > 0 {
		sweepInterval = time.Duration(cfg.ArtifactSweepIntervalMinutes) * time.Minute
	}

	sweepCtx, stopSweeper := context.WithCancel(pkg.ContextWithLogger(context.Background(), logger))
	store.StartSweeper(sweepCtx, sweepInterval)

	logger.Infof("Artifact store initialized at %s (retention %v, sweep every %v)", cfg.ArtifactDir, retention, sweepInterval)

	cleanup := func() {
		logger.Info("Cleanup: stopping artifact sweeper")
		stopSweeper()
	}

	return store, cleanup, nil
}

// initRendering builds the format conversion stack: the LibreOffice engine for
// document formats and the headless Chrome pool for PDF output.
func initRendering(cfg *Config, logger log.Logger) (*convert.Converter, *pdf.WorkerPool) {
	bin := cfg.ConverterBin
	if bin == "" {
		bin = constant.DefaultConverterBin
	}

	converterTimeout := constant.DefaultConverterTimeout
	if cfg.ConverterTimeoutSeconds > 0 {
		converterTimeout = time.Duration(cfg.ConverterTimeoutSeconds) * time.Second
	}

	engine := convert.NewSofficeEngine(bin, converterTimeout, logger)

	pdfPool := pdf.NewWorkerPool(cfg.PdfPoolWorkers, time.Duration(cfg.PdfPoolTimeoutSeconds)*time.Second, logger)

	logger.Infof("Rendering initialized (converter: %s, PDF workers: %d)", bin, cfg.PdfPoolWorkers)

	return convert.NewConverter(engine, pdfPool), pdfPool
}
