// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"context"
	"time"

	"github.com/docstackhq/docstack/pkg/postgres"
	"github.com/docstackhq/docstack/pkg/storage"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	commonsHttp "github.com/LerianStudio/lib-commons/v3/commons/net/http"
	"github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

const readinessCheckTimeout = 2 * time.Second

// ReadinessDeps holds the dependency connections needed for the /ready endpoint.
type ReadinessDeps struct {
	PostgresConnection *postgres.Connection
	Storage            storage.ObjectStorage
}

// NewRoutes creates a new fiber router with the specified handlers and middleware.
func NewRoutes(lg log.Logger, tl *opentelemetry.Telemetry, documentHandler *DocumentHandler, deps *ReadinessDeps) *fiber.App {
	f := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return commonsHttp.HandleFiberError(ctx, err)
		},
	})
	tlMid := commonsHttp.NewTelemetryMiddleware(tl)

	f.Use(tlMid.WithTelemetry(tl))
	f.Use(cors.New())
	f.Use(RecoverMiddleware())
	f.Use(SecurityHeaders())
	f.Use(commonsHttp.WithHTTPLogging(commonsHttp.WithCustomLogger(lg)))

	// Document routes
	f.Post("/v1/documents", documentHandler.CreateDocument)
	f.Get("/v1/documents/:id", ParsePathParametersUUID, documentHandler.GetDocumentByID)
	f.Get("/v1/documents/:id/content", ParsePathParametersUUID, documentHandler.DownloadDocumentContent)
	f.Delete("/v1/documents/:id", ParsePathParametersUUID, documentHandler.DeleteDocumentByID)

	// Doc Swagger
	f.Get("/swagger/*", WithSwaggerEnvConfig(), fiberSwagger.WrapHandler)

	// Health
	f.Get("/health", commonsHttp.Ping)

	// Readiness - checks all dependency connections
	f.Get("/ready", readinessHandler(deps))

	// Version
	f.Get("/version", commonsHttp.Version)

	f.Use(tlMid.EndTracingSpans)

	return f
}

// dependencyResult represents the health status of a single dependency in the readiness check.
type dependencyResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// readinessHandler returns a Fiber handler that checks all dependency connections.
// Each dependency is checked with a 2-second timeout. Returns 200 if all healthy, 503 otherwise.
func readinessHandler(deps *ReadinessDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		httpStatus := fiber.StatusOK
		results := make(map[string]*dependencyResult)

		results["postgres"] = checkPostgres(deps.PostgresConnection)
		results["storage"] = checkStorage(deps.Storage)

		for _, result := range results {
			if result.Status != "ready" {
				httpStatus = fiber.StatusServiceUnavailable

				break
			}
		}

		overallStatus := "ready"
		if httpStatus == fiber.StatusServiceUnavailable {
			overallStatus = "not_ready"
		}

		return commonsHttp.JSONResponse(c, httpStatus, fiber.Map{
			"status":       overallStatus,
			"dependencies": results,
		})
	}
}

// checkPostgres pings the PostgreSQL connection with a timeout.
func checkPostgres(conn *postgres.Connection) *dependencyResult {
	if conn == nil {
		return &dependencyResult{Status: "not_ready", Message: "connection not configured"}
	}

	db, err := conn.GetDB()
	if err != nil {
		return &dependencyResult{Status: "not_ready", Message: "failed to get connection"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), readinessCheckTimeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		return &dependencyResult{Status: "not_ready", Message: "ping failed"}
	}

	return &dependencyResult{Status: "ready"}
}

// checkStorage probes the object storage backend with a cheap existence check.
func checkStorage(store storage.ObjectStorage) *dependencyResult {
	if store == nil {
		return &dependencyResult{Status: "not_ready", Message: "storage not configured"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), readinessCheckTimeout)
	defer cancel()

	if _, err := store.Exists(ctx, ".readiness-probe"); err != nil {
		return &dependencyResult{Status: "not_ready", Message: "storage probe failed"}
	}

	return &dependencyResult{Status: "ready"}
}
