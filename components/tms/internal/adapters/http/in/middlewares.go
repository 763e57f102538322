// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"context"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/net/http"

	"github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
)

var UUIDPathParameter = "id"

// SecurityHeaders returns a Fiber middleware that sets standard HTTP security
// headers on every response.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "0")

		return c.Next()
	}
}

// RecoverMiddleware returns a Fiber middleware that recovers from panics
// inside handlers, preventing a single panicking request from crashing the
// entire server process.
func RecoverMiddleware() fiber.Handler {
	return recover.New()
}

// ParseUUIDPathParam returns a Fiber middleware that validates the named path
// parameter as a UUID. On success the parsed uuid.UUID is stored in
// c.Locals(paramName) for downstream handlers. On failure a 400 Bad Request
// response is returned with the standard ErrInvalidPathParameter error.
func ParseUUIDPathParam(paramName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pathParam := c.Params(paramName)

		if commons.IsNilOrEmpty(&pathParam) {
			err := pkg.ValidateBusinessError(constant.ErrInvalidPathParameter, "", paramName)
			return http.WithError(c, err)
		}

		parsedPathUUID, errPath := uuid.Parse(pathParam)
		if errPath != nil {
			err := pkg.ValidateBusinessError(constant.ErrInvalidPathParameter, "", paramName)
			return http.WithError(c, err)
		}

		c.Locals(paramName, parsedPathUUID)

		return c.Next()
	}
}

// ParsePathParametersUUID convert and validate if the path parameter is UUID.
// It validates the "id" path parameter. For other parameter names use
// ParseUUIDPathParam(paramName).
func ParsePathParametersUUID(c *fiber.Ctx) error {
	return ParseUUIDPathParam(UUIDPathParameter)(c)
}

// WithIdempotencyKey copies the X-Idempotency-Key header into the request
// context so the service layer can deduplicate generation requests.
func WithIdempotencyKey(c *fiber.Ctx) error {
	key := c.Get(constant.IdempotencyKeyHeader)
	if key != "" {
		ctx := context.WithValue(c.UserContext(), constant.IdempotencyKeyCtx, key)
		c.SetUserContext(ctx)
	}

	return c.Next()
}
