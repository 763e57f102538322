// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/LerianStudio/lib-commons/v3/commons/log"
	libOtel "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/gofiber/fiber/v2"
)

// serverShutdownTimeout bounds how long in-flight requests may drain before
// the listener is forced closed.
const serverShutdownTimeout = 30 * time.Second

// Server represents the http server for the mailer service.
type Server struct {
	app           *fiber.App
	serverAddress string
	logger        log.Logger
	telemetry     *libOtel.Telemetry
}

// ServerAddress is a convenience method to return the server address.
func (s *Server) ServerAddress() string {
	return s.serverAddress
}

// NewServer creates an instance of Server.
func NewServer(cfg *Config, app *fiber.App, logger log.Logger, telemetry *libOtel.Telemetry) *Server {
	return &Server{
		app:           app,
		serverAddress: cfg.ServerAddress,
		logger:        logger,
		telemetry:     telemetry,
	}
}

// Run starts the HTTP listener and blocks until the listener fails or the
// process receives an interrupt or termination signal, then drains in-flight
// requests before returning.
func (s *Server) Run(l *libCommons.Launcher) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Infof("Server running at %s", s.serverAddress)
		errCh <- s.app.Listen(s.serverAddress)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to run the server: %w", err)
		}
	case sig := <-sigCh:
		s.logger.Infof("Received signal %s, shutting down HTTP server", sig)

		if err := s.app.ShutdownWithTimeout(serverShutdownTimeout); err != nil {
			s.logger.Errorf("Failed to shutdown HTTP server gracefully: %v", err)

			return err
		}
	}

	return nil
}
