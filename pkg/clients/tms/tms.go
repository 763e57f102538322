// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package tms is the HTTP client for the template service, used by the mailer
// to render message bodies.
package tms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//go:generate mockgen --destination=tms.mock.go --package=tms --copyright_file=../../../COPYRIGHT . RenderClient

// RenderClient is the capability the mailer needs from TMS.
type RenderClient interface {
	RenderEmailBody(ctx context.Context, templateID uuid.UUID, values map[string]string) ([]byte, error)
}

// Client talks to TMS over HTTP with tracing and a circuit breaker.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breakers   *pkg.CircuitBreakerManager
}

// NewClient creates a TMS client for the given base URL.
func NewClient(baseURL string, breakers *pkg.CircuitBreakerManager) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   constant.UpstreamHTTPTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breakers: breakers,
	}
}

// RenderEmailBody generates the template as self-contained email HTML and
// downloads the resulting artifact in one go.
func (c *Client) RenderEmailBody(ctx context.Context, templateID uuid.UUID, values map[string]string) ([]byte, error) {
	logger := libCommons.NewLoggerFromContext(ctx)

	input := model.GenerationInput{
		Values:       values,
		ExportFormat: constant.FormatEmailHTML,
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode generation input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v1/templates/%s/generations", c.baseURL, templateID), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		logger.Errorf("Failed to render template %s via TMS: %v", templateID, err)

		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.statusError(resp, "template")
	}

	var generation model.GenerationResponse
	if err := json.NewDecoder(resp.Body).Decode(&generation); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return c.download(ctx, generation.GenerationID)
}

func (c *Client) download(ctx context.Context, generationID uuid.UUID) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v1/generations/%s/download", c.baseURL, generationID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp, "generation")
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return data, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	result, err := c.breakers.Execute(constant.UpstreamTMS, func() (any, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}

		// Upstream 5xx counts as a breaker failure; client errors do not.
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, fmt.Errorf("upstream returned %d", resp.StatusCode)
		}

		return resp, nil
	})

	resp, _ := result.(*http.Response)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}

		return nil, err
	}

	return resp, nil
}

func (c *Client) statusError(resp *http.Response, entityType string) error {
	if resp.StatusCode == http.StatusNotFound {
		return pkg.ValidateBusinessError(constant.ErrEntityNotFound, entityType)
	}

	body, _ := io.ReadAll(resp.Body)

	return fmt.Errorf("tms request failed with status %d: %s", resp.StatusCode, string(body))
}
