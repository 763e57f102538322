// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package cms is the HTTP client for the content service. TMS stores template
// files through it and the mailer fetches attachments from it.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//go:generate mockgen --destination=cms.mock.go --package=cms --copyright_file=../../../COPYRIGHT . DocumentClient

// DocumentClient is the capability the rest of the suite needs from CMS.
type DocumentClient interface {
	CreateDocument(ctx context.Context, fileName, contentType string, data []byte) (*model.Document, error)
	GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error)
	DownloadContent(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
}

// Client talks to CMS over HTTP with tracing and a circuit breaker.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breakers   *pkg.CircuitBreakerManager
}

// NewClient creates a CMS client for the given base URL.
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

// CreateDocument uploads file content as a multipart request.
func (c *Client) CreateDocument(ctx context.Context, fileName, contentType string, data []byte) (*model.Document, error) {
	logger := libCommons.NewLoggerFromContext(ctx)

	var body bytes.Buffer

	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/documents", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		logger.Errorf("Failed to upload document %s to CMS: %v", fileName, err)

		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp, "document")
	}

	var document model.Document
	if err := json.NewDecoder(resp.Body).Decode(&document); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &document, nil
}

// GetDocument fetches document metadata.
func (c *Client) GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v1/documents/%s", c.baseURL, id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp, "document")
	}

	var document model.Document
	if err := json.NewDecoder(resp.Body).Decode(&document); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &document, nil
}

// DownloadContent fetches raw document bytes. Returns the content plus the
// content type reported by CMS.
func (c *Client) DownloadContent(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v1/documents/%s/content", c.baseURL, id), nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", c.statusError(resp, "document")
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// DeleteDocument soft deletes a document.
func (c *Client) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/v1/documents/%s", c.baseURL, id), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return c.statusError(resp, "document")
	}

	return nil
}

// do runs the request through the circuit breaker so a dead CMS fast-fails
// instead of piling up blocked generations.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	result, err := c.breakers.Execute(constant.UpstreamCMS, func() (any, error) {
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

	return fmt.Errorf("cms request failed with status %d: %s", resp.StatusCode, string(body))
}
