// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/docstackhq/docstack/pkg"
	pkgConstant "github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/model"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(server *httptest.Server) *Client {
	client := NewClient(server.URL, pkg.NewCircuitBreakerManager(&log.NoneLogger{}))
	client.httpClient = server.Client()

	return client
}

func TestGetDocument(t *testing.T) {
	id := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, fmt.Sprintf("/v1/documents/%s", id), r.URL.Path)

		_ = json.NewEncoder(w).Encode(model.Document{
			ID:        id,
			Name:      "invoice.docx",
			Lifecycle: model.LifecycleActive,
		})
	}))
	defer server.Close()

	document, err := newTestClient(server).GetDocument(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, document.ID)
	assert.Equal(t, "invoice.docx", document.Name)
}

func TestGetDocumentNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server).GetDocument(context.Background(), uuid.New())

	require.Error(t, err)

	var notFound pkg.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, pkgConstant.ErrEntityNotFound.Error(), notFound.Code)
}

func TestDownloadContent(t *testing.T) {
	id := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, fmt.Sprintf("/v1/documents/%s/content", id), r.URL.Path)

		w.Header().Set("Content-Type", pkgConstant.MimeTypeDocx)
		_, _ = w.Write([]byte("docx-bytes"))
	}))
	defer server.Close()

	data, contentType, err := newTestClient(server).DownloadContent(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, []byte("docx-bytes"), data)
	assert.Equal(t, pkgConstant.MimeTypeDocx, contentType)
}

func TestCreateDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/documents", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)

		defer file.Close()

		assert.Equal(t, "invoice.docx", header.Filename)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(model.Document{
			ID:   uuid.New(),
			Name: header.Filename,
		})
	}))
	defer server.Close()

	document, err := newTestClient(server).CreateDocument(context.Background(), "invoice.docx", pkgConstant.MimeTypeDocx, []byte("docx-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "invoice.docx", document.Name)
}

func TestDeleteDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := newTestClient(server).DeleteDocument(context.Background(), uuid.New())

	require.NoError(t, err)
}

func TestServerErrorFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server).GetDocument(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream returned 500")
}
