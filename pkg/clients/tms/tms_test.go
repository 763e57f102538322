// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package tms

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

func TestRenderEmailBody(t *testing.T) {
	templateID := uuid.New()
	generationID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case fmt.Sprintf("/v1/templates/%s/generations", templateID):
			assert.Equal(t, http.MethodPost, r.Method)

			var input model.GenerationInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
			assert.Equal(t, pkgConstant.FormatEmailHTML, input.ExportFormat)
			assert.Equal(t, "Ada", input.Values["Name"])

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(model.GenerationResponse{
				GenerationID: generationID,
				ExportFormat: pkgConstant.FormatEmailHTML,
			})
		case fmt.Sprintf("/v1/generations/%s/download", generationID):
			assert.Equal(t, http.MethodGet, r.Method)

			_, _ = w.Write([]byte("<html><body>Hello Ada</body></html>"))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	body, err := newTestClient(server).RenderEmailBody(context.Background(), templateID, map[string]string{"Name": "Ada"})

	require.NoError(t, err)
	assert.Equal(t, []byte("<html><body>Hello Ada</body></html>"), body)
}

func TestRenderEmailBodyTemplateNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server).RenderEmailBody(context.Background(), uuid.New(), nil)

	require.Error(t, err)

	var notFound pkg.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, pkgConstant.ErrEntityNotFound.Error(), notFound.Code)
}
