// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/docstackhq/docstack/components/tms/internal/adapters/mongodb/template"
	"github.com/docstackhq/docstack/pkg/clients/cms"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_createTemplate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTempRepo := template.NewMockRepository(ctrl)
	mockCMS := cms.NewMockDocumentClient(ctrl)

	tempSvc := &UseCase{
		TemplateRepo: mockTempRepo,
		CMSClient:    mockCMS,
	}

	documentId := uuid.New()
	fileBytes := []byte("Invoice {{ InvoiceNumber }} for {{ Customer }}")

	input := &model.CreateTemplateInput{
		Name:          "Invoice",
		Description:   "Monthly invoice",
		Category:      "billing",
		DefaultFormat: "PDF",
	}

	t.Run("Success - Create template scans placeholders and stores the file", func(t *testing.T) {
		mockCMS.EXPECT().
			CreateDocument(gomock.Any(), "invoice.txt", "text/plain", fileBytes).
			Return(&model.Document{ID: documentId}, nil)

		mockTempRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, record *template.TemplateMongoDBModel) (*model.Template, error) {
				assert.Equal(t, "Invoice", record.Name)
				assert.Equal(t, documentId, record.DocumentID)
				assert.Equal(t, []string{"InvoiceNumber", "Customer"}, record.Placeholders)
				assert.Equal(t, constant.FormatPDF, record.DefaultFormat)
				assert.Equal(t, string(model.LifecycleActive), record.Lifecycle)

				return record.ToEntity(), nil
			})

		result, err := tempSvc.CreateTemplate(context.Background(), input, "invoice.txt", fileBytes)

		require.NoError(t, err)
		assert.Equal(t, documentId, result.DocumentID)
		assert.Equal(t, model.LifecycleActive, result.Lifecycle)
	})

	t.Run("Error - Storage failure leaves no template record", func(t *testing.T) {
		mockCMS.EXPECT().
			CreateDocument(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("upstream returned 503"))

		result, err := tempSvc.CreateTemplate(context.Background(), input, "invoice.txt", fileBytes)

		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("Error - Repository failure rolls back the uploaded document", func(t *testing.T) {
		mockCMS.EXPECT().
			CreateDocument(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&model.Document{ID: documentId}, nil)

		mockTempRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil, constant.ErrInternalServer)

		mockCMS.EXPECT().
			DeleteDocument(gomock.Any(), documentId).
			Return(nil)

		result, err := tempSvc.CreateTemplate(context.Background(), input, "invoice.txt", fileBytes)

		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("Success - Missing default format falls back to original", func(t *testing.T) {
		mockCMS.EXPECT().
			CreateDocument(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&model.Document{ID: documentId}, nil)

		mockTempRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, record *template.TemplateMongoDBModel) (*model.Template, error) {
				assert.Equal(t, constant.FormatOriginal, record.DefaultFormat)

				return record.ToEntity(), nil
			})

		result, err := tempSvc.CreateTemplate(context.Background(), &model.CreateTemplateInput{Name: "Plain"}, "plain.txt", fileBytes)

		require.NoError(t, err)
		assert.Equal(t, constant.FormatOriginal, result.DefaultFormat)
	})
}
