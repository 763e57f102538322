// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/docstackhq/docstack/components/tms/internal/adapters/mongodb/template"
	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/clients/cms"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/mock/gomock"
)

func Test_updateTemplateById(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTempRepo := template.NewMockRepository(ctrl)
	mockCMSClient := cms.NewMockDocumentClient(ctrl)
	tempId := uuid.New()

	tempSvc := &UseCase{
		TemplateRepo: mockTempRepo,
		CMSClient:    mockCMSClient,
	}

	activeTemplate := &model.Template{
		ID:        tempId,
		Name:      "Invoice",
		Lifecycle: model.LifecycleActive,
	}

	t.Run("Success - Update metadata and lifecycle", func(t *testing.T) {
		mockTempRepo.EXPECT().
			FindByID(gomock.Any(), tempId).
			Return(activeTemplate, nil)

		mockTempRepo.EXPECT().
			Update(gomock.Any(), tempId, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, updateFields *bson.M) error {
				setFields, ok := (*updateFields)["$set"].(bson.M)
				require.True(t, ok)
				assert.Equal(t, "Updated name", setFields["name"])
				assert.Equal(t, "inactive", setFields["lifecycle"])
				assert.Contains(t, setFields, "updated_at")

				return nil
			})

		mockTempRepo.EXPECT().
			FindByID(gomock.Any(), tempId).
			Return(&model.Template{ID: tempId, Name: "Updated name", Lifecycle: model.LifecycleInactive}, nil)

		result, err := tempSvc.UpdateTemplateByID(context.Background(), tempId, &model.UpdateTemplateInput{
			Name:      "Updated name",
			Lifecycle: "inactive",
		}, "", nil)

		require.NoError(t, err)
		assert.Equal(t, "Updated name", result.Name)
		assert.Equal(t, model.LifecycleInactive, result.Lifecycle)
	})

	t.Run("Error - Invalid export format", func(t *testing.T) {
		mockTempRepo.EXPECT().
			FindByID(gomock.Any(), tempId).
			Return(activeTemplate, nil)

		result, err := tempSvc.UpdateTemplateByID(context.Background(), tempId, &model.UpdateTemplateInput{
			DefaultFormat: "spreadsheet",
		}, "", nil)

		assert.Error(t, err)
		assert.Nil(t, result)

		var validationErr pkg.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, constant.ErrInvalidExportFormat.Error(), validationErr.Code)
	})

	t.Run("Error - Lifecycle transition from deleted is rejected", func(t *testing.T) {
		mockTempRepo.EXPECT().
			FindByID(gomock.Any(), tempId).
			Return(&model.Template{ID: tempId, Lifecycle: model.LifecycleDeleted}, nil)

		result, err := tempSvc.UpdateTemplateByID(context.Background(), tempId, &model.UpdateTemplateInput{
			Lifecycle: "active",
		}, "", nil)

		assert.Error(t, err)
		assert.Nil(t, result)

		var validationErr pkg.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, constant.ErrDocumentLifecycleInvalid.Error(), validationErr.Code)
	})

	t.Run("Error - Update failure propagates", func(t *testing.T) {
		mockTempRepo.EXPECT().
			FindByID(gomock.Any(), tempId).
			Return(activeTemplate, nil)

		mockTempRepo.EXPECT().
			Update(gomock.Any(), tempId, gomock.Any()).
			Return(constant.ErrInternalServer)

		result, err := tempSvc.UpdateTemplateByID(context.Background(), tempId, &model.UpdateTemplateInput{
			Description: "new description",
		}, "", nil)

		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("Success - Re-upload replaces the document and re-scans placeholders", func(t *testing.T) {
		oldDocId := uuid.New()
		newDocId := uuid.New()
		newSource := []byte("Amount due: {{ Total }} by {{ DueDate }}")

		mockTempRepo.EXPECT().
			FindByID(gomock.Any(), tempId).
			Return(&model.Template{
				ID:           tempId,
				DocumentID:   oldDocId,
				FileName:     "invoice.txt",
				Placeholders: []string{"Customer"},
				Lifecycle:    model.LifecycleActive,
			}, nil)

		mockCMSClient.EXPECT().
			CreateDocument(gomock.Any(), "invoice-v2.txt", "text/plain", newSource).
			Return(&model.Document{ID: newDocId}, nil)

		mockTempRepo.EXPECT().
			Update(gomock.Any(), tempId, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, updateFields *bson.M) error {
				setFields, ok := (*updateFields)["$set"].(bson.M)
				require.True(t, ok)
				assert.Equal(t, newDocId, setFields["document_id"])
				assert.Equal(t, "invoice-v2.txt", setFields["file_name"])
				assert.Equal(t, []string{"Total", "DueDate"}, setFields["placeholders"])

				return nil
			})

		mockCMSClient.EXPECT().
			DeleteDocument(gomock.Any(), oldDocId).
			Return(nil)

		mockTempRepo.EXPECT().
			FindByID(gomock.Any(), tempId).
			Return(&model.Template{
				ID:           tempId,
				DocumentID:   newDocId,
				FileName:     "invoice-v2.txt",
				Placeholders: []string{"Total", "DueDate"},
				Lifecycle:    model.LifecycleActive,
			}, nil)

		result, err := tempSvc.UpdateTemplateByID(context.Background(), tempId, &model.UpdateTemplateInput{}, "invoice-v2.txt", newSource)

		require.NoError(t, err)
		assert.Equal(t, newDocId, result.DocumentID)
		assert.Equal(t, []string{"Total", "DueDate"}, result.Placeholders)
	})

	t.Run("Error - Re-upload rolls back the new document when the update fails", func(t *testing.T) {
		oldDocId := uuid.New()
		newDocId := uuid.New()
		newSource := []byte("Hello {{ Customer }}")

		mockTempRepo.EXPECT().
			FindByID(gomock.Any(), tempId).
			Return(&model.Template{
				ID:         tempId,
				DocumentID: oldDocId,
				FileName:   "invoice.txt",
				Lifecycle:  model.LifecycleActive,
			}, nil)

		mockCMSClient.EXPECT().
			CreateDocument(gomock.Any(), "invoice-v2.txt", "text/plain", newSource).
			Return(&model.Document{ID: newDocId}, nil)

		mockTempRepo.EXPECT().
			Update(gomock.Any(), tempId, gomock.Any()).
			Return(constant.ErrInternalServer)

		mockCMSClient.EXPECT().
			DeleteDocument(gomock.Any(), newDocId).
			Return(nil)

		result, err := tempSvc.UpdateTemplateByID(context.Background(), tempId, &model.UpdateTemplateInput{}, "invoice-v2.txt", newSource)

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func Test_deleteTemplateById(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTempRepo := template.NewMockRepository(ctrl)
	tempId := uuid.New()

	tempSvc := &UseCase{
		TemplateRepo: mockTempRepo,
	}

	t.Run("Success - Delete an active template", func(t *testing.T) {
		mockTempRepo.EXPECT().
			FindByID(gomock.Any(), tempId).
			Return(&model.Template{ID: tempId, Lifecycle: model.LifecycleActive}, nil)

		mockTempRepo.EXPECT().
			SoftDelete(gomock.Any(), tempId).
			Return(nil)

		err := tempSvc.DeleteTemplateByID(context.Background(), tempId)

		assert.NoError(t, err)
	})

	t.Run("Error - Delete an unknown template", func(t *testing.T) {
		mockTempRepo.EXPECT().
			FindByID(gomock.Any(), tempId).
			Return(nil, constant.ErrInternalServer)

		err := tempSvc.DeleteTemplateByID(context.Background(), tempId)

		assert.Error(t, err)
	})

	t.Run("Error - Soft delete failure propagates", func(t *testing.T) {
		mockTempRepo.EXPECT().
			FindByID(gomock.Any(), tempId).
			Return(&model.Template{ID: tempId, Lifecycle: model.LifecycleActive}, nil)

		mockTempRepo.EXPECT().
			SoftDelete(gomock.Any(), tempId).
			Return(constant.ErrInternalServer)

		err := tempSvc.DeleteTemplateByID(context.Background(), tempId)

		assert.Error(t, err)
	})
}
