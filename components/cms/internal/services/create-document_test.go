// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/docstackhq/docstack/components/cms/internal/adapters/postgres/document"
	"github.com/docstackhq/docstack/pkg/model"
	"github.com/docstackhq/docstack/pkg/storage"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func Test_createDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDocRepo := document.NewMockRepository(ctrl)
	mockStorage := storage.NewMockObjectStorage(ctrl)

	docSvc := &UseCase{
		DocumentRepo: mockDocRepo,
		Storage:      mockStorage,
	}

	fileBytes := []byte("invoice body {{Customer}}")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Success - Upload blob and insert metadata",
			mockSetup: func() {
				mockStorage.EXPECT().
					Upload(gomock.Any(), gomock.Any(), gomock.Any(), "text/plain").
					DoAndReturn(func(_ context.Context, key string, reader io.Reader, _ string) (string, error) {
						assert.True(t, strings.HasPrefix(key, "documents/"))
						assert.True(t, strings.HasSuffix(key, "/invoice.txt"))

						data, err := io.ReadAll(reader)
						assert.NoError(t, err)
						assert.Equal(t, fileBytes, data)

						return key, nil
					})

				mockDocRepo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, record *document.DocumentPostgreSQLModel) (*model.Document, error) {
						assert.Equal(t, "invoice.txt", record.Name)
						assert.Equal(t, "text/plain", record.ContentType)
						assert.Equal(t, int64(len(fileBytes)), record.SizeBytes)
						assert.Equal(t, string(model.LifecycleActive), record.Lifecycle)
						assert.NotEmpty(t, record.BlobKey)

						return record.ToEntity(), nil
					})
			},
			expectErr: false,
		},
		{
			name: "Error - Blob upload fails",
			mockSetup: func() {
				mockStorage.EXPECT().
					Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("bucket unavailable"))
			},
			expectErr: true,
		},
		{
			name: "Error - Metadata insert fails and blob is rolled back",
			mockSetup: func() {
				mockStorage.EXPECT().
					Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
						return key, nil
					})

				mockDocRepo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("insert failed"))

				mockStorage.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			result, err := docSvc.CreateDocument(context.Background(), "invoice.txt", "text/plain", fileBytes)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, "invoice.txt", result.Name)
				assert.Equal(t, model.LifecycleActive, result.Lifecycle)
			}
		})
	}
}
