// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"testing"

	"github.com/docstackhq/docstack/components/tms/internal/adapters/mongodb/template"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/model"
	"github.com/docstackhq/docstack/pkg/net/http"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func Test_getAllTemplates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTempRepo := template.NewMockRepository(ctrl)

	tempSvc := &UseCase{
		TemplateRepo: mockTempRepo,
	}

	filters := http.QueryHeader{
		Category:  "billing",
		Limit:     10,
		Page:      1,
		SortOrder: "desc",
	}

	t.Run("Success - Get all templates", func(t *testing.T) {
		mockTempRepo.EXPECT().
			FindList(gomock.Any(), filters).
			Return([]*model.Template{{Name: "Invoice"}, {Name: "Receipt"}}, nil)

		result, err := tempSvc.GetAllTemplates(context.Background(), filters)

		assert.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("Success - Empty result is an empty slice", func(t *testing.T) {
		mockTempRepo.EXPECT().
			FindList(gomock.Any(), filters).
			Return(nil, nil)

		result, err := tempSvc.GetAllTemplates(context.Background(), filters)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("Error - Repository failure propagates", func(t *testing.T) {
		mockTempRepo.EXPECT().
			FindList(gomock.Any(), filters).
			Return(nil, constant.ErrInternalServer)

		result, err := tempSvc.GetAllTemplates(context.Background(), filters)

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}
