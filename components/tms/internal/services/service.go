// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"github.com/docstackhq/docstack/components/tms/internal/adapters/mongodb/template"
	"github.com/docstackhq/docstack/pkg/artifact"
	"github.com/docstackhq/docstack/pkg/clients/cms"
	"github.com/docstackhq/docstack/pkg/compose"
	"github.com/docstackhq/docstack/pkg/convert"
	"github.com/docstackhq/docstack/pkg/redis"
)

// UseCase is a struct to implement the services methods
type UseCase struct {
	// TemplateRepo provides an abstraction on top of the template data source.
	TemplateRepo template.Repository

	// CMSClient fetches and stores template source documents in the content service.
	CMSClient cms.DocumentClient

	// Composer splices rendered child templates into parent documents.
	Composer *compose.Engine

	// Converter turns rendered documents into the requested export format.
	Converter *convert.Converter

	// ArtifactStore holds generated documents until they expire.
	ArtifactStore *artifact.Store

	// RedisRepo provides an abstraction on top of the redis consumer.
	RedisRepo redis.RedisRepository

	// StrictValues makes generation fail when a declared placeholder has
	// neither a value nor an embed, instead of rendering it empty.
	StrictValues bool
}
