// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package template

import (
	"context"
	"strings"

	"github.com/docstackhq/docstack/pkg/constant"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
)

// EnsureIndexes creates all indexes for the templates collection. Idempotent
// and safe to run on every startup.
func (tm *TemplateMongoDBRepository) EnsureIndexes(ctx context.Context) error {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.template.ensure_indexes")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.collection", constant.MongoCollectionTemplate),
	)

	logger.Infof("Creating indexes for %s collection", constant.MongoCollectionTemplate)

	db, err := tm.connection.GetDB(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)
		return err
	}

	coll := db.Database(strings.ToLower(tm.Database)).Collection(strings.ToLower(constant.MongoCollectionTemplate))

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "_id", Value: 1},
				{Key: "deleted_at", Value: 1},
			},
			Options: options.Index().
				SetName("idx_template_id_deleted"),
		},
		{
			Keys: bson.D{
				{Key: "deleted_at", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("idx_template_list_main"),
		},
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "deleted_at", Value: 1},
			},
			Options: options.Index().
				SetName("idx_template_category"),
		},
	}

	ctx, spanCreate := tracer.Start(ctx, "repository.template.ensure_indexes.create_many")
	defer spanCreate.End()

	createCtx, cancel := context.WithTimeout(ctx, constant.MongoIndexCreateTimeout)
	defer cancel()

	names, err := coll.Indexes().CreateMany(createCtx, indexes)
	if err != nil {
		libOpentelemetry.HandleSpanError(&spanCreate, "Failed to create template indexes", err)

		return err
	}

	logger.Infof("Created template indexes: %v", names)

	return nil
}
