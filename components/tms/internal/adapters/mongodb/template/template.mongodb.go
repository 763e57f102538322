// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package template

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/model"
	"github.com/docstackhq/docstack/pkg/net/http"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libMongo "github.com/LerianStudio/lib-commons/v3/commons/mongo"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
)

// Repository provides an interface for operations related on mongo template entities.
//
//go:generate mockgen --destination=template.mongodb.mock.go --package=template --copyright_file=../../../../../../COPYRIGHT . Repository
type Repository interface {
	Create(ctx context.Context, record *TemplateMongoDBModel) (*model.Template, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Template, error)
	FindList(ctx context.Context, filters http.QueryHeader) ([]*model.Template, error)
	Update(ctx context.Context, id uuid.UUID, updateFields *bson.M) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	IncrementCounter(ctx context.Context, id uuid.UUID, kind model.CounterKind) error
}

// TemplateMongoDBRepository is a MongoDB-specific implementation of the template Repository.
type TemplateMongoDBRepository struct {
	connection *libMongo.MongoConnection
	Database   string
}

// NewTemplateMongoDBRepository returns a new instance of TemplateMongoDBRepository using the given MongoDB connection.
func NewTemplateMongoDBRepository(mc *libMongo.MongoConnection) (*TemplateMongoDBRepository, error) {
	r := &TemplateMongoDBRepository{
		connection: mc,
		Database:   mc.Database,
	}

	if _, err := r.connection.GetDB(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	return r, nil
}

// Create inserts a new template entity into mongo.
func (tm *TemplateMongoDBRepository) Create(ctx context.Context, record *TemplateMongoDBModel) (*model.Template, error) {
	tracer := libCommons.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "mongodb.create_template")
	defer span.End()

	db, err := tm.connection.GetDB(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	coll := db.Database(strings.ToLower(tm.Database)).Collection(strings.ToLower(constant.MongoCollectionTemplate))

	ctx, spanInsert := tracer.Start(ctx, "mongodb.create_template.insert")

	err = libOpentelemetry.SetSpanAttributesFromStruct(&spanInsert, "template_record", record)
	if err != nil {
		libOpentelemetry.HandleSpanError(&spanInsert, "Failed to convert template record to JSON string", err)
	}

	_, err = coll.InsertOne(ctx, record)
	if err != nil {
		libOpentelemetry.HandleSpanError(&spanInsert, "Failed to insert template", err)

		return nil, err
	}

	spanInsert.End()

	return record.ToEntity(), nil
}

// FindByID retrieves a template from mongodb using the provided id. Soft
// deleted templates are invisible here.
func (tm *TemplateMongoDBRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	tracer := libCommons.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "mongodb.find_template_by_id")
	defer span.End()

	span.SetAttributes(
		attribute.String("template_id", id.String()),
	)

	db, err := tm.connection.GetDB(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	coll := db.Database(strings.ToLower(tm.Database)).Collection(strings.ToLower(constant.MongoCollectionTemplate))

	var record TemplateMongoDBModel

	if err = coll.
		FindOne(ctx, bson.M{"_id": id, "deleted_at": bson.D{{Key: "$eq", Value: nil}}}).
		Decode(&record); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to find template by id", err)

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindList retrieves templates from mongodb matching the query filters.
func (tm *TemplateMongoDBRepository) FindList(ctx context.Context, filters http.QueryHeader) ([]*model.Template, error) {
	tracer := libCommons.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "mongodb.find_all_templates")
	defer span.End()

	db, err := tm.connection.GetDB(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	coll := db.Database(strings.ToLower(tm.Database)).Collection(strings.ToLower(constant.MongoCollectionTemplate))

	queryFilter := bson.M{}

	if !libCommons.IsNilOrEmpty(&filters.Category) {
		queryFilter["category"] = filters.Category
	}

	if !libCommons.IsNilOrEmpty(&filters.ExportFormat) {
		queryFilter["default_format"] = filters.ExportFormat
	}

	if !libCommons.IsNilOrEmpty(&filters.Lifecycle) {
		queryFilter["lifecycle"] = filters.Lifecycle
	}

	if !filters.CreatedAt.IsZero() {
		end := filters.CreatedAt.Add(24 * time.Hour)
		queryFilter["created_at"] = bson.M{
			"$gte": filters.CreatedAt,
			"$lt":  end,
		}
	}

	queryFilter["deleted_at"] = bson.D{{Key: "$eq", Value: nil}}

	limit := int64(filters.Limit)
	skip := int64(filters.Page*filters.Limit - filters.Limit)

	sortOrder := 1
	if filters.SortOrder == "desc" {
		sortOrder = -1
	}

	// Templates get time-ordered UUIDv7 ids, so a cursor seeks on _id instead
	// of skipping pages.
	sortKey := "created_at"

	if !libCommons.IsNilOrEmpty(&filters.Cursor) {
		cursor, errCursor := http.DecodeCursor(filters.Cursor)
		if errCursor != nil {
			return nil, pkg.ValidateBusinessError(constant.ErrInvalidQueryParameter, "", "cursor")
		}

		lastID, errParse := uuid.Parse(cursor.ID)
		if errParse != nil {
			return nil, pkg.ValidateBusinessError(constant.ErrInvalidQueryParameter, "", "cursor")
		}

		seekOp := "$gt"
		if sortOrder == -1 {
			seekOp = "$lt"
		}

		queryFilter["_id"] = bson.M{seekOp: lastID}
		sortKey = "_id"
		skip = 0
	}

	opts := options.FindOptions{
		Limit: &limit,
		Skip:  &skip,
		Sort:  bson.D{{Key: sortKey, Value: sortOrder}},
	}

	ctx, spanFind := tracer.Start(ctx, "mongodb.find_all_templates.find")

	err = libOpentelemetry.SetSpanAttributesFromStruct(&spanFind, "filters", filters)
	if err != nil {
		libOpentelemetry.HandleSpanError(&spanFind, "Failed to convert filters to JSON string", err)
	}

	cur, err := coll.Find(ctx, queryFilter, &opts)
	if err != nil {
		libOpentelemetry.HandleSpanError(&spanFind, "Failed to find templates", err)

		return nil, err
	}

	spanFind.End()

	var results []*TemplateMongoDBModel

	for cur.Next(ctx) {
		var record TemplateMongoDBModel
		if err := cur.Decode(&record); err != nil {
			libOpentelemetry.HandleSpanError(&span, "Failed to decode template", err)

			return nil, err
		}

		results = append(results, &record)
	}

	if err := cur.Err(); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to iterate templates", err)

		return nil, err
	}

	if err := cur.Close(ctx); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to close cursor", err)

		return nil, err
	}

	templates := make([]*model.Template, 0, len(results))
	for i := range results {
		templates = append(templates, results[i].ToEntity())
	}

	return templates, nil
}

// Update applies the given update document to a template.
func (tm *TemplateMongoDBRepository) Update(ctx context.Context, id uuid.UUID, updateFields *bson.M) error {
	tracer := libCommons.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "mongodb.update_template")
	defer span.End()

	db, err := tm.connection.GetDB(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return err
	}

	coll := db.Database(strings.ToLower(tm.Database)).Collection(strings.ToLower(constant.MongoCollectionTemplate))
	opts := options.Update().SetUpsert(false)

	ctx, spanUpdate := tracer.Start(ctx, "mongodb.update_template.update_one")

	spanUpdate.SetAttributes(
		attribute.String("template_id", id.String()),
	)

	err = libOpentelemetry.SetSpanAttributesFromStruct(&spanUpdate, "update_template_input", updateFields)
	if err != nil {
		libOpentelemetry.HandleSpanError(&spanUpdate, "Failed to convert template record from entity to JSON string", err)

		return err
	}

	_, err = coll.UpdateOne(ctx, bson.M{"_id": id, "deleted_at": bson.D{{Key: "$eq", Value: nil}}}, updateFields, opts)
	if err != nil {
		libOpentelemetry.HandleSpanError(&spanUpdate, "Failed to update template", err)

		return err
	}

	spanUpdate.End()

	return nil
}

// SoftDelete marks a template deleted without removing the document.
func (tm *TemplateMongoDBRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tracer := libCommons.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "mongodb.delete_template")
	defer span.End()

	db, err := tm.connection.GetDB(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return err
	}

	coll := db.Database(strings.ToLower(tm.Database)).Collection(strings.ToLower(constant.MongoCollectionTemplate))

	ctx, spanDelete := tracer.Start(ctx, "mongodb.delete_template.update_one")
	defer spanDelete.End()

	spanDelete.SetAttributes(
		attribute.String("template_id", id.String()),
	)

	now := time.Now().UTC()

	_, err = coll.UpdateOne(ctx,
		bson.M{"_id": id, "deleted_at": bson.D{{Key: "$eq", Value: nil}}},
		bson.M{"$set": bson.M{
			"deleted_at": now,
			"updated_at": now,
			"lifecycle":  string(model.LifecycleDeleted),
		}},
	)
	if err != nil {
		libOpentelemetry.HandleSpanError(&spanDelete, "Failed to soft delete template", err)

		return err
	}

	return nil
}

// IncrementCounter atomically bumps the success or failure counter via $inc.
func (tm *TemplateMongoDBRepository) IncrementCounter(ctx context.Context, id uuid.UUID, kind model.CounterKind) error {
	tracer := libCommons.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "mongodb.increment_template_counter")
	defer span.End()

	span.SetAttributes(
		attribute.String("template_id", id.String()),
		attribute.String("counter_kind", string(kind)),
	)

	db, err := tm.connection.GetDB(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return err
	}

	coll := db.Database(strings.ToLower(tm.Database)).Collection(strings.ToLower(constant.MongoCollectionTemplate))

	field := "success_count"
	if kind == model.CounterFailure {
		field = "failure_count"
	}

	_, err = coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{field: 1}},
	)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to increment template counter", err)

		return err
	}

	return nil
}
