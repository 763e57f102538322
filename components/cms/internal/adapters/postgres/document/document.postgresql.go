// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package document

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/docstackhq/docstack/pkg/model"
	"github.com/docstackhq/docstack/pkg/postgres"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// documentTable is the metadata table for stored documents.
const documentTable = "document"

// Repository provides an interface for operations related on postgres document entities.
//
//go:generate mockgen --destination=document.postgresql.mock.go --package=document --copyright_file=../../../../../../COPYRIGHT . Repository
type Repository interface {
	Create(ctx context.Context, record *DocumentPostgreSQLModel) (*model.Document, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// DocumentPostgreSQLRepository is a PostgreSQL-specific implementation of the document Repository.
type DocumentPostgreSQLRepository struct {
	connection *postgres.Connection
}

// NewDocumentPostgreSQLRepository returns a new instance of DocumentPostgreSQLRepository using the given postgres connection.
func NewDocumentPostgreSQLRepository(pc *postgres.Connection) (*DocumentPostgreSQLRepository, error) {
	r := &DocumentPostgreSQLRepository{
		connection: pc,
	}

	if _, err := r.connection.GetDB(); err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return r, nil
}

// Create inserts a new document row and returns the stored entity.
func (dr *DocumentPostgreSQLRepository) Create(ctx context.Context, record *DocumentPostgreSQLModel) (*model.Document, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.create_document")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.document_id", record.ID.String()),
	)

	db, err := dr.connection.GetDB()
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	query, args, err := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert(documentTable).
		Columns("id", "name", "content_type", "size_bytes", "blob_key", "lifecycle", "created_at", "updated_at", "deleted_at").
		Values(record.ID, record.Name, record.ContentType, record.SizeBytes, record.BlobKey, record.Lifecycle, record.CreatedAt, record.UpdatedAt, record.DeletedAt).
		ToSql()
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to build insert query", err)

		return nil, err
	}

	if _, err = db.ExecContext(ctx, query, args...); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to insert document", err)

		logger.Errorf("Failed to insert document %s: %v", record.ID, err)

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindByID retrieves a document row by id, excluding soft-deleted rows.
func (dr *DocumentPostgreSQLRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.find_document_by_id")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.document_id", id.String()),
	)

	db, err := dr.connection.GetDB()
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	query, args, err := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "name", "content_type", "size_bytes", "blob_key", "lifecycle", "created_at", "updated_at", "deleted_at").
		From(documentTable).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to build select query", err)

		return nil, err
	}

	record := &DocumentPostgreSQLModel{}

	row := db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&record.ID, &record.Name, &record.ContentType, &record.SizeBytes, &record.BlobKey,
		&record.Lifecycle, &record.CreatedAt, &record.UpdatedAt, &record.DeletedAt); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to find document", err)

		logger.Warnf("Failed to find document %s: %v", id, err)

		return nil, err
	}

	return record.ToEntity(), nil
}

// SoftDelete marks a document row as deleted without removing it.
func (dr *DocumentPostgreSQLRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.soft_delete_document")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.document_id", id.String()),
	)

	db, err := dr.connection.GetDB()
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return err
	}

	now := time.Now().UTC()

	query, args, err := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update(documentTable).
		Set("lifecycle", string(model.LifecycleDeleted)).
		Set("deleted_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to build update query", err)

		return err
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to soft delete document", err)

		logger.Errorf("Failed to soft delete document %s: %v", id, err)

		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to read rows affected", err)

		return err
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
