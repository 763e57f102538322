// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package http

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"

	"github.com/google/uuid"
)

// QueryHeader entity from query parameter from get apis
type QueryHeader struct {
	Name         string
	Category     string
	ExportFormat string
	Lifecycle    string
	TemplateID   uuid.UUID
	Limit        int
	Page         int
	SortOrder    string
	Cursor       string
	CreatedAt    time.Time
}

// Pagination entity from query parameter from get apis
type Pagination struct {
	Limit     int
	Page      int
	SortOrder string
}

// ToOffsetPagination maps the query header to offset paging. The cursor is
// deliberately excluded; cursor seek and page offsets are mutually exclusive.
func (qh *QueryHeader) ToOffsetPagination() Pagination {
	return Pagination{
		Limit:     qh.Limit,
		Page:      qh.Page,
		SortOrder: qh.SortOrder,
	}
}

// normalizeParams rewrites legacy camelCase query parameter keys to their
// snake_case equivalents so the parsing loop only needs to match one format.
// When both formats are present for the same parameter, snake_case takes precedence.
func normalizeParams(params map[string]string) map[string]string {
	aliases := map[string]string{
		"exportFormat": "export_format",
		"sortOrder":    "sort_order",
		"templateId":   "template_id",
		"createdAt":    "created_at",
	}

	normalized := make(map[string]string, len(params))

	for k, v := range params {
		normalized[k] = v
	}

	for camel, snake := range aliases {
		if _, hasSnake := normalized[snake]; hasSnake {
			// snake_case already present; remove legacy camelCase if it exists
			delete(normalized, camel)
			continue
		}

		if val, hasCamel := normalized[camel]; hasCamel {
			normalized[snake] = val
			delete(normalized, camel)
		}
	}

	return normalized
}

// parsePositiveInt parses a string as an integer and validates that the result
// is at least 1. It returns a validation error referencing paramName on failure.
func parsePositiveInt(value, paramName string) (int, error) {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, pkg.ValidateBusinessError(constant.ErrInvalidQueryParameter, "", paramName)
	}

	if parsed < 1 {
		return 0, pkg.ValidateBusinessError(constant.ErrInvalidQueryParameter, "", paramName)
	}

	return parsed, nil
}

// ValidateParameters validate and return struct of default parameters.
// It accepts both snake_case (preferred) and camelCase (deprecated) query parameter names.
func ValidateParameters(params map[string]string) (*QueryHeader, error) {
	params = normalizeParams(params)

	var (
		createdAt    time.Time
		name         string
		category     string
		exportFormat string
		lifecycle    string
		templateID   uuid.UUID
		cursor       string
		limit        = constant.DefaultPaginationLimit
		page         = constant.DefaultPaginationPage
		sortOrder    = pkg.Desc
	)

	for key, value := range params {
		switch key {
		case "name":
			name = value
		case "category":
			category = value
		case "export_format":
			if !pkg.IsExportFormatValid(&value) {
				return nil, pkg.ValidateBusinessError(constant.ErrInvalidExportFormat, "", value)
			}

			exportFormat = pkg.NormalizeExportFormat(value)
		case "lifecycle":
			lifecycle = value
		case "template_id":
			if parsedID, err := uuid.Parse(value); err == nil {
				templateID = parsedID
			}
		case "limit":
			parsed, err := parsePositiveInt(value, "limit")
			if err != nil {
				return nil, err
			}

			limit = parsed
		case "page":
			parsed, err := parsePositiveInt(value, "page")
			if err != nil {
				return nil, err
			}

			page = parsed
		case "sort_order":
			sortOrder = strings.ToLower(value)
		case "cursor":
			cursor = value
		case "created_at":
			createdAt, _ = time.Parse("2006-01-02", value)
		}
	}

	err := validatePagination(cursor, sortOrder, limit)
	if err != nil {
		return nil, err
	}

	query := &QueryHeader{
		Name:         name,
		Category:     category,
		ExportFormat: exportFormat,
		Lifecycle:    lifecycle,
		TemplateID:   templateID,
		Limit:        limit,
		Page:         page,
		SortOrder:    sortOrder,
		Cursor:       cursor,
		CreatedAt:    createdAt,
	}

	return query, nil
}

// ValidateUploadedFile checks the file header against size and extension limits before reading it.
func ValidateUploadedFile(fileHeader *multipart.FileHeader, maxSizeBytes int64, allowedExtensions []string) error {
	if fileHeader.Size == 0 {
		return pkg.ValidateBusinessError(constant.ErrEmptyFile, "")
	}

	if maxSizeBytes > 0 && fileHeader.Size > maxSizeBytes {
		return pkg.ValidateBusinessError(constant.ErrUploadTooLarge, "", maxSizeBytes)
	}

	if !pkg.IsExtensionAllowed(fileHeader.Filename, allowedExtensions) {
		return pkg.ValidateBusinessError(constant.ErrExtensionNotAllowed, "", strings.ToLower(filepath.Ext(fileHeader.Filename)))
	}

	return nil
}

// ReadMultipartFile reads the entire uploaded file into memory.
func ReadMultipartFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, pkg.ValidateBusinessError(constant.ErrInvalidFileUploaded, "")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, pkg.ValidateBusinessError(constant.ErrInvalidFileUploaded, "")
	}

	return data, nil
}

func validatePagination(cursor, sortOrder string, limit int) error {
	maxPaginationLimit := pkg.SafeInt64ToInt(pkg.GetenvIntOrDefault("MAX_PAGINATION_LIMIT", constant.DefaultMaxPaginationLimit))

	if limit > maxPaginationLimit {
		return pkg.ValidateBusinessError(constant.ErrPaginationLimitExceeded, "", maxPaginationLimit)
	}

	if sortOrder != pkg.Asc && sortOrder != pkg.Desc {
		return pkg.ValidateBusinessError(constant.ErrInvalidSortOrder, "")
	}

	if cursor != "" {
		if _, err := DecodeCursor(cursor); err != nil {
			return pkg.ValidateBusinessError(constant.ErrInvalidQueryParameter, "", "cursor")
		}
	}

	return nil
}
