// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

import (
	"errors"
)

// List of errors that can be returned.
// You can standardize errors
// Standardized error
var (
	ErrMissingRequiredFields        = errors.New("DOC-0001")
	ErrInvalidFileFormat            = errors.New("DOC-0002")
	ErrInvalidExportFormat          = errors.New("DOC-0003")
	ErrInvalidHeaderParameter       = errors.New("DOC-0004")
	ErrInvalidFileUploaded          = errors.New("DOC-0005")
	ErrEmptyFile                    = errors.New("DOC-0006")
	ErrFileContentInvalid           = errors.New("DOC-0007")
	ErrInvalidPathParameter         = errors.New("DOC-0008")
	ErrEntityNotFound               = errors.New("DOC-0009")
	ErrInvalidTemplateID            = errors.New("DOC-0010")
	ErrUnexpectedFieldsInTheRequest = errors.New("DOC-0011")
	ErrMissingFieldsInRequest       = errors.New("DOC-0012")
	ErrBadRequest                   = errors.New("DOC-0013")
	ErrInternalServer               = errors.New("DOC-0014")
	ErrInvalidQueryParameter        = errors.New("DOC-0015")
	ErrPaginationLimitExceeded      = errors.New("DOC-0016")
	ErrInvalidSortOrder             = errors.New("DOC-0017")
	ErrUnknownPlaceholderValues     = errors.New("DOC-0018")
	ErrEmbedPlaceholderUnknown      = errors.New("DOC-0019")
	ErrDuplicateEmbedPlaceholder    = errors.New("DOC-0020")
	ErrEmbedTemplateUnavailable     = errors.New("DOC-0021")
	ErrConversionFailed             = errors.New("DOC-0022")
	ErrConversionTimeout            = errors.New("DOC-0023")
	ErrStorageInconsistency         = errors.New("DOC-0024")
	ErrCompositionFailed            = errors.New("DOC-0025")
	ErrGenerationExpired            = errors.New("DOC-0026")
	ErrUploadTooLarge               = errors.New("DOC-0027")
	ErrExtensionNotAllowed          = errors.New("DOC-0028")
	ErrTemplateInactive             = errors.New("DOC-0029")
	ErrIdempotencyKeyConflict       = errors.New("DOC-0030")
	ErrDocumentLifecycleInvalid     = errors.New("DOC-0031")
)
