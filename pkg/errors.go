package pkg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/docstackhq/docstack/pkg/constant"
)

// EntityNotFoundError records an error indicating an entity was not found in any case that caused it.
// You can use it to representing a Database not found, cache not found or any other repository.
type EntityNotFoundError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

// Error implements the error interface.
func (e EntityNotFoundError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		if strings.TrimSpace(e.EntityType) != "" {
			return fmt.Sprintf("Entity %s not found", e.EntityType)
		}

		if e.Err != nil && strings.TrimSpace(e.Message) == "" {
			return e.Err.Error()
		}

		return "entity not found"
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e EntityNotFoundError) Unwrap() error {
	return e.Err
}

// ValidationError records a request or template input that failed validation before any work ran.
type ValidationError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string
	Message    string
	Code       string
	Err        error `json:"err,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if strings.TrimSpace(e.Code) != "" {
		return fmt.Sprintf("%s - %s", e.Code, e.Message)
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e ValidationError) Unwrap() error {
	return e.Err
}

// EntityConflictError records an error indicating an entity already exists in some repository
// You can use it to representing a Database conflict, cache or any other repository.
type EntityConflictError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

// Error implements the error interface.
func (e EntityConflictError) Error() string {
	if e.Err != nil && strings.TrimSpace(e.Message) == "" {
		return e.Err.Error()
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e EntityConflictError) Unwrap() error {
	return e.Err
}

// ConversionError records a failed format conversion. The external engine gets a single
// attempt per request; a timeout, crash or unusable output all surface as this type.
type ConversionError struct {
	EntityType   string `json:"entityType,omitempty"`
	Title        string `json:"title,omitempty"`
	Message      string `json:"message,omitempty"`
	Code         string `json:"code,omitempty"`
	SourceFormat string `json:"sourceFormat,omitempty"`
	TargetFormat string `json:"targetFormat,omitempty"`
	Err          error  `json:"err,omitempty"`
}

// Error implements the error interface.
func (e ConversionError) Error() string {
	if strings.TrimSpace(e.Message) == "" && e.Err != nil {
		return e.Err.Error()
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e ConversionError) Unwrap() error {
	return e.Err
}

// StorageInconsistencyError records an artifact whose index record is alive but whose
// bytes are missing. Distinct from not-found so operators can spot storage drift.
type StorageInconsistencyError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

// Error implements the error interface.
func (e StorageInconsistencyError) Error() string {
	if strings.TrimSpace(e.Message) == "" && e.Err != nil {
		return e.Err.Error()
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e StorageInconsistencyError) Unwrap() error {
	return e.Err
}

// CompositionError records a child template that failed to render during composition.
// It carries the embed's identifying info so the caller knows which child aborted the parent.
type CompositionError struct {
	EntityType      string `json:"entityType,omitempty"`
	Title           string `json:"title,omitempty"`
	Message         string `json:"message,omitempty"`
	Code            string `json:"code,omitempty"`
	EmbedTemplateID string `json:"embedTemplateId,omitempty"`
	Placeholder     string `json:"placeholder,omitempty"`
	Err             error  `json:"err,omitempty"`
}

// Error implements the error interface.
func (e CompositionError) Error() string {
	if strings.TrimSpace(e.Message) == "" && e.Err != nil {
		return e.Err.Error()
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e CompositionError) Unwrap() error {
	return e.Err
}

// UnprocessableOperationError indicates an operation that couldn't be performant because it's invalid.
type UnprocessableOperationError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

func (e UnprocessableOperationError) Error() string {
	return e.Message
}

// HTTPError indicates a http error raised in a http client.
type HTTPError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

func (e HTTPError) Error() string {
	return e.Message
}

// FailedPreconditionError indicates a precondition failed during an operation.
type FailedPreconditionError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e FailedPreconditionError) Error() string {
	return e.Message
}

// InternalServerError indicates an unexpected failure the caller cannot act on.
type InternalServerError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e InternalServerError) Error() string {
	return e.Message
}

// ResponseError is a struct used to return errors to the client.
type ResponseError struct {
	Code    int    `json:"code,omitempty"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

// Error returns the message of the ResponseError.
func (r ResponseError) Error() string {
	return r.Message
}

// ValidationKnownFieldsError records an error that occurred during a validation of known fields.
type ValidationKnownFieldsError struct {
	EntityType string           `json:"entityType,omitempty"`
	Title      string           `json:"title,omitempty"`
	Code       string           `json:"code,omitempty"`
	Message    string           `json:"message,omitempty"`
	Fields     FieldValidations `json:"fields,omitempty"`
}

// Error returns the error message for a ValidationKnownFieldsError.
func (r ValidationKnownFieldsError) Error() string {
	return r.Message
}

// FieldValidations is a map of known fields and their validation errors.
type FieldValidations map[string]string

// ValidationUnknownFieldsError records an error that occurred during a validation of known fields.
type ValidationUnknownFieldsError struct {
	EntityType string        `json:"entityType,omitempty"`
	Title      string        `json:"title,omitempty"`
	Code       string        `json:"code,omitempty"`
	Message    string        `json:"message,omitempty"`
	Fields     UnknownFields `json:"fields,omitempty"`
}

// Error returns the error message for a ValidationUnknownFieldsError.
func (r ValidationUnknownFieldsError) Error() string {
	return r.Message
}

// UnknownFields is a map of unknown fields and their error messages.
type UnknownFields map[string]any

// Methods to create errors for different scenarios:

// ValidateInternalError validates the error and returns an appropriate InternalServerError.
func ValidateInternalError(err error, entityType string) error {
	return InternalServerError{
		EntityType: entityType,
		Code:       constant.ErrInternalServer.Error(),
		Title:      "Internal Server Error",
		Message:    "The server encountered an unexpected error. Please try again later or contact support.",
		Err:        err,
	}
}

// ValidateBadRequestFieldsError validates the error and returns the appropriate bad request error code, title, message, and the invalid fields.
func ValidateBadRequestFieldsError(requiredFields, knownInvalidFields map[string]string, entityType string, unknownFields map[string]any) error {
	if len(unknownFields) == 0 && len(knownInvalidFields) == 0 && len(requiredFields) == 0 {
		return errors.New("expected knownInvalidFields, unknownFields and requiredFields to be non-empty")
	}

	if len(unknownFields) > 0 {
		return ValidationUnknownFieldsError{
			EntityType: entityType,
			Code:       constant.ErrUnexpectedFieldsInTheRequest.Error(),
			Title:      "Unexpected Fields in the Request",
			Message:    "The request body contains more fields than expected. Please send only the allowed fields as per the documentation. The unexpected fields are listed in the fields object.",
			Fields:     unknownFields,
		}
	}

	if len(requiredFields) > 0 {
		return ValidationKnownFieldsError{
			EntityType: entityType,
			Code:       constant.ErrMissingFieldsInRequest.Error(),
			Title:      "Missing Fields in Request",
			Message:    "Your request is missing one or more required fields. Please refer to the documentation to ensure all necessary fields are included in your request.",
			Fields:     requiredFields,
		}
	}

	return ValidationKnownFieldsError{
		EntityType: entityType,
		Code:       constant.ErrBadRequest.Error(),
		Title:      "Bad Request",
		Message:    "The server could not understand the request due to malformed syntax. Please check the listed fields and try again.",
		Fields:     knownInvalidFields,
	}
}

// ValidateBusinessError validates the error and returns the appropriate business error code, title, and message.
// error: The appropriate business error with code, title, and message.
func ValidateBusinessError(err error, entityType string, args ...any) error {
	errorMap := map[error]error{
		constant.ErrInvalidExportFormat: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidExportFormat.Error(),
			Title:      "Invalid Export Format",
			Message:    fmt.Sprintf("The requested export format '%v' is not supported. Supported formats are original, word, html, emailhtml and pdf.", args...),
		},
		constant.ErrInvalidFileFormat: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidFileFormat.Error(),
			Title:      "Invalid File Format",
			Message:    "The uploaded file is not in a supported format. Please upload a DOCX, HTML or plain-text file and try again.",
		},
		constant.ErrEmptyFile: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrEmptyFile.Error(),
			Title:      "Empty File",
			Message:    "The uploaded file is empty. Please upload a file with content and try again.",
		},
		constant.ErrFileContentInvalid: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrFileContentInvalid.Error(),
			Title:      "File Content Invalid",
			Message:    "The uploaded file could not be parsed. Please verify the file is not corrupted and try again.",
		},
		constant.ErrInvalidQueryParameter: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidQueryParameter.Error(),
			Title:      "Invalid Query Parameter",
			Message:    fmt.Sprintf("One or more query parameters are in an incorrect format. Please check the following parameters '%v' and ensure they meet the required format before trying again.", args),
		},
		constant.ErrPaginationLimitExceeded: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrPaginationLimitExceeded.Error(),
			Title:      "Pagination Limit Exceeded",
			Message:    fmt.Sprintf("The pagination limit exceeds the maximum allowed of %v items per page. Please verify the limit and try again.", args...),
		},
		constant.ErrInvalidSortOrder: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidSortOrder.Error(),
			Title:      "Invalid Sort Order",
			Message:    "The 'sort_order' field must be 'asc' or 'desc'. Please provide a valid sort order and try again.",
		},
		constant.ErrEntityNotFound: EntityNotFoundError{
			EntityType: entityType,
			Code:       constant.ErrEntityNotFound.Error(),
			Title:      "Entity Not Found",
			Message:    "No entity was found for the given ID. Please make sure to use the correct ID for the entity you are trying to manage.",
		},
		constant.ErrInvalidPathParameter: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidPathParameter.Error(),
			Title:      "Invalid Path Parameter",
			Message:    fmt.Sprintf("The provided path parameter '%v' is not a valid UUID. Please provide a valid UUID and try again.", args...),
		},
		constant.ErrInvalidHeaderParameter: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidHeaderParameter.Error(),
			Title:      "Invalid Header Parameter",
			Message:    fmt.Sprintf("The provided header '%v' is invalid. Please review the request headers and try again.", args...),
		},
		constant.ErrInvalidFileUploaded: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidFileUploaded.Error(),
			Title:      "Invalid File Uploaded",
			Message:    "The request does not contain a readable file upload. Please attach the file under the 'file' form field and try again.",
		},
		constant.ErrMissingRequiredFields: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrMissingRequiredFields.Error(),
			Title:      "Missing Required Fields",
			Message:    fmt.Sprintf("The required field '%v' is missing from the request. Please provide it and try again.", args...),
		},
		constant.ErrMissingFieldsInRequest: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrMissingFieldsInRequest.Error(),
			Title:      "Missing Fields in Request",
			Message:    fmt.Sprintf("The required field '%v' is missing from the request. Please provide it and try again.", args...),
		},
		constant.ErrBadRequest: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrBadRequest.Error(),
			Title:      "Bad Request",
			Message:    "The request payload could not be processed. Please review the request body and try again.",
		},
		constant.ErrInvalidTemplateID: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidTemplateID.Error(),
			Title:      "Invalid Template ID",
			Message:    "The provided template ID is not a valid UUID. Please verify the ID and try again.",
		},
		constant.ErrUnknownPlaceholderValues: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrUnknownPlaceholderValues.Error(),
			Title:      "Unknown Placeholder Values",
			Message:    fmt.Sprintf("The value map contains keys that do not match any declared placeholder: %v. Remove them or disable strict value checking.", args...),
		},
		constant.ErrEmbedPlaceholderUnknown: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrEmbedPlaceholderUnknown.Error(),
			Title:      "Embed Placeholder Unknown",
			Message:    fmt.Sprintf("The embed target placeholder '%v' is not declared by the parent template. Please verify the placeholder name and try again.", args...),
		},
		constant.ErrDuplicateEmbedPlaceholder: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrDuplicateEmbedPlaceholder.Error(),
			Title:      "Duplicate Embed Placeholder",
			Message:    fmt.Sprintf("More than one embed targets the placeholder '%v'. Each placeholder accepts at most one embed.", args...),
		},
		constant.ErrEmbedTemplateUnavailable: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrEmbedTemplateUnavailable.Error(),
			Title:      "Embed Template Unavailable",
			Message:    fmt.Sprintf("The embedded template '%v' does not exist or is not active. Please verify the embed template ID and try again.", args...),
		},
		constant.ErrConversionFailed: ConversionError{
			EntityType: entityType,
			Code:       constant.ErrConversionFailed.Error(),
			Title:      "Conversion Failed",
			Message:    "The document could not be converted to the requested format. Please try again later or choose another format.",
		},
		constant.ErrConversionTimeout: ConversionError{
			EntityType: entityType,
			Code:       constant.ErrConversionTimeout.Error(),
			Title:      "Conversion Timeout",
			Message:    "The document conversion did not finish within the allowed time. Please try again later.",
		},
		constant.ErrStorageInconsistency: StorageInconsistencyError{
			EntityType: entityType,
			Code:       constant.ErrStorageInconsistency.Error(),
			Title:      "Storage Inconsistency",
			Message:    "The generated document record exists but its file is missing from storage. Please generate the document again.",
		},
		constant.ErrCompositionFailed: CompositionError{
			EntityType: entityType,
			Code:       constant.ErrCompositionFailed.Error(),
			Title:      "Composition Failed",
			Message:    fmt.Sprintf("The embedded template targeting placeholder '%v' failed to render. The parent document was not produced.", args...),
		},
		constant.ErrGenerationExpired: EntityNotFoundError{
			EntityType: entityType,
			Code:       constant.ErrGenerationExpired.Error(),
			Title:      "Generated Document Expired",
			Message:    "The generated document has passed its retention window and is no longer available. Please generate it again.",
		},
		constant.ErrUploadTooLarge: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrUploadTooLarge.Error(),
			Title:      "Upload Too Large",
			Message:    fmt.Sprintf("The uploaded file exceeds the maximum allowed size of %v bytes. Please upload a smaller file.", args...),
		},
		constant.ErrExtensionNotAllowed: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrExtensionNotAllowed.Error(),
			Title:      "Extension Not Allowed",
			Message:    fmt.Sprintf("Files with the '%v' extension are not accepted. Please upload one of the allowed types.", args...),
		},
		constant.ErrTemplateInactive: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrTemplateInactive.Error(),
			Title:      "Template Inactive",
			Message:    "The template is not active and cannot be used for generation. Please activate the template or use another one.",
		},
		constant.ErrIdempotencyKeyConflict: EntityConflictError{
			EntityType: entityType,
			Code:       constant.ErrIdempotencyKeyConflict.Error(),
			Title:      "Idempotency Key Conflict",
			Message:    "A request with the same idempotency key is already in progress or completed. Please use a new key or wait for the original request.",
		},
		constant.ErrDocumentLifecycleInvalid: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrDocumentLifecycleInvalid.Error(),
			Title:      "Document Lifecycle Invalid",
			Message:    "The document is not in a state that allows this operation. Deleted documents cannot be read or modified.",
		},
	}

	if mappedError, found := errorMap[err]; found {
		return mappedError
	}

	return err
}
