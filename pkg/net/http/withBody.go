// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/docstackhq/docstack/pkg"
	cn "github.com/docstackhq/docstack/pkg/constant"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en2 "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
)

// DecodeHandlerFunc is a handler which works with withBody decorator.
// It receives a struct which was decoded by withBody decorator before.
// Ex: json -> withBody -> DecodeHandlerFunc.
type DecodeHandlerFunc func(p any, c *fiber.Ctx) error

// PayloadContextValue is a wrapper type used to keep Context.Locals safe.
type PayloadContextValue string

// ConstructorFunc representing a constructor of any type.
type ConstructorFunc func() any

// decoderHandler decodes payload coming from requests.
type decoderHandler struct {
	handler      DecodeHandlerFunc
	constructor  ConstructorFunc
	structSource any
}

func newOfType(s any) any {
	t := reflect.TypeOf(s)
	v := reflect.New(t.Elem())

	return v.Interface()
}

func WithBody(s any, h DecodeHandlerFunc) fiber.Handler {
	d := &decoderHandler{
		handler:      h,
		structSource: s,
	}

	return d.FiberHandlerFunc
}

// FiberHandlerFunc is a method on the decoderHandler struct. It decodes the incoming request's body to a Go struct,
// validates it, checks for any extraneous fields not defined in the struct, and finally calls the wrapped handler function.
func (d *decoderHandler) FiberHandlerFunc(c *fiber.Ctx) error {
	var s any

	if d.constructor != nil {
		s = d.constructor()
	} else {
		s = newOfType(d.structSource)
	}

	bodyBytes := c.Body()

	// Validate that body is not empty, whitespace-only, or literally "null"
	trimmedBody := strings.TrimSpace(string(bodyBytes))
	if len(trimmedBody) == 0 || trimmedBody == "null" {
		return BadRequest(c, pkg.ValidateBusinessError(cn.ErrMissingRequiredFields, ""))
	}

	if err := json.Unmarshal(bodyBytes, s); err != nil {
		// Convert JSON unmarshal errors to bad request errors
		if strings.Contains(err.Error(), "cannot unmarshal") {
			fieldName := extractFieldNameFromUnmarshalError(err.Error())
			knownFields := make(map[string]string)

			if fieldName != "" {
				knownFields[fieldName] = "Invalid type for this field"
			}

			return BadRequest(c, pkg.ValidateBadRequestFieldsError(pkg.FieldValidations{}, knownFields, "", make(map[string]any)))
		}

		return err
	}

	// Validate type mismatches before proceeding
	if err := validateTypeMismatches(bodyBytes, s); err != nil {
		return BadRequest(c, err)
	}

	marshaled, err := json.Marshal(s)
	if err != nil {
		return err
	}

	var originalMap, marshaledMap map[string]any

	if err := json.Unmarshal(bodyBytes, &originalMap); err != nil {
		return err
	}

	if err := json.Unmarshal(marshaled, &marshaledMap); err != nil {
		return err
	}

	diffFields := findUnknownFields(originalMap, marshaledMap)

	if len(diffFields) > 0 {
		err := pkg.ValidateBadRequestFieldsError(pkg.FieldValidations{}, pkg.FieldValidations{}, "", diffFields)
		return BadRequest(c, err)
	}

	if err := ValidateStruct(s); err != nil {
		return BadRequest(c, err)
	}

	c.Locals("fields", diffFields)

	return d.handler(s, c)
}

// findUnknownFields finds fields that are present in the original map but not in the marshaled map.
func findUnknownFields(original, marshaled map[string]any) map[string]any {
	diffFields := make(map[string]any)

	numKinds := pkg.GetMapNumKinds()

	for key, value := range original {
		if numKinds[reflect.ValueOf(value).Kind()] && value == 0.0 {
			continue
		}

		marshaledValue, ok := marshaled[key]
		if !ok {
			// If the key is not present in the marshaled map, marking as difference
			diffFields[key] = value
			continue
		}

		// Check for nested structures and direct value comparison
		switch originalValue := value.(type) {
		case map[string]any:
			if marshaledMap, ok := marshaledValue.(map[string]any); ok {
				nestedDiff := findUnknownFields(originalValue, marshaledMap)
				if len(nestedDiff) > 0 {
					diffFields[key] = nestedDiff
				}
			} else if !reflect.DeepEqual(originalValue, marshaledValue) {
				// If types mismatch (map vs non-map), marking as difference
				diffFields[key] = value
			}

		case []any:
			if marshaledArray, ok := marshaledValue.([]any); ok {
				arrayDiff := compareSlices(originalValue, marshaledArray)
				if len(arrayDiff) > 0 {
					diffFields[key] = arrayDiff
				}
			} else if !reflect.DeepEqual(originalValue, marshaledValue) {
				// If types mismatch (slice vs non-slice), marking as difference
				diffFields[key] = value
			}

		default:
			// Using reflect.DeepEqual for simple types (strings, ints, etc.)
			if !reflect.DeepEqual(value, marshaledValue) {
				diffFields[key] = value
			}
		}
	}

	return diffFields
}

// compareSlices compares two slices and returns differences.
func compareSlices(original, marshaled []any) []any {
	var diff []any

	// Iterate through the original slice and check differences
	for i, item := range original {
		if i >= len(marshaled) {
			// If marshaled slice is shorter, the original item is missing
			diff = append(diff, item)
		} else {
			tmpMarshaled := marshaled[i]
			// Compare individual items at the same index
			if originalMap, ok := item.(map[string]any); ok {
				if marshaledMap, ok := tmpMarshaled.(map[string]any); ok {
					nestedDiff := findUnknownFields(originalMap, marshaledMap)
					if len(nestedDiff) > 0 {
						diff = append(diff, nestedDiff)
					}
				}
			} else if !reflect.DeepEqual(item, tmpMarshaled) {
				diff = append(diff, item)
			}
		}
	}

	// Check if marshaled slice is longer
	for i := len(original); i < len(marshaled); i++ {
		diff = append(diff, marshaled[i])
	}

	return diff
}

// ValidateStruct validates a struct against defined validation rules, using the validator package.
func ValidateStruct(s any) error {
	v, trans := newValidator()

	k := reflect.ValueOf(s).Kind()
	if k == reflect.Ptr {
		k = reflect.ValueOf(s).Elem().Kind()
	}

	if k != reflect.Struct {
		return nil
	}

	err := v.Struct(s)
	if err != nil {
		errPtr := malformedRequestErr(err.(validator.ValidationErrors), trans)

		return &errPtr
	}

	return nil
}

func fields(errs validator.ValidationErrors, trans ut.Translator) pkg.FieldValidations {
	l := len(errs)
	if l > 0 {
		fields := make(pkg.FieldValidations, l)
		for _, e := range errs {
			fields[e.Field()] = e.Translate(trans)
		}

		return fields
	}

	return nil
}

func fieldsRequired(myMap pkg.FieldValidations) pkg.FieldValidations {
	result := make(pkg.FieldValidations)

	for key, value := range myMap {
		if strings.Contains(value, "required") {
			result[key] = value
		}
	}

	return result
}

func malformedRequestErr(err validator.ValidationErrors, trans ut.Translator) pkg.ValidationKnownFieldsError {
	invalidFieldsMap := fields(err, trans)

	requiredFields := fieldsRequired(invalidFieldsMap)

	var vErr pkg.ValidationKnownFieldsError

	_ = errors.As(pkg.ValidateBadRequestFieldsError(requiredFields, invalidFieldsMap, "", make(map[string]any)), &vErr)

	return vErr
}

//nolint:ireturn
func newValidator() (*validator.Validate, ut.Translator) {
	locale := en.New()
	uni := ut.New(locale, locale)

	trans, _ := uni.GetTranslator("en")

	v := validator.New()

	if err := en2.RegisterDefaultTranslations(v, trans); err != nil {
		panic(err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	_ = v.RegisterTranslation("required", trans, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is a required field", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required", formatErrorFieldName(fe.Namespace()))

		return t
	})

	_ = v.RegisterTranslation("gte", trans, func(ut ut.Translator) error {
		return ut.Add("gte", "{0} must be {1} or greater", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("gte", formatErrorFieldName(fe.Namespace()), fe.Param())

		return t
	})

	_ = v.RegisterTranslation("oneof", trans, func(ut ut.Translator) error {
		return ut.Add("oneof", "{0} must be one of [{1}]", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("oneof", formatErrorFieldName(fe.Namespace()), fe.Param())

		return t
	})

	return v, trans
}

// formatErrorFieldName formats field error names for error messages
func formatErrorFieldName(text string) string {
	re, _ := regexp.Compile(`\.(.+)$`)

	matches := re.FindStringSubmatch(text)
	if len(matches) > 1 {
		return matches[1]
	} else {
		return text
	}
}

// validateTypeMismatches checks if the JSON payload has type mismatches with the struct definition
func validateTypeMismatches(bodyBytes []byte, s any) error {
	var originalMap map[string]any
	if err := json.Unmarshal(bodyBytes, &originalMap); err != nil {
		return err
	}

	val := reflect.ValueOf(s)
	if val.Kind() != reflect.Ptr {
		return nil
	}

	val = val.Elem()

	if val.Kind() != reflect.Struct {
		return nil
	}

	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		// Get JSON tag name
		jsonTag := fieldType.Tag.Get("json")
		if jsonTag == "" || jsonTag == "-" {
			continue
		}

		// Remove omitempty and other options
		jsonName := strings.Split(jsonTag, ",")[0]

		// Check if field exists in original JSON
		if originalValue, exists := originalMap[jsonName]; exists {
			// Check type compatibility
			if err := validateFieldType(originalValue, field, fieldType); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateFieldType validates if the original JSON value is compatible with the struct field type
func validateFieldType(originalValue any, field reflect.Value, fieldType reflect.StructField) error {
	fieldKind := field.Kind()
	jsonTag := fieldType.Tag.Get("json")
	jsonName := strings.Split(jsonTag, ",")[0]

	// Define type compatibility rules
	typeMismatch := getTypeMismatch(originalValue, fieldKind)
	if typeMismatch != nil {
		return pkg.ValidateBusinessError(cn.ErrBadRequest, "", fmt.Sprintf("field '%s' expects %s but received %s", jsonName, fieldKind.String(), typeMismatch.receivedType))
	}

	return nil
}

// typeMismatchInfo holds information about a type mismatch
type typeMismatchInfo struct {
	receivedType string
	value        any
}

// getTypeMismatch checks if there's a type mismatch and returns mismatch info
func getTypeMismatch(originalValue any, fieldKind reflect.Kind) *typeMismatchInfo {
	switch val := originalValue.(type) {
	case string:
		if fieldKind == reflect.Map || fieldKind == reflect.Slice {
			return &typeMismatchInfo{receivedType: "string", value: val}
		}
	case map[string]any:
		if isSimpleType(fieldKind) {
			return &typeMismatchInfo{receivedType: "object", value: nil}
		}
	case []any:
		if isSimpleType(fieldKind) {
			return &typeMismatchInfo{receivedType: "array", value: nil}
		}
	case float64:
		if fieldKind == reflect.String || fieldKind == reflect.Map || fieldKind == reflect.Slice {
			return &typeMismatchInfo{receivedType: "number", value: val}
		}
	case bool:
		if fieldKind == reflect.String || fieldKind == reflect.Map || fieldKind == reflect.Slice {
			return &typeMismatchInfo{receivedType: "boolean", value: val}
		}
	}

	return nil
}

// isSimpleType checks if the field kind is a simple type
func isSimpleType(fieldKind reflect.Kind) bool {
	return fieldKind == reflect.String || fieldKind == reflect.Int || fieldKind == reflect.Float64 || fieldKind == reflect.Bool
}

// extractFieldNameFromUnmarshalError extracts the field name from a JSON unmarshal error
func extractFieldNameFromUnmarshalError(errorMsg string) string {
	// Look for the pattern "struct field PackageName.FieldName"
	re := regexp.MustCompile(`struct field \w+\.(\w+)`)
	matches := re.FindStringSubmatch(errorMsg)

	if len(matches) > 1 {
		return matches[1]
	}

	// Fallback: try to extract just the field name if the pattern doesn't match
	re2 := regexp.MustCompile(`field (\w+) of type`)
	matches2 := re2.FindStringSubmatch(errorMsg)

	if len(matches2) > 1 {
		return matches2[1]
	}

	return ""
}
