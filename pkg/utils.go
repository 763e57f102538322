// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pkg

import (
	"math"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/docstackhq/docstack/pkg/constant"
)

// GetMapNumKinds get the map of numeric kinds to use in validations and conversions.
func GetMapNumKinds() map[reflect.Kind]bool {
	numKinds := make(map[reflect.Kind]bool)

	numKinds[reflect.Int] = true
	numKinds[reflect.Int8] = true
	numKinds[reflect.Int16] = true
	numKinds[reflect.Int32] = true
	numKinds[reflect.Int64] = true
	numKinds[reflect.Float32] = true
	numKinds[reflect.Float64] = true

	return numKinds
}

// IsNilOrEmpty returns a boolean indicating if a *string is nil or empty.
// It's use TrimSpace so, a string "  " and "" and "null" and "nil" will be considered empty
func IsNilOrEmpty(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == "" || strings.TrimSpace(*s) == "null" || strings.TrimSpace(*s) == "nil"
}

// NormalizeExportFormat lowercases and trims an export format value.
func NormalizeExportFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

// IsExportFormatValid returns a boolean indicating if the export format value is valid.
func IsExportFormatValid(format *string) bool {
	if IsNilOrEmpty(format) {
		return false
	}

	normalized := NormalizeExportFormat(*format)
	for _, f := range constant.ExportFormats {
		if normalized == f {
			return true
		}
	}

	return false
}

// ValidateExportFormat returns error if the export format value is not supported.
func ValidateExportFormat(format string) error {
	if !IsExportFormatValid(&format) {
		return ValidateBusinessError(constant.ErrInvalidExportFormat, "", format)
	}

	return nil
}

// IsExtensionAllowed reports whether fileName carries one of the allowed extensions.
// An empty allow-list falls back to the default set.
func IsExtensionAllowed(fileName string, allowed []string) bool {
	if len(allowed) == 0 {
		allowed = constant.DefaultAllowedSourceExtensions
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	for _, a := range allowed {
		if ext == strings.ToLower(strings.TrimSpace(a)) {
			return true
		}
	}

	return false
}

// ValidateServerAddress checks if the value matches the pattern <some-address>:<some-port> and returns the value if it does.
func ValidateServerAddress(value string) string {
	matched, _ := regexp.MatchString(`^[^:]+:\d+$`, value)
	if !matched {
		return ""
	}

	return value
}

// SafeInt64ToInt safely converts int64 to int
func SafeInt64ToInt(val int64) int {
	if val > math.MaxInt {
		return math.MaxInt
	} else if val < math.MinInt {
		return math.MinInt
	}

	return int(val)
}

// Sort orders accepted by list endpoints.
const (
	Asc  = "asc"
	Desc = "desc"
)
