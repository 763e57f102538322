// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package convert turns rendered documents into their requested export
// formats. The heavy lifting is delegated to an external engine behind the
// Engine interface; HTML sources render to PDF through the chromedp pool.
package convert

import (
	"context"
	"errors"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"
)

//go:generate mockgen --destination=convert.mock.go --package=convert --copyright_file=../../COPYRIGHT . Engine

// Result is the product of a single engine conversion. Assets holds sibling
// files the engine produced next to the primary output, keyed by base name;
// HTML conversions use them for extracted images.
type Result struct {
	Data   []byte
	Assets map[string][]byte
}

// Engine converts a document from one format to another. Implementations get
// a single attempt per request and must honor caller cancellation.
type Engine interface {
	Convert(ctx context.Context, src []byte, srcExt, targetExt string) (*Result, error)
}

// conversionError builds the typed error for a failed conversion, keeping the
// sentinel code so handlers can tell a timeout from an engine failure.
func conversionError(sentinel error, srcExt, targetExt string, cause error) error {
	var convErr pkg.ConversionError

	_ = errors.As(pkg.ValidateBusinessError(sentinel, "conversion"), &convErr)

	convErr.SourceFormat = srcExt
	convErr.TargetFormat = targetExt
	convErr.Err = cause

	return convErr
}

// IsTimeout reports whether the error is a conversion timeout.
func IsTimeout(err error) bool {
	var convErr pkg.ConversionError

	return errors.As(err, &convErr) && convErr.Code == constant.ErrConversionTimeout.Error()
}
