// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package pongo renders mailer subject and body snippets with pongo2.
// Document templates go through the placeholder pipeline instead; this
// renderer only covers the short free-form strings the mailer owns.
package pongo

import (
	"context"
	"regexp"
	"strings"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/flosch/pongo2/v6"
	"github.com/shopspring/decimal"
)

// TemplateRenderer handles rendering templates using pongo2
type TemplateRenderer struct{}

// NewTemplateRenderer creates a new TemplateRenderer
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{}
}

// RenderString renders a template string using the provided values.
func (r *TemplateRenderer) RenderString(ctx context.Context, template string, values map[string]string) (string, error) {
	logger := libCommons.NewLoggerFromContext(ctx)

	tpl, err := pongo2.FromString(template)
	if err != nil {
		logger.Errorf("Error parsing template: %s", err.Error())
		return "", err
	}

	pongoCtx := pongo2.Context{}
	for k, v := range values {
		pongoCtx[k] = v
	}

	out, err := tpl.Execute(pongoCtx)
	if err != nil {
		logger.Errorf("Error executing template: %s", err.Error())
		return "", err
	}

	return cleanNumericOutput(out), nil
}

// cleanNumericOutput removes trailing zeros from numeric values in the output
func cleanNumericOutput(output string) string {
	re := regexp.MustCompile(`\b\d+\.\d*0+\b`)

	return re.ReplaceAllStringFunc(output, cleanNumericString)
}

// cleanNumericString removes trailing zeros from a numeric string
func cleanNumericString(s string) string {
	s = strings.TrimSpace(s)

	if dec, err := decimal.NewFromString(s); err == nil {
		return dec.String()
	}

	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}

	return s
}
