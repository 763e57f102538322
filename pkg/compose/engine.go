// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package compose splices rendered child templates into a parent document at
// named placeholders. Embeds apply in listed order; any child failure aborts
// the whole composition and no partial parent output is produced.
package compose

import (
	"context"
	"errors"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/placeholder"
)

// Embed describes one child template to splice into the parent.
type Embed struct {
	TemplateID  string
	Placeholder string
	FileName    string
	Source      []byte
	Values      map[string]string
}

// Engine composes a parent document from its embeds. It is stateless and safe
// for concurrent use.
type Engine struct{}

// NewEngine creates a composition engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Compose renders each embed with its own value map and splices the result at
// the parent's named placeholder. The parent's remaining value tokens are left
// untouched for the injection step that follows composition.
func (e *Engine) Compose(ctx context.Context, parent []byte, parentName string, embeds []Embed) ([]byte, error) {
	logger := libCommons.NewLoggerFromContext(ctx)

	if err := validateEmbeds(embeds); err != nil {
		return nil, err
	}

	out := parent

	for _, embed := range embeds {
		composed, err := e.applyEmbed(out, parentName, embed)
		if err != nil {
			logger.Errorf("Composition aborted at placeholder %s: %v", embed.Placeholder, err)

			return nil, wrapCompositionError(embed, err)
		}

		out = composed
	}

	return out, nil
}

// validateEmbeds rejects two embeds targeting the same placeholder before any
// child work starts.
func validateEmbeds(embeds []Embed) error {
	seen := make(map[string]bool, len(embeds))

	for _, embed := range embeds {
		if seen[embed.Placeholder] {
			return pkg.ValidateBusinessError(constant.ErrDuplicateEmbedPlaceholder, "composition", embed.Placeholder)
		}

		seen[embed.Placeholder] = true
	}

	return nil
}

// applyEmbed renders one child and splices it into the parent.
func (e *Engine) applyEmbed(parent []byte, parentName string, embed Embed) ([]byte, error) {
	rendered, err := placeholder.Inject(embed.Source, embed.FileName, embed.Values)
	if err != nil {
		return nil, err
	}

	parentKind := placeholder.DetectKind(parent, parentName)
	childKind := placeholder.DetectKind(rendered, embed.FileName)

	if parentKind == placeholder.KindDocx && childKind == placeholder.KindDocx {
		return spliceDocx(parent, embed.Placeholder, rendered)
	}

	childText, err := childTextContent(rendered, childKind)
	if err != nil {
		return nil, err
	}

	return placeholder.ReplaceToken(parent, parentName, embed.Placeholder, childText)
}

// spliceDocx replaces the paragraph holding the placeholder with the child's
// body blocks, keeping tables and formatting intact.
func spliceDocx(parent []byte, token string, child []byte) ([]byte, error) {
	childBody, err := placeholder.DocxBodyXML(child)
	if err != nil {
		return nil, err
	}

	out, replaced, err := placeholder.ReplaceParagraphs(parent, token, childBody)
	if err != nil {
		return nil, err
	}

	if replaced == 0 {
		return nil, pkg.ValidateBusinessError(constant.ErrEmbedPlaceholderUnknown, "composition", token)
	}

	return out, nil
}

// childTextContent extracts the text form of a rendered child for injection
// into a non-DOCX parent.
func childTextContent(rendered []byte, kind placeholder.Kind) (string, error) {
	if kind == placeholder.KindDocx {
		return placeholder.DocxText(rendered)
	}

	return string(rendered), nil
}

// wrapCompositionError attaches the embed's identifying info to the child
// failure. An unknown target placeholder stays a validation failure; anything
// that went wrong while rendering or splicing the child becomes a
// CompositionError.
func wrapCompositionError(embed Embed, err error) error {
	var validationErr pkg.ValidationError
	if errors.As(err, &validationErr) && validationErr.Code == constant.ErrEmbedPlaceholderUnknown.Error() {
		return err
	}

	var compositionErr pkg.CompositionError

	_ = errors.As(pkg.ValidateBusinessError(constant.ErrCompositionFailed, "composition", embed.Placeholder), &compositionErr)

	compositionErr.EmbedTemplateID = embed.TemplateID
	compositionErr.Placeholder = embed.Placeholder
	compositionErr.Err = err

	return compositionErr
}
