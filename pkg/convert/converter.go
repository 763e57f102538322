// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package convert

import (
	"context"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/pdf"
	"github.com/docstackhq/docstack/pkg/placeholder"
)

// Output is a fully converted document ready for the artifact store.
type Output struct {
	Data      []byte
	MimeType  string
	Extension string
}

// Converter maps export formats onto engine conversions. HTML sources go to
// PDF through the chromedp pool instead of the external engine.
type Converter struct {
	engine  Engine
	pdfPool pdf.PDFGenerator
}

// NewConverter wires the external engine and the PDF pool.
func NewConverter(engine Engine, pdfPool pdf.PDFGenerator) *Converter {
	return &Converter{
		engine:  engine,
		pdfPool: pdfPool,
	}
}

// Export converts the rendered document to the requested export format.
func (c *Converter) Export(ctx context.Context, doc []byte, fileName, format string) (*Output, error) {
	kind := placeholder.DetectKind(doc, fileName)

	switch pkg.NormalizeExportFormat(format) {
	case constant.FormatOriginal:
		return passThrough(doc, kind), nil
	case constant.FormatWord:
		return c.toWord(ctx, doc, kind)
	case constant.FormatHTML:
		return c.toHTML(ctx, doc, kind)
	case constant.FormatEmailHTML:
		return c.toEmailHTML(ctx, doc, kind)
	case constant.FormatPDF:
		return c.toPDF(ctx, doc, kind)
	default:
		return nil, pkg.ValidateBusinessError(constant.ErrInvalidExportFormat, "conversion", format)
	}
}

func passThrough(doc []byte, kind placeholder.Kind) *Output {
	out := make([]byte, len(doc))
	copy(out, doc)

	return &Output{
		Data:      out,
		MimeType:  mimeTypeForKind(kind),
		Extension: kind.Extension(),
	}
}

// toWord produces a canonical DOCX. A DOCX source is re-saved through the
// engine so hand-edited archives come out normalized.
func (c *Converter) toWord(ctx context.Context, doc []byte, kind placeholder.Kind) (*Output, error) {
	result, err := c.engine.Convert(ctx, doc, kind.Extension(), ".docx")
	if err != nil {
		return nil, err
	}

	return &Output{
		Data:      result.Data,
		MimeType:  constant.MimeTypeDocx,
		Extension: ".docx",
	}, nil
}

// toHTML produces standalone HTML with image references left external.
func (c *Converter) toHTML(ctx context.Context, doc []byte, kind placeholder.Kind) (*Output, error) {
	if kind == placeholder.KindHTML {
		return passThrough(doc, kind), nil
	}

	result, err := c.engine.Convert(ctx, doc, kind.Extension(), ".html")
	if err != nil {
		return nil, err
	}

	return &Output{
		Data:      result.Data,
		MimeType:  constant.MimeTypeHTML,
		Extension: ".html",
	}, nil
}

// toEmailHTML produces a self-contained HTML body: engine assets are inlined
// as data URIs and converter artifact markers are stripped.
func (c *Converter) toEmailHTML(ctx context.Context, doc []byte, kind placeholder.Kind) (*Output, error) {
	var (
		html   []byte
		assets map[string][]byte
	)

	if kind == placeholder.KindHTML {
		html = doc
	} else {
		result, err := c.engine.Convert(ctx, doc, kind.Extension(), ".html")
		if err != nil {
			return nil, err
		}

		html = result.Data
		assets = result.Assets
	}

	return &Output{
		Data:      SanitizeForEmail(html, assets),
		MimeType:  constant.MimeTypeHTML,
		Extension: ".html",
	}, nil
}

// toPDF routes HTML through the browser pool and everything else through the
// engine.
func (c *Converter) toPDF(ctx context.Context, doc []byte, kind placeholder.Kind) (*Output, error) {
	if kind == placeholder.KindHTML {
		data, err := c.pdfPool.Generate(ctx, string(doc))
		if err != nil {
			return nil, conversionError(constant.ErrConversionFailed, kind.Extension(), ".pdf", err)
		}

		return &Output{
			Data:      data,
			MimeType:  constant.MimeTypePDF,
			Extension: ".pdf",
		}, nil
	}

	result, err := c.engine.Convert(ctx, doc, kind.Extension(), ".pdf")
	if err != nil {
		return nil, err
	}

	return &Output{
		Data:      result.Data,
		MimeType:  constant.MimeTypePDF,
		Extension: ".pdf",
	}, nil
}

func mimeTypeForKind(kind placeholder.Kind) string {
	switch kind {
	case placeholder.KindDocx:
		return constant.MimeTypeDocx
	case placeholder.KindHTML:
		return constant.MimeTypeHTML
	default:
		return constant.MimeTypeText
	}
}
