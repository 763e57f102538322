// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

// Export formats accepted on generation requests.
const (
	FormatOriginal  = "original"
	FormatWord      = "word"
	FormatHTML      = "html"
	FormatEmailHTML = "emailhtml"
	FormatPDF       = "pdf"
)

// ExportFormats lists every accepted export format.
var ExportFormats = []string{FormatOriginal, FormatWord, FormatHTML, FormatEmailHTML, FormatPDF}

// Source file extensions accepted by default on template and document uploads.
var DefaultAllowedSourceExtensions = []string{".docx", ".html", ".htm", ".txt"}

// MIME types for stored and generated files.
const (
	MimeTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeTypeHTML = "text/html"
	MimeTypeText = "text/plain"
	MimeTypePDF  = "application/pdf"
)
