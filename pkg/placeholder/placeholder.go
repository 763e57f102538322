// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package placeholder scans template documents for {{Token}} placeholders and
// injects literal values into them. DOCX, HTML and plain-text sources are
// supported; tokens split across DOCX runs are still found and replaced.
package placeholder

import (
	"bytes"
	"regexp"
	"strings"
)

// tokenPattern matches a well-formed placeholder. Anything that does not match,
// including stray braces and unbalanced delimiters, is left untouched.
var tokenPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_][A-Za-z0-9_.-]*)\s*\}\}`)

// Kind identifies how a template document stores its text.
type Kind int

const (
	KindText Kind = iota
	KindHTML
	KindDocx
)

// Extension returns the canonical file extension for the kind.
func (k Kind) Extension() string {
	switch k {
	case KindDocx:
		return ".docx"
	case KindHTML:
		return ".html"
	default:
		return ".txt"
	}
}

// MimeType returns the content type for documents of the kind.
func (k Kind) MimeType() string {
	switch k {
	case KindDocx:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case KindHTML:
		return "text/html"
	default:
		return "text/plain"
	}
}

var zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// DetectKind inspects the document bytes and file name to decide how to parse it.
// DOCX detection relies on the zip magic number, not the extension, so renamed
// files still parse correctly.
func DetectKind(data []byte, fileName string) Kind {
	if bytes.HasPrefix(data, zipMagic) {
		return KindDocx
	}

	lower := strings.ToLower(fileName)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return KindHTML
	}

	content := string(data)
	if strings.Contains(content, "<html") || strings.Contains(content, "<!DOCTYPE html") {
		return KindHTML
	}

	return KindText
}

// Scan returns the distinct placeholder tokens of the document in first-seen
// order. Every text-bearing region is visited; for DOCX that includes the body,
// tables, headers and footers. An empty document yields an empty set.
func Scan(data []byte, fileName string) ([]string, error) {
	if DetectKind(data, fileName) == KindDocx {
		return scanDocx(data)
	}

	return scanString(string(data)), nil
}

// Inject replaces every placeholder occurrence with its mapped value and
// returns a new document. Tokens missing from the value map become empty
// strings. Values are inserted literally; a value containing {{...}} is not
// expanded again. The source slice is never mutated.
func Inject(data []byte, fileName string, values map[string]string) ([]byte, error) {
	if DetectKind(data, fileName) == KindDocx {
		return injectDocx(data, values, true)
	}

	return []byte(injectString(string(data), values, false, true)), nil
}

// ReplaceToken replaces only the named token, leaving every other placeholder
// in place. Used by the composition engine to splice child content without
// disturbing tokens that are injected later.
func ReplaceToken(data []byte, fileName, token, value string) ([]byte, error) {
	values := map[string]string{token: value}

	if DetectKind(data, fileName) == KindDocx {
		return injectDocx(data, values, false)
	}

	return []byte(injectString(string(data), values, false, false)), nil
}

// scanString collects distinct tokens from raw text in first-seen order.
func scanString(content string) []string {
	matches := tokenPattern.FindAllStringSubmatch(content, -1)

	seen := make(map[string]bool, len(matches))
	tokens := make([]string, 0, len(matches))

	for _, m := range matches {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			tokens = append(tokens, name)
		}
	}

	return tokens
}

// injectString replaces tokens in raw text. Replacement happens in a single
// pass over the source, so values containing token syntax are never expanded.
// With replaceAll false, only tokens present in the value map are touched.
func injectString(content string, values map[string]string, escapeXML, replaceAll bool) string {
	var out strings.Builder

	last := 0

	for _, loc := range tokenPattern.FindAllStringSubmatchIndex(content, -1) {
		name := content[loc[2]:loc[3]]

		value, mapped := values[name]
		if !replaceAll && !mapped {
			continue
		}

		out.WriteString(content[last:loc[0]])

		if escapeXML {
			value = escapeXMLText(value)
		}

		out.WriteString(value)

		last = loc[1]
	}

	out.WriteString(content[last:])

	return out.String()
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXMLText(s string) string {
	return xmlEscaper.Replace(s)
}
