// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package placeholder

import (
	"archive/zip"
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"
)

// partSeparator breaks the logical text at paragraph and part boundaries so a
// token can never match across them. The byte cannot appear in well-formed XML
// text and is rejected by the token pattern.
const partSeparator = "\x00"

// textSegment is the text content of one <w:t> element, tracked with its raw
// byte span inside the part so replacements can be written back in place.
type textSegment struct {
	rawStart     int
	rawEnd       int
	logicalStart int
	text         string
}

// docxPart is one XML part of the package that carries document text.
type docxPart struct {
	name     string
	raw      string
	segments []textSegment
	logical  string
}

// isTextPart reports whether the zip entry holds document text. The body is
// scanned first, then headers, footers and notes in name order.
func isTextPart(name string) bool {
	if name == "word/document.xml" {
		return true
	}

	if !strings.HasPrefix(name, "word/") || !strings.HasSuffix(name, ".xml") {
		return false
	}

	base := strings.TrimPrefix(name, "word/")

	return strings.HasPrefix(base, "header") ||
		strings.HasPrefix(base, "footer") ||
		base == "footnotes.xml" ||
		base == "endnotes.xml"
}

// parseDocxParts opens the package and segments every text-bearing part.
func parseDocxParts(data []byte) ([]docxPart, *zip.Reader, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, nil, pkg.ValidateBusinessError(constant.ErrFileContentInvalid, "")
	}

	var parts []docxPart

	for _, f := range reader.File {
		if !isTextPart(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, nil, pkg.ValidateBusinessError(constant.ErrFileContentInvalid, "")
		}

		raw, err := io.ReadAll(rc)
		_ = rc.Close()

		if err != nil {
			return nil, nil, pkg.ValidateBusinessError(constant.ErrFileContentInvalid, "")
		}

		part := segmentPart(f.Name, string(raw))
		parts = append(parts, part)
	}

	// Body first, then the remaining parts in name order for a stable
	// first-seen token ordering.
	sort.SliceStable(parts, func(i, j int) bool {
		if parts[i].name == "word/document.xml" {
			return parts[j].name != "word/document.xml"
		}

		if parts[j].name == "word/document.xml" {
			return false
		}

		return parts[i].name < parts[j].name
	})

	return parts, reader, nil
}

// segmentPart walks the raw XML of one part and records the text content of
// every <w:t> element. Paragraph ends insert a separator into the logical text
// so tokens cannot span paragraphs.
func segmentPart(name, raw string) docxPart {
	part := docxPart{name: name, raw: raw}

	var logical strings.Builder

	pos := 0

	for pos < len(raw) {
		open := strings.Index(raw[pos:], "<")
		if open < 0 {
			break
		}

		open += pos

		closeIdx := strings.Index(raw[open:], ">")
		if closeIdx < 0 {
			break
		}

		closeIdx += open
		tag := raw[open : closeIdx+1]

		switch {
		case isWTOpenTag(tag):
			end := strings.Index(raw[closeIdx+1:], "</w:t>")
			if end < 0 {
				pos = closeIdx + 1
				continue
			}

			end += closeIdx + 1

			part.segments = append(part.segments, textSegment{
				rawStart:     closeIdx + 1,
				rawEnd:       end,
				logicalStart: logical.Len(),
				text:         raw[closeIdx+1 : end],
			})
			logical.WriteString(raw[closeIdx+1 : end])

			pos = end + len("</w:t>")
		case tag == "</w:p>":
			logical.WriteString(partSeparator)

			pos = closeIdx + 1
		default:
			pos = closeIdx + 1
		}
	}

	part.logical = logical.String()

	return part
}

// isWTOpenTag matches <w:t> and <w:t ...> but not <w:tab/>, <w:tc> or <w:tbl>,
// and rejects the self-closing empty form.
func isWTOpenTag(tag string) bool {
	if !strings.HasPrefix(tag, "<w:t") {
		return false
	}

	if strings.HasSuffix(tag, "/>") {
		return false
	}

	rest := tag[len("<w:t"):]

	return rest == ">" || strings.HasPrefix(rest, " ")
}

// scanDocx collects distinct tokens across every text part in first-seen order.
func scanDocx(data []byte) ([]string, error) {
	parts, _, err := parseDocxParts(data)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)

	var tokens []string

	for _, part := range parts {
		for _, name := range scanString(part.logical) {
			if !seen[name] {
				seen[name] = true
				tokens = append(tokens, name)
			}
		}
	}

	if tokens == nil {
		tokens = []string{}
	}

	return tokens, nil
}

// injectDocx rewrites every text part with the mapped values and repackages the
// archive. Parts without tokens are copied through byte-identical.
func injectDocx(data []byte, values map[string]string, replaceAll bool) ([]byte, error) {
	parts, reader, err := parseDocxParts(data)
	if err != nil {
		return nil, err
	}

	rewritten := make(map[string]string, len(parts))

	for _, part := range parts {
		matches := filterMatches(tokenPattern.FindAllStringSubmatchIndex(part.logical, -1), part.logical, values, replaceAll)
		if len(matches) == 0 {
			continue
		}

		rewritten[part.name] = rewritePart(part, values, matches)
	}

	if len(rewritten) == 0 {
		out := make([]byte, len(data))
		copy(out, data)

		return out, nil
	}

	return repackDocx(reader, rewritten)
}

// filterMatches keeps only the matches that should be replaced. With
// replaceAll false, tokens missing from the value map stay in place.
func filterMatches(matches [][]int, logical string, values map[string]string, replaceAll bool) [][]int {
	if replaceAll {
		return matches
	}

	filtered := make([][]int, 0, len(matches))

	for _, m := range matches {
		if _, mapped := values[logical[m[2]:m[3]]]; mapped {
			filtered = append(filtered, m)
		}
	}

	return filtered
}

// rewritePart replaces the matched token occurrences in the part's logical
// text and writes the result back into the owning segments. A token split
// across runs has its value written into the run where the token starts; the
// remaining covered runs keep only their text outside the token.
func rewritePart(part docxPart, values map[string]string, matches [][]int) string {
	if len(matches) == 0 {
		return part.raw
	}

	newTexts := make([]string, len(part.segments))

	for i, seg := range part.segments {
		var sb strings.Builder

		segEnd := seg.logicalStart + len(seg.text)

		for p := seg.logicalStart; p < segEnd; p++ {
			m := matchCovering(matches, p)
			if m == nil {
				sb.WriteByte(part.logical[p])
				continue
			}

			if p == m[0] {
				sb.WriteString(escapeXMLText(values[part.logical[m[2]:m[3]]]))
			}
		}

		newTexts[i] = sb.String()
	}

	var out strings.Builder

	last := 0

	for i, seg := range part.segments {
		out.WriteString(part.raw[last:seg.rawStart])
		out.WriteString(newTexts[i])

		last = seg.rawEnd
	}

	out.WriteString(part.raw[last:])

	return out.String()
}

// matchCovering returns the match whose span contains logical position p.
func matchCovering(matches [][]int, p int) []int {
	for _, m := range matches {
		if p >= m[0] && p < m[1] {
			return m
		}
	}

	return nil
}

// repackDocx writes a new archive, swapping in the rewritten parts and copying
// everything else unchanged in the original entry order.
func repackDocx(reader *zip.Reader, rewritten map[string]string) ([]byte, error) {
	var buf bytes.Buffer

	writer := zip.NewWriter(&buf)

	for _, f := range reader.File {
		w, err := writer.Create(f.Name)
		if err != nil {
			return nil, err
		}

		if content, ok := rewritten[f.Name]; ok {
			if _, err := w.Write([]byte(content)); err != nil {
				return nil, err
			}

			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, err
		}

		_, err = io.Copy(w, rc)
		_ = rc.Close()

		if err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DocxText extracts the logical text of the package with paragraph breaks
// rendered as newlines. Used when a DOCX child is embedded into a non-DOCX
// parent.
func DocxText(data []byte) (string, error) {
	parts, _, err := parseDocxParts(data)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	for _, part := range parts {
		if part.name != "word/document.xml" {
			continue
		}

		sb.WriteString(strings.ReplaceAll(part.logical, partSeparator, "\n"))
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

// DocxBodyXML extracts the block content of the package body with the trailing
// section properties stripped, ready to be spliced into another document.
func DocxBodyXML(data []byte) (string, error) {
	parts, _, err := parseDocxParts(data)
	if err != nil {
		return "", err
	}

	for _, part := range parts {
		if part.name != "word/document.xml" {
			continue
		}

		start := strings.Index(part.raw, "<w:body")
		if start < 0 {
			return "", pkg.ValidateBusinessError(constant.ErrFileContentInvalid, "")
		}

		start = strings.Index(part.raw[start:], ">") + start + 1

		end := strings.LastIndex(part.raw, "</w:body>")
		if end < 0 || end < start {
			return "", pkg.ValidateBusinessError(constant.ErrFileContentInvalid, "")
		}

		body := part.raw[start:end]

		if sectStart := strings.LastIndex(body, "<w:sectPr"); sectStart >= 0 {
			if sectEnd := strings.Index(body[sectStart:], "</w:sectPr>"); sectEnd >= 0 {
				body = body[:sectStart] + body[sectStart+sectEnd+len("</w:sectPr>"):]
			} else if strings.Contains(body[sectStart:], "/>") {
				selfEnd := strings.Index(body[sectStart:], "/>")
				body = body[:sectStart] + body[sectStart+selfEnd+len("/>"):]
			}
		}

		return body, nil
	}

	return "", pkg.ValidateBusinessError(constant.ErrFileContentInvalid, "")
}

// ReplaceParagraphs swaps every paragraph containing the token for the given
// block XML inside word/document.xml. It returns the new package bytes and the
// number of paragraphs replaced.
func ReplaceParagraphs(data []byte, token, blockXML string) ([]byte, int, error) {
	replaced := 0

	for {
		parts, reader, err := parseDocxParts(data)
		if err != nil {
			return nil, replaced, err
		}

		var body *docxPart

		for i := range parts {
			if parts[i].name == "word/document.xml" {
				body = &parts[i]
				break
			}
		}

		if body == nil {
			return nil, replaced, pkg.ValidateBusinessError(constant.ErrFileContentInvalid, "")
		}

		rawPos, found := locateToken(body, token)
		if !found {
			return data, replaced, nil
		}

		pStart := strings.LastIndex(body.raw[:rawPos], "<w:p ")
		if alt := strings.LastIndex(body.raw[:rawPos], "<w:p>"); alt > pStart {
			pStart = alt
		}

		pEnd := strings.Index(body.raw[rawPos:], "</w:p>")
		if pStart < 0 || pEnd < 0 {
			return nil, replaced, pkg.ValidateBusinessError(constant.ErrFileContentInvalid, "")
		}

		pEnd += rawPos + len("</w:p>")

		newRaw := body.raw[:pStart] + blockXML + body.raw[pEnd:]

		data, err = repackDocx(reader, map[string]string{"word/document.xml": newRaw})
		if err != nil {
			return nil, replaced, err
		}

		replaced++
	}
}

// locateToken finds the raw offset of the first occurrence of the token in the
// part, resolving split runs through the logical text.
func locateToken(part *docxPart, token string) (int, bool) {
	for _, m := range tokenPattern.FindAllStringSubmatchIndex(part.logical, -1) {
		if part.logical[m[2]:m[3]] != token {
			continue
		}

		for _, seg := range part.segments {
			segEnd := seg.logicalStart + len(seg.text)
			if m[0] >= seg.logicalStart && m[0] < segEnd {
				return seg.rawStart + (m[0] - seg.logicalStart), true
			}
		}
	}

	return 0, false
}
