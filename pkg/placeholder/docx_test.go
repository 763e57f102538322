// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package placeholder

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentTemplate = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>%BODY%<w:sectPr><w:pgSz w:w="12240" w:h="15840"/></w:sectPr></w:body></w:document>`

// buildDocx assembles a minimal package with the given body block XML.
func buildDocx(t *testing.T, bodyXML string) []byte {
	t.Helper()

	return buildDocxWithParts(t, bodyXML, nil)
}

// buildDocxWithParts adds extra word/ parts (headers, footers) on top of the body.
func buildDocxWithParts(t *testing.T, bodyXML string, extra map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer

	w := zip.NewWriter(&buf)

	doc := documentTemplate
	doc = replaceMarker(doc, bodyXML)

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":   doc,
	}

	for name, content := range extra {
		files[name] = content
	}

	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)

		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	return buf.Bytes()
}

func replaceMarker(template, body string) string {
	return string(bytes.Replace([]byte(template), []byte("%BODY%"), []byte(body), 1))
}

func paragraph(runs ...string) string {
	out := "<w:p>"
	for _, r := range runs {
		out += "<w:r><w:t>" + r + "</w:t></w:r>"
	}

	return out + "</w:p>"
}

func TestScanDocxTokens(t *testing.T) {
	body := paragraph("Dear {{Name}},") + paragraph("Your balance is {{Amount}}.") + paragraph("Regards, {{Name}}")
	data := buildDocx(t, body)

	tokens, err := Scan(data, "letter.docx")

	assert.NoError(t, err)
	assert.Equal(t, []string{"Name", "Amount"}, tokens)
}

func TestScanDocxTokenSplitAcrossRuns(t *testing.T) {
	// Word frequently splits a typed token over several runs.
	body := paragraph("{{Na", "me}}") + paragraph("{{Amount}}")
	data := buildDocx(t, body)

	tokens, err := Scan(data, "letter.docx")

	assert.NoError(t, err)
	assert.Equal(t, []string{"Name", "Amount"}, tokens)
}

func TestScanDocxTokenDoesNotSpanParagraphs(t *testing.T) {
	body := paragraph("{{Na") + paragraph("me}}")
	data := buildDocx(t, body)

	tokens, err := Scan(data, "letter.docx")

	assert.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestScanDocxIncludesHeadersAndFooters(t *testing.T) {
	header := `<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:p><w:r><w:t>{{HeaderTitle}}</w:t></w:r></w:p></w:hdr>`
	footer := `<w:ftr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:p><w:r><w:t>Page of {{PageTotal}}</w:t></w:r></w:p></w:ftr>`

	data := buildDocxWithParts(t, paragraph("Body {{Name}}"), map[string]string{
		"word/header1.xml": header,
		"word/footer1.xml": footer,
	})

	tokens, err := Scan(data, "letter.docx")

	assert.NoError(t, err)
	// Body tokens come first, then headers and footers in part name order.
	assert.Equal(t, []string{"Name", "PageTotal", "HeaderTitle"}, tokens)
}

func TestScanDocxTableCells(t *testing.T) {
	table := `<w:tbl><w:tr><w:tc><w:p><w:r><w:t>{{Item}}</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>{{Price}}</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`
	data := buildDocx(t, table)

	tokens, err := Scan(data, "invoice.docx")

	assert.NoError(t, err)
	assert.Equal(t, []string{"Item", "Price"}, tokens)
}

func TestInjectDocx(t *testing.T) {
	body := paragraph("Dear {{Name}},") + paragraph("You owe {{Amount}}.")
	data := buildDocx(t, body)

	out, err := Inject(data, "letter.docx", map[string]string{"Name": "Alice", "Amount": "99.50"})
	require.NoError(t, err)

	text, err := DocxText(out)
	require.NoError(t, err)

	assert.Contains(t, text, "Dear Alice,")
	assert.Contains(t, text, "You owe 99.50.")

	tokens, err := Scan(out, "letter.docx")
	assert.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestInjectDocxSplitToken(t *testing.T) {
	body := paragraph("Hello {{Na", "me}}", "!")
	data := buildDocx(t, body)

	out, err := Inject(data, "letter.docx", map[string]string{"Name": "Bob"})
	require.NoError(t, err)

	text, err := DocxText(out)
	require.NoError(t, err)
	assert.Equal(t, "Hello Bob!", text)
}

func TestInjectDocxEscapesValues(t *testing.T) {
	body := paragraph("{{Company}}")
	data := buildDocx(t, body)

	out, err := Inject(data, "t.docx", map[string]string{"Company": `Smith & Sons <Ltd>`})
	require.NoError(t, err)

	parts, _, err := parseDocxParts(out)
	require.NoError(t, err)
	require.NotEmpty(t, parts)

	assert.Contains(t, parts[0].raw, "Smith &amp; Sons &lt;Ltd&gt;")
}

func TestInjectDocxUnmappedTokenBecomesEmpty(t *testing.T) {
	body := paragraph("A{{Gone}}B")
	data := buildDocx(t, body)

	out, err := Inject(data, "t.docx", map[string]string{})
	require.NoError(t, err)

	text, err := DocxText(out)
	require.NoError(t, err)
	assert.Equal(t, "AB", text)
}

func TestInjectDocxWithoutTokensIsByteIdentical(t *testing.T) {
	data := buildDocx(t, paragraph("static content only"))

	out, err := Inject(data, "t.docx", map[string]string{"Name": "x"})

	assert.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestScanRejectsCorruptArchive(t *testing.T) {
	corrupt := append([]byte{0x50, 0x4B, 0x03, 0x04}, []byte("not a real zip")...)

	_, err := Scan(corrupt, "broken.docx")

	assert.Error(t, err)
}

func TestDocxBodyXMLStripsSectPr(t *testing.T) {
	data := buildDocx(t, paragraph("content"))

	body, err := DocxBodyXML(data)

	assert.NoError(t, err)
	assert.Contains(t, body, "content")
	assert.NotContains(t, body, "sectPr")
}

func TestReplaceParagraphs(t *testing.T) {
	body := paragraph("before") + paragraph("{{Embed}}") + paragraph("after")
	data := buildDocx(t, body)

	block := paragraph("child one") + paragraph("child two")

	out, replaced, err := ReplaceParagraphs(data, "Embed", block)
	require.NoError(t, err)
	assert.Equal(t, 1, replaced)

	text, err := DocxText(out)
	require.NoError(t, err)

	assert.Contains(t, text, "before")
	assert.Contains(t, text, "child one")
	assert.Contains(t, text, "child two")
	assert.Contains(t, text, "after")
	assert.NotContains(t, text, "{{Embed}}")
}

func TestReplaceParagraphsNoMatch(t *testing.T) {
	data := buildDocx(t, paragraph("no markers"))

	out, replaced, err := ReplaceParagraphs(data, "Missing", paragraph("x"))

	assert.NoError(t, err)
	assert.Equal(t, 0, replaced)
	assert.Equal(t, data, out)
}
