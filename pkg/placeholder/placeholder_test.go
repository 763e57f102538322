// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanPlainText(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "distinct tokens in first-seen order",
			content:  "Hello {{Name}}, you owe {{Amount}}. Bye {{Name}}.",
			expected: []string{"Name", "Amount"},
		},
		{
			name:     "empty document yields empty set",
			content:  "",
			expected: []string{},
		},
		{
			name:     "no tokens",
			content:  "plain content without markers",
			expected: []string{},
		},
		{
			name:     "malformed delimiters are ignored",
			content:  "{Name} {{Name} {Name}} {{}} {{ }} {{Valid}}",
			expected: []string{"Valid"},
		},
		{
			name:     "tokens with dots dashes and underscores",
			content:  "{{customer.name}} {{order-id}} {{total_due}}",
			expected: []string{"customer.name", "order-id", "total_due"},
		},
		{
			name:     "surrounding whitespace inside delimiters",
			content:  "{{ Name }} and {{Name}}",
			expected: []string{"Name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Scan([]byte(tt.content), "template.txt")

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func TestInjectPlainText(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		values   map[string]string
		expected string
	}{
		{
			name:     "all occurrences replaced",
			content:  "Hi {{Name}}, bye {{Name}}.",
			values:   map[string]string{"Name": "Alice"},
			expected: "Hi Alice, bye Alice.",
		},
		{
			name:     "unmapped token becomes empty string",
			content:  "Hi {{Name}}!",
			values:   map[string]string{},
			expected: "Hi !",
		},
		{
			name:     "non-token content untouched",
			content:  "a {b} {{c}} d }} {{",
			values:   map[string]string{"c": "X"},
			expected: "a {b} X d }} {{",
		},
		{
			name:     "value containing token syntax is not expanded",
			content:  "{{A}} {{B}}",
			values:   map[string]string{"A": "{{B}}", "B": "beta"},
			expected: "{{B}} beta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Inject([]byte(tt.content), "template.txt", tt.values)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestInjectDoesNotMutateSource(t *testing.T) {
	src := []byte("Hello {{Name}}")
	original := string(src)

	_, err := Inject(src, "t.txt", map[string]string{"Name": "World"})

	assert.NoError(t, err)
	assert.Equal(t, original, string(src))
}

func TestScanAfterInjectIsEmpty(t *testing.T) {
	content := "Report for {{Name}} on {{Date}}: total {{Amount}}"
	values := map[string]string{"Name": "Acme", "Date": "2026-01-01", "Amount": "42.00"}

	out, err := Inject([]byte(content), "t.txt", values)
	assert.NoError(t, err)

	tokens, err := Scan(out, "t.txt")
	assert.NoError(t, err)
	assert.Empty(t, tokens)

	for _, v := range values {
		assert.Contains(t, string(out), v)
	}
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		fileName string
		expected Kind
	}{
		{
			name:     "html by extension",
			data:     []byte("<p>hi</p>"),
			fileName: "body.html",
			expected: KindHTML,
		},
		{
			name:     "html by content",
			data:     []byte("<!DOCTYPE html><html></html>"),
			fileName: "body.bin",
			expected: KindHTML,
		},
		{
			name:     "plain text fallback",
			data:     []byte("hello"),
			fileName: "note.txt",
			expected: KindText,
		},
		{
			name:     "docx by magic regardless of name",
			data:     buildDocx(t, "<w:p><w:r><w:t>x</w:t></w:r></w:p>"),
			fileName: "renamed.bin",
			expected: KindDocx,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectKind(tt.data, tt.fileName))
		})
	}
}
