// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package convert

import (
	"encoding/base64"
	"path"
	"regexp"
	"strings"
)

var (
	imgSrcPattern        = regexp.MustCompile(`(<img[^>]*\ssrc=")([^"]+)("[^>]*>)`)
	generatorMetaPattern = regexp.MustCompile(`(?i)<meta\s+name="generator"[^>]*>\s*`)
	htmlCommentPattern   = regexp.MustCompile(`(?s)<!--.*?-->`)
)

var imageMimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

// SanitizeForEmail makes an HTML document self-contained for mail clients:
// image references matching extracted assets become base64 data URIs and
// converter artifact markers (generator meta tags, comments) are removed.
func SanitizeForEmail(html []byte, assets map[string][]byte) []byte {
	out := string(html)

	out = imgSrcPattern.ReplaceAllStringFunc(out, func(tag string) string {
		groups := imgSrcPattern.FindStringSubmatch(tag)
		if groups == nil {
			return tag
		}

		src := groups[2]
		if strings.HasPrefix(src, "data:") {
			return tag
		}

		asset, ok := assets[path.Base(src)]
		if !ok {
			return tag
		}

		mimeType, ok := imageMimeTypes[strings.ToLower(path.Ext(src))]
		if !ok {
			return tag
		}

		encoded := base64.StdEncoding.EncodeToString(asset)

		return groups[1] + "data:" + mimeType + ";base64," + encoded + groups[3]
	})

	out = generatorMetaPattern.ReplaceAllString(out, "")
	out = htmlCommentPattern.ReplaceAllString(out, "")

	return []byte(out)
}
