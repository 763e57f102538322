// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package http

import (
	"encoding/base64"
	"encoding/json"
)

// Cursor marks a position in a listed collection. ID is the last item of the
// page it was issued from; PointsNext selects the seek direction.
type Cursor struct {
	ID         string `json:"id"`
	PointsNext bool   `json:"points_next"`
}

// EncodeCursor encodes a cursor into its opaque wire form.
func EncodeCursor(cursor Cursor) string {
	data, _ := json.Marshal(cursor)

	return base64.StdEncoding.EncodeToString(data)
}

// DecodeCursor decodes a cursor string.
func DecodeCursor(cursor string) (Cursor, error) {
	decodedCursor, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return Cursor{}, err
	}

	var cur Cursor

	if err := json.Unmarshal(decodedCursor, &cur); err != nil {
		return Cursor{}, err
	}

	return cur, nil
}
