// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package types

import "github.com/google/uuid"

// GUIDFromText parses a 36-character canonical GUID string into its
// 16-octet binary form using google/uuid's RFC 4122 parser, which is
// stricter about variant/version bits than the hand-rolled ParseGUID
// fallback and is preferred wherever the caller's text is known to be a
// well-formed GUID literal (e.g. a catalog query argument) rather than a
// raw application buffer that must be converted byte-for-byte.
func GUIDFromText(s string) ([16]byte, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return [16]byte{}, err
	}
	return [16]byte(id), nil
}

// GUIDToText renders the 16-octet binary form as its canonical
// hyphenated text, matching the format SQLGetData/SQLBindCol produce for
// an SQL_GUID column bound to SQL_C_CHAR/SQL_C_WCHAR.
func GUIDToText(g [16]byte) string {
	return uuid.UUID(g).String()
}

// NewGUID generates a fresh random (version 4) GUID.
func NewGUID() [16]byte {
	return [16]byte(uuid.New())
}
