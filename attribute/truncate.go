// Copyright (c) 2025 The PulseAPM Authors.
// SPDX-License-Identifier: Apache-2.0

package attribute

import "unicode/utf8"

const (
	// KeyLengthLimit is the maximum UTF-8 encoded byte length of a
	// user-supplied attribute key.
	KeyLengthLimit = 256
	// ValueLengthLimit is the maximum UTF-8 encoded byte length of a
	// string attribute value.
	ValueLengthLimit = 256
)

// Truncate returns the longest prefix of s whose UTF-8 encoded length does
// not exceed limit bytes, never splitting a multi-byte code point. The cut
// is byte-exact so repeated application is a no-op.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
