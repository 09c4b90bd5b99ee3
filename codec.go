// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

import (
	"encoding/hex"
	"errors"
	"fmt"
)

var errInvalidHex = errors.New("invalid hex input")

// decodeHex decodes a hex string, rejecting non-hex characters and odd
// lengths. BER-TLV decode/encode itself is provided by
// cunicu.li/go-iso7816/encoding/tlv, used directly in apdu.go and
// signature.go; this file only covers the hex and concatenation helpers
// that package doesn't.
func decodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidHex, err)
	}
	return b, nil
}

// encodeHex renders b as lowercase hex.
func encodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// concat concatenates byte slices without mutating any of them.
func concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
