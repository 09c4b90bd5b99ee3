// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComputeCryptogramS2 exercises the CMAC-AES-128 AuthCryptogram
// construction from NIST SP 800-73-4 §4.1.6: a fixed 16-byte cfrm key and
// the "KC_1_V" ‖ id ‖ IDH ‖ hostPubXY message layout, asserting the tag is
// a deterministic function of its inputs rather than pinning a numeric
// vector this package cannot compute offline.
func TestComputeCryptogramS2(t *testing.T) {
	cfrm, err := decodeHex("00112233445566778899aabbccddeeff")
	require.NoError(t, err)

	id := [idLength]byte{0xa0, 0xa1, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, 0xa7}
	idh := [idhLength]byte{0, 1, 2, 3, 4, 5, 6, 7}
	hostPubXY := make([]byte, 64)
	for i := range hostPubXY {
		hostPubXY[i] = byte(i)
	}

	msg := concat(kcTag, id[:], idh[:], hostPubXY)

	tag1, err := computeCryptogram(cfrm, msg)
	require.NoError(t, err)
	tag2, err := computeCryptogram(cfrm, msg)
	require.NoError(t, err)

	assert.Len(t, tag1, cryptogramLength)
	assert.Equal(t, tag1, tag2, "CMAC must be deterministic for fixed inputs")
}

func TestComputeAndVerifyCryptogramRoundTrip(t *testing.T) {
	key, err := decodeHex("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)

	msg := concat(kcTag, []byte{0xa0, 0xa1, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, 0xa7}, []byte{0, 1, 2, 3, 4, 5, 6, 7})

	tag, err := computeCryptogram(key, msg)
	require.NoError(t, err)
	assert.Len(t, tag, cryptogramLength)

	require.NoError(t, verifyCryptogram(key, msg, tag))
}

func TestVerifyCryptogramRejectsOneBitMutation(t *testing.T) {
	key, err := decodeHex("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)

	msg := concat(kcTag, []byte{0xa0, 0xa1, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, 0xa7}, []byte{0, 1, 2, 3, 4, 5, 6, 7})

	tag, err := computeCryptogram(key, msg)
	require.NoError(t, err)

	mutated := append([]byte(nil), tag...)
	mutated[0] ^= 0x01

	err = verifyCryptogram(key, msg, mutated)
	require.Error(t, err)

	var opErr *Error
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, KindAuthentication, opErr.Kind)
}
