// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildOtherInfoLayout pins the exact OtherInfo byte layout required
// by NIST SP 800-56A §5.8.1.
func TestBuildOtherInfoLayout(t *testing.T) {
	idh := [idhLength]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}
	hostPubX16 := make([]byte, 16)
	for i := range hostPubX16 {
		hostPubX16[i] = 0xc0
	}
	id := [idLength]byte{0xa0, 0xa1, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, 0xa7}
	var nonce [nonceLength]byte
	for i := range nonce {
		nonce[i] = 0xb0 + byte(i)
	}

	info := buildOtherInfo(idh, 0x00, hostPubX16, id, nonce, 0x00)

	require.Len(t, info, 61)
	assert.Equal(t, []byte{0x04, 0x09, 0x09, 0x09, 0x09, 0x08}, info[0:6])
	assert.Equal(t, idh[:], info[6:14])
	assert.Equal(t, []byte{0x01, 0x00}, info[14:16])
	assert.Equal(t, byte(0x10), info[16])
	assert.Equal(t, hostPubX16, info[17:33])
	assert.Equal(t, byte(0x08), info[33])
	assert.Equal(t, id[:], info[34:42])
	assert.Equal(t, byte(0x10), info[42])
	assert.Equal(t, nonce[:], info[43:59])
	assert.Equal(t, []byte{0x01, 0x00}, info[59:61])
}

// TestDeriveDeterministicAndPartitioned covers invariant 5 and seed vector
// S1's shape: fixed inputs produce a stable 64-byte block, partitioned in
// the order cfrm/mac/enc/rmac.
func TestDeriveDeterministicAndPartitioned(t *testing.T) {
	z := make([]byte, fieldElementLength)
	for i := range z {
		z[i] = byte(i)
	}
	otherInfo := []byte("fixed-test-other-info")

	block1 := derive(z, otherInfo)
	block2 := derive(z, otherInfo)
	assert.Equal(t, block1, block2, "KDF must be deterministic for fixed inputs")

	keys := partitionKeyBlock(block1)
	assert.Equal(t, block1[0:16], keys.CFRM[:])
	assert.Equal(t, block1[16:32], keys.MAC[:])
	assert.Equal(t, block1[32:48], keys.ENC[:])
	assert.Equal(t, block1[48:64], keys.RMAC[:])
}

func TestDeriveChangesWithZ(t *testing.T) {
	otherInfo := []byte("fixed-test-other-info")

	z1 := make([]byte, fieldElementLength)
	z2 := make([]byte, fieldElementLength)
	z2[0] = 0x01

	block1 := derive(z1, otherInfo)
	block2 := derive(z2, otherInfo)
	assert.NotEqual(t, block1, block2)
}
