// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

import (
	"crypto/sha256"
	"encoding/binary"
)

// keyBlockBits is the requested keydatalen for derive: four 16-byte session
// keys, 512 bits total.
const keyBlockBits = keyBlockLength * 8

// derive implements the NIST SP 800-56A §5.8.1 single-step KDF with SHA-256
// as H: for counter = 1, 2, ... ceil(keydatalen/256), compute
// H(counter || z || otherInfo), concatenate, and truncate to keyBlockLength
// bytes.
func derive(z, otherInfo []byte) [keyBlockLength]byte {
	const hLenBits = sha256.Size * 8
	n := (keyBlockBits + hLenBits - 1) / hLenBits

	var result []byte
	var counter [4]byte
	for i := 1; i <= n; i++ {
		binary.BigEndian.PutUint32(counter[:], uint32(i))

		h := sha256.New()
		h.Write(counter[:])
		h.Write(z)
		h.Write(otherInfo)
		result = h.Sum(result)
	}

	var block [keyBlockLength]byte
	copy(block[:], result[:keyBlockLength])
	return block
}

// partitionKeyBlock splits a 64-byte KDF output into the four session-key
// roles in the fixed order NIST SP 800-73-4 §4.1.6 requires.
func partitionKeyBlock(block [keyBlockLength]byte) SessionKeys {
	var keys SessionKeys
	copy(keys.CFRM[:], block[0:16])
	copy(keys.MAC[:], block[16:32])
	copy(keys.ENC[:], block[32:48])
	copy(keys.RMAC[:], block[48:64])
	return keys
}

// buildOtherInfo assembles the SP 800-56A OtherInfo buffer:
//
//	04 09 09 09 09 08 IDH(8) 01 CBH(1) 10 hostPubX16(16)
//	08 cardSigId(8) 10 cardNonce(16) 01 cardCb(1)
//
// hostPubX16 is the leading 16 bytes of the host's ephemeral public key's
// X coordinate, not the full 32-byte X nor the X‖Y pair — NIST SP 800-73-4
// §4.1.6's reference construction binds OtherInfo to only that truncated
// prefix of the host's public key.
func buildOtherInfo(idh [idhLength]byte, cbh byte, hostPubX16 []byte, cardSigID [idLength]byte, cardNonce [nonceLength]byte, cardCb byte) []byte {
	out := make([]byte, 0, 61)
	out = append(out, otherInfoPreamble...)
	out = append(out, idh[:]...)
	out = append(out, 0x01, cbh)
	out = append(out, 0x10)
	out = append(out, hostPubX16...)
	out = append(out, 0x08)
	out = append(out, cardSigID[:]...)
	out = append(out, 0x10)
	out = append(out, cardNonce[:]...)
	out = append(out, 0x01, cardCb)
	return out
}
