// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

// CBH is the host control byte signalling "no persistent binding". Cipher
// Suite 2 requires this value; any other host policy is out of scope.
//
// https://nvlpubs.nist.gov/nistpubs/SpecialPublications/NIST.SP.800-73-4.pdf#page=118
const CBH byte = 0x00

// oidECDHP256 identifies the ECDH-over-P-256 algorithm in the card's signed
// response. Any other value in CardSignature.AlgorithmOID is rejected.
var oidECDHP256 = [8]byte{0x2a, 0x86, 0x48, 0xce, 0x3d, 0x03, 0x01, 0x07}

// kcTag is the "KC_1_V" key-confirmation label prefixed to the cryptogram
// message per NIST SP 800-73-4 §4.1.6's cryptogram construction.
var kcTag = []byte("KC_1_V")

// otherInfoPreamble is the AlgorithmID length-tagged header prescribed by
// NIST SP 800-56A §5.8.1 for this cipher suite's OtherInfo construction.
var otherInfoPreamble = []byte{0x04, 0x09, 0x09, 0x09, 0x09, 0x08}

const (
	// nonceLength is the length of the card's Nicc nonce.
	nonceLength = 16
	// cryptogramLength is the length of the card's AuthCryptogram.
	cryptogramLength = 16
	// idLength is the length of the card signer ID and issuer ID fields.
	idLength = 8
	// guidLength is the length of the card's GUID field.
	guidLength = 16
	// oidLength is the length of the algorithm OID field.
	oidLength = 8
	// encodedPublicKeyLength is the length of a SEC1-uncompressed P-256
	// public key: 0x04 || X(32) || Y(32).
	encodedPublicKeyLength = 65
	// fieldElementLength is the byte length of a P-256 field element.
	fieldElementLength = 32
	// sessionKeyLength is the length of each derived session key.
	sessionKeyLength = 16
	// keyBlockLength is the total length of the KDF output (4 * 16 bytes).
	keyBlockLength = 4 * sessionKeyLength
	// idhLength is the length of the deployment-configured host identifier.
	idhLength = 8
)
