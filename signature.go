// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

import (
	"bytes"
	"fmt"

	"cunicu.li/go-iso7816/encoding/tlv"
)

// CardSignature is the card's signed GENERAL AUTHENTICATE response,
// decoded from the dynamic authentication template (NIST SP 800-73-4
// §4.1.6).
type CardSignature struct {
	CB           byte
	Nonce        [nonceLength]byte
	Cryptogram   [cryptogramLength]byte
	ID           [idLength]byte
	IssuerID     [idLength]byte
	GUID         [guidLength]byte
	AlgorithmOID [oidLength]byte
	PublicKey    [encodedPublicKeyLength]byte
	CVC          []byte
}

// tag83FixedLength is the byte count of the fixed-offset fields packed into
// tag 0x83, before the variable-length CVC: cb(1) id(8) issuerId(8) guid(16)
// algorithmOID(8) publicKey(65).
const tag83FixedLength = 1 + idLength + idLength + guidLength + oidLength + encodedPublicKeyLength

// parseCardSignature decodes the raw GENERAL AUTHENTICATE response body.
// It tag-dispatches into the 0x7C dynamic authentication template rather
// than assuming a fixed tag order, since a reference card's field order
// is not guaranteed to be stable; tag 0x83's payload is then split by
// fixed offsets, since NIST SP 800-73-4 does not define tag-dispatch for
// that sub-structure.
func parseCardSignature(data []byte) (*CardSignature, error) {
	tvs, err := tlv.DecodeBER(data)
	if err != nil {
		return nil, newError(KindParse, "failed to decode GENERAL AUTHENTICATE response as BER-TLV", err)
	}

	nonce, _, ok := tvs.GetChild(0x7c, 0x81)
	if !ok {
		return nil, newError(KindParse, "missing Nicc (tag 0x81)", nil)
	}
	if len(nonce) != nonceLength {
		return nil, newError(KindParse, fmt.Sprintf("Nicc has wrong length: want %d got %d", nonceLength, len(nonce)), nil)
	}

	cryptogram, _, ok := tvs.GetChild(0x7c, 0x82)
	if !ok {
		return nil, newError(KindParse, "missing AuthCryptogram (tag 0x82)", nil)
	}
	if len(cryptogram) != cryptogramLength {
		return nil, newError(KindParse, fmt.Sprintf("AuthCryptogram has wrong length: want %d got %d", cryptogramLength, len(cryptogram)), nil)
	}

	body, _, ok := tvs.GetChild(0x7c, 0x83)
	if !ok {
		return nil, newError(KindParse, "missing card identity block (tag 0x83)", nil)
	}
	if len(body) < tag83FixedLength {
		return nil, newError(KindParse, fmt.Sprintf("card identity block too short: want at least %d got %d", tag83FixedLength, len(body)), nil)
	}

	sig := &CardSignature{}
	copy(sig.Nonce[:], nonce)
	copy(sig.Cryptogram[:], cryptogram)

	off := 0
	sig.CB = body[off]
	off++
	copy(sig.ID[:], body[off:off+idLength])
	off += idLength
	copy(sig.IssuerID[:], body[off:off+idLength])
	off += idLength
	copy(sig.GUID[:], body[off:off+guidLength])
	off += guidLength
	copy(sig.AlgorithmOID[:], body[off:off+oidLength])
	off += oidLength
	copy(sig.PublicKey[:], body[off:off+encodedPublicKeyLength])
	off += encodedPublicKeyLength
	sig.CVC = append([]byte(nil), body[off:]...)

	if !bytes.Equal(sig.AlgorithmOID[:], oidECDHP256[:]) {
		return nil, newError(KindParse, "card algorithm OID is not OID_ECDH_P256", nil)
	}
	if sig.PublicKey[0] != 0x04 {
		return nil, newError(KindParse, "card public key is not SEC1 uncompressed", nil)
	}

	return sig, nil
}
