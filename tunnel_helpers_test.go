// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

import (
	"fmt"

	"cunicu.li/go-iso7816/encoding/tlv"
)

// tlvEncodeBER7C builds the 0x7C dynamic authentication template a
// compliant card returns from GENERAL AUTHENTICATE: tags 0x81 (nonce),
// 0x82 (cryptogram), 0x83 (identity block).
func tlvEncodeBER7C(nonce, cryptogram, tag83 []byte) ([]byte, error) {
	return tlv.EncodeBER(
		tlv.New(0x7c,
			tlv.New(0x81, nonce),
			tlv.New(0x82, cryptogram),
			tlv.New(0x83, tag83),
		),
	)
}

// extractHostPubFromRequest decodes the CAPDU body built by
// buildGeneralAuthenticate and returns the host's encoded public key, for
// use by test fixtures that play the card's role.
func extractHostPubFromRequest(apduBytes []byte) (pub [encodedPublicKeyLength]byte, err error) {
	if len(apduBytes) < 5 {
		return pub, fmt.Errorf("request too short: %dB", len(apduBytes))
	}

	lc := int(apduBytes[4])
	data := apduBytes[5 : 5+lc]

	tvs, err := tlv.DecodeBER(data)
	if err != nil {
		return pub, err
	}
	value, _, ok := tvs.GetChild(0x7c, 0x81)
	if !ok {
		return pub, fmt.Errorf("missing tag 0x81 in request")
	}
	if len(value) != 1+idhLength+encodedPublicKeyLength {
		return pub, fmt.Errorf("unexpected tag 0x81 length: %dB", len(value))
	}
	copy(pub[:], value[1+idhLength:])
	return pub, nil
}

// mutateCryptogram decodes a card response, flips a bit in the tag 0x82
// AuthCryptogram, and re-encodes it.
func mutateCryptogram(data []byte) ([]byte, error) {
	tvs, err := tlv.DecodeBER(data)
	if err != nil {
		return nil, err
	}
	nonce, _, ok := tvs.GetChild(0x7c, 0x81)
	if !ok {
		return nil, fmt.Errorf("missing tag 0x81")
	}
	cryptogram, _, ok := tvs.GetChild(0x7c, 0x82)
	if !ok {
		return nil, fmt.Errorf("missing tag 0x82")
	}
	tag83, _, ok := tvs.GetChild(0x7c, 0x83)
	if !ok {
		return nil, fmt.Errorf("missing tag 0x83")
	}

	mutated := append([]byte(nil), cryptogram...)
	mutated[0] ^= 0x01

	return tlvEncodeBER7C(nonce, mutated, tag83)
}
