// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

import (
	iso "cunicu.li/go-iso7816"
	"cunicu.li/go-iso7816/encoding/tlv"
)

// claISO7816 is the standard interindustry class byte used for GENERAL
// AUTHENTICATE, matching the teacher's CAPDU construction.
const claISO7816 = 0x00

// buildGeneralAuthenticate encodes the command APDU body for GENERAL
// AUTHENTICATE per NIST SP 800-73-4 §4.1 (Table 18): a 0x7C dynamic
// authentication template containing an empty challenge marker (tag 0x80)
// and the host's identity payload (tag 0x81) = CBH ‖ IDH ‖ hostPub(65).
func buildGeneralAuthenticate(p1 byte, cbh byte, idh [idhLength]byte, hostPub [encodedPublicKeyLength]byte) ([]byte, error) {
	value := make([]byte, 0, 1+idhLength+encodedPublicKeyLength)
	value = append(value, cbh)
	value = append(value, idh[:]...)
	value = append(value, hostPub[:]...)

	data, err := tlv.EncodeBER(
		tlv.New(0x7c,
			tlv.New(0x80),
			tlv.New(0x81, value),
		),
	)
	if err != nil {
		return nil, newError(KindCryptoInit, "failed to encode GENERAL AUTHENTICATE request", err)
	}

	return encodeCAPDU(claISO7816, byte(iso.InsGeneralAuthenticate), p1, keyPIVAuthentication, data), nil
}

// keyPIVAuthentication selects the PIV Authentication key reference
// (9A) as P2 for GENERAL AUTHENTICATE, per SP 800-73-4 Table 4.
const keyPIVAuthentication = 0x9a

// encodeCAPDU renders a command APDU with extended-or-short length fields
// depending on the data size, matching ISO/IEC 7816-4 §5.1. Responses are
// requested in full (Le = 0x00 / extended 00 00).
func encodeCAPDU(cla, ins, p1, p2 byte, data []byte) []byte {
	out := []byte{cla, ins, p1, p2}
	if len(data) <= 255 {
		out = append(out, byte(len(data)))
		out = append(out, data...)
		out = append(out, 0x00)
		return out
	}

	out = append(out, 0x00)
	out = append(out, byte(len(data)>>8), byte(len(data)))
	out = append(out, data...)
	out = append(out, 0x00, 0x00)
	return out
}
