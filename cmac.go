// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

import (
	"crypto/aes"
	"crypto/subtle"

	"github.com/aead/cmac"
)

// computeCryptogram computes the CMAC-AES-128 tag over msg under key,
// truncated to cryptogramLength bytes, per NIST SP 800-38B.
func computeCryptogram(key, msg []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, newError(KindCryptoInit, "failed to init AES-128 block cipher for CMAC", err)
	}

	mac, err := cmac.NewWithTagSize(block, cryptogramLength)
	if err != nil {
		return nil, newError(KindCryptoInit, "failed to init CMAC-AES-128", err)
	}
	if _, err := mac.Write(msg); err != nil {
		return nil, newError(KindCryptoInit, "CMAC write failed", err)
	}

	return mac.Sum(nil), nil
}

// verifyCryptogram recomputes the CMAC-AES-128 tag over msg under key and
// compares it to expected in constant time. A mismatch is reported as a
// KindAuthentication error, distinct from the transport/parse failures that
// can precede it in the handshake.
func verifyCryptogram(key, msg, expected []byte) error {
	got, err := computeCryptogram(key, msg)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(got, expected) != 1 {
		return newError(KindAuthentication, "AuthCryptogram did not verify", nil)
	}
	return nil
}
