// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

import (
	"crypto/ecdh"
	"crypto/elliptic"
	"fmt"
	"io"
	"math/big"
)

// EphemeralKeyPair is the host's one-time P-256 keypair generated at the
// start of a handshake. It lives only for the duration of the handshake,
// and its zeroize method is called on every exit path.
//
// The scalar is held in a package-owned array rather than relying on
// (*ecdh.PrivateKey).Bytes(), which returns a fresh copy on every call and
// so can never be wiped through the PrivateKey itself. crypto/ecdh keeps
// its own internal copy of the scalar inside priv, which zeroize does not
// overwrite.
type EphemeralKeyPair struct {
	priv   *ecdh.PrivateKey
	scalar [fieldElementLength]byte
	x, y   [fieldElementLength]byte
}

// generateEphemeralKeyPair creates a fresh P-256 keypair using rnd as the
// CSPRNG. X and Y are returned leading-zero left-padded to 32 bytes.
//
// The scalar is drawn directly into kp.scalar and fed to NewPrivateKey,
// retrying on the negligible chance it falls outside [1, n-1]. zeroize
// wipes kp.scalar; NewPrivateKey stores its own copy of the scalar in the
// returned key, and that copy is not wiped.
func generateEphemeralKeyPair(rnd io.Reader) (*EphemeralKeyPair, error) {
	kp := &EphemeralKeyPair{}

	var priv *ecdh.PrivateKey
	for priv == nil {
		if _, err := io.ReadFull(rnd, kp.scalar[:]); err != nil {
			return nil, newError(KindCryptoInit, "failed to read random scalar", err)
		}
		p, err := ecdh.P256().NewPrivateKey(kp.scalar[:])
		if err != nil {
			continue // scalar outside [1, n-1]; draw another
		}
		priv = p
	}
	kp.priv = priv

	x, y, err := uncompressedXY(priv.PublicKey().Bytes())
	if err != nil {
		kp.zeroize()
		return nil, newError(KindCryptoInit, "unexpected public key encoding", err)
	}
	kp.x = x
	kp.y = y
	return kp, nil
}

// zeroize wipes kp.scalar and drops the reference to the *ecdh.PrivateKey;
// the scalar copy held inside that key is not overwritten. Safe to call
// multiple times.
func (kp *EphemeralKeyPair) zeroize() {
	if kp == nil {
		return
	}
	zeroize(kp.scalar[:])
	kp.priv = nil
}

// encodedPublicKey returns the SEC1 uncompressed encoding of the host's
// ephemeral public key: 04 || X(32) || Y(32), 65 bytes total.
func (kp *EphemeralKeyPair) encodedPublicKey() [encodedPublicKeyLength]byte {
	var out [encodedPublicKeyLength]byte
	out[0] = 0x04
	copy(out[1:1+fieldElementLength], kp.x[:])
	copy(out[1+fieldElementLength:], kp.y[:])
	return out
}

// uncompressedXY splits a SEC1 uncompressed point encoding into its X and Y
// field elements, left-padded to 32 bytes each.
func uncompressedXY(pub []byte) (x, y [fieldElementLength]byte, err error) {
	if len(pub) != encodedPublicKeyLength || pub[0] != 0x04 {
		return x, y, fmt.Errorf("%w: got=%dB", errUnexpectedKeyLength, len(pub))
	}
	copy(x[:], pub[1:1+fieldElementLength])
	copy(y[:], pub[1+fieldElementLength:])
	return x, y, nil
}

var errUnexpectedKeyLength = fmt.Errorf("unexpected public key length, want %dB SEC1 uncompressed", encodedPublicKeyLength)

// checkCardPublicKey confirms the card's public key point is on curve
// P-256, is not the identity, and decodes to a valid public key under the
// curve's standard validation routine (crypto/ecdh rejects the identity and
// off-curve points during unmarshalling), per the partial public-key
// validation routine in NIST SP 800-56A §5.6.2.3.3. A failure here is
// always fatal.
func checkCardPublicKey(x, y [fieldElementLength]byte) (*ecdh.PublicKey, error) {
	encoded := make([]byte, 0, encodedPublicKeyLength)
	encoded = append(encoded, 0x04)
	encoded = append(encoded, x[:]...)
	encoded = append(encoded, y[:]...)

	pub, err := ecdh.P256().NewPublicKey(encoded)
	if err != nil {
		return nil, newError(KindKeyValidation, "card public key failed on-curve/identity check", err)
	}

	// Belt-and-braces: crypto/ecdh already rejects points off the curve or
	// at infinity, but re-derive via the elliptic package so that an
	// eventual crypto/ecdh behavior change can't silently relax the check
	// NIST SP 800-56A §5.6.2.3.3 requires.
	curve := elliptic.P256()
	bigX := new(big.Int).SetBytes(x[:])
	bigY := new(big.Int).SetBytes(y[:])
	if !curve.IsOnCurve(bigX, bigY) {
		return nil, newError(KindKeyValidation, "card public key is not on curve P-256", nil)
	}
	if bigX.Sign() == 0 && bigY.Sign() == 0 {
		return nil, newError(KindKeyValidation, "card public key is the identity point", nil)
	}

	return pub, nil
}

// ecdhSharedSecret computes Z = X-coordinate(priv * cardPoint) as a 32-byte big-endian
// field element, leading-zero padded. Fails if the card's point yields the
// identity under the Diffie-Hellman computation.
func ecdhSharedSecret(priv *EphemeralKeyPair, cardPub *ecdh.PublicKey) ([]byte, error) {
	z, err := priv.priv.ECDH(cardPub)
	if err != nil {
		return nil, newError(KindEcdh, "ECDH computation failed", err)
	}
	if allZero(z) {
		return nil, newError(KindEcdh, "ECDH produced the identity point", nil)
	}

	padded := make([]byte, fieldElementLength)
	copy(padded[fieldElementLength-len(z):], z)
	return padded, nil
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
