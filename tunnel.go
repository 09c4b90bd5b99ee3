// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

import (
	"crypto/rand"
	"io"
)

// TunnelOptions configures a single OpenTunnel call. The zero value is
// ready to use: IDH defaults to the all-zero host identifier, Observer
// defaults to NopObserver, Rand defaults to crypto/rand.Reader, and
// VerifyCVC is skipped when nil.
type TunnelOptions struct {
	// IDH is the deployment-configured 8-byte host identifier.
	IDH [idhLength]byte
	// Observer receives structured handshake events. Defaults to
	// NopObserver.
	Observer Observer
	// Rand is the source of randomness for ephemeral key generation.
	// Defaults to crypto/rand.Reader.
	Rand io.Reader
	// VerifyCVC, if set, is invoked with the card's CVC bytes after the
	// curve/OID checks pass and before ECDH. See VerifyCVC's doc comment.
	VerifyCVC VerifyCVC
}

func (o TunnelOptions) observer() Observer {
	if o.Observer != nil {
		return o.Observer
	}
	return NopObserver{}
}

func (o TunnelOptions) rand() io.Reader {
	if o.Rand != nil {
		return o.Rand
	}
	return rand.Reader
}

// nowFunc is overridden in tests to make elapsed-time assertions
// deterministic.
var nowFunc = monotonicNow

// OpenTunnel drives the Opacity handshake state machine end-to-end against
// t, returning the four derived session keys on success. The handshake is
// atomic: either SessionKeys are returned, or a typed *Error is — never
// both. t.Close is invoked on every failure path; on success t is left
// open and ownership passes to the caller, which drives the downstream
// Secure Messaging channel over the same connection using the returned
// keys.
func OpenTunnel(t Transceiver, opts TunnelOptions) (SessionKeys, HandshakeMetrics, error) {
	obs := opts.observer()
	start := nowFunc()

	var keys SessionKeys
	var metrics HandshakeMetrics
	var kp *EphemeralKeyPair
	fail := func(kind Kind, detail string, cause error) (SessionKeys, HandshakeMetrics, error) {
		kp.zeroize()
		_ = t.Close()
		obs.TunnelFailed(kind)
		return SessionKeys{}, HandshakeMetrics{}, newError(kind, detail, cause)
	}

	kp, err := generateEphemeralKeyPair(opts.rand())
	if err != nil {
		return fail(KindCryptoInit, "failed to generate ephemeral keypair", err)
	}
	defer kp.zeroize()
	obs.EphemeralKeyGenerated()

	hostPub := kp.encodedPublicKey()

	apdu, err := buildGeneralAuthenticate(0x00, CBH, opts.IDH, hostPub)
	if err != nil {
		return fail(KindCryptoInit, "failed to build GENERAL AUTHENTICATE request", err)
	}

	resp, err := t.Transceive("GENERAL AUTHENTICATE", apdu)
	if err != nil {
		return fail(KindTransport, "transceive failed", err)
	}
	if resp == nil || !resp.Success {
		return fail(KindTransport, "card returned no response or a non-success status word", nil)
	}
	obs.ResponseReceived(len(resp.Data))

	sig, err := parseCardSignature(resp.Data)
	if err != nil {
		kind := KindParse
		if opErr, ok := err.(*Error); ok {
			kind = opErr.Kind
		}
		return fail(kind, "failed to parse card signature", err)
	}
	obs.SignatureParsed(sig.CB != 0)

	if sig.CB != 0 {
		return fail(KindPolicy, "card requested persistent binding", nil)
	}

	cardPub, err := checkCardPublicKey(splitXY(sig.PublicKey))
	if err != nil {
		return fail(KindKeyValidation, "card public key failed validation", err)
	}

	if opts.VerifyCVC != nil {
		if err := opts.VerifyCVC(sig.CVC); err != nil {
			return fail(KindKeyValidation, "CVC verification failed", err)
		}
	}

	z, err := ecdhSharedSecret(kp, cardPub)
	if err != nil {
		return fail(KindEcdh, "ECDH computation failed", err)
	}
	defer zeroize(z)

	otherInfo := buildOtherInfo(opts.IDH, CBH, hostPub[1:17], sig.ID, sig.Nonce, sig.CB)
	block := derive(z, otherInfo)
	keys = partitionKeyBlock(block)
	obs.KeysDerived()

	message := concat(kcTag, sig.ID[:], opts.IDH[:], hostPub[1:])
	if err := verifyCryptogram(keys.CFRM[:], message, sig.Cryptogram[:]); err != nil {
		keys.Zeroize()
		zeroize(block[:])
		return fail(KindAuthentication, "cryptogram verification failed", err)
	}
	obs.CryptogramVerified()
	zeroize(block[:])

	metrics.TunnelCreationMS = elapsedMS(start, nowFunc())
	obs.TunnelOpened(metrics)
	return keys, metrics, nil
}

// splitXY decodes a SEC1 uncompressed public key into its X and Y field
// elements.
func splitXY(pub [encodedPublicKeyLength]byte) ([fieldElementLength]byte, [fieldElementLength]byte) {
	var x, y [fieldElementLength]byte
	copy(x[:], pub[1:1+fieldElementLength])
	copy(y[:], pub[1+fieldElementLength:])
	return x, y
}

