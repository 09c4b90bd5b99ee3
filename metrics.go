// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

// HandshakeMetrics carries timing data for a successfully completed
// handshake. It is returned by OpenTunnel, not accumulated on a stateful
// timer object, so callers running handshakes concurrently never share
// mutable state.
type HandshakeMetrics struct {
	// TunnelCreationMS is the wall-clock duration of OpenTunnel, from
	// ephemeral key generation through cryptogram verification, in
	// milliseconds. Set on success only.
	TunnelCreationMS int64
}

// SessionKeys is the key block derived by the NIST SP 800-56A §5.8.1 KDF,
// split into its four 16-byte roles. Callers are responsible for
// zeroising this value once the session keys are no longer needed.
type SessionKeys struct {
	// CFRM authenticates the handshake itself (consumed internally by the
	// cryptogram check; exposed for reference/testing).
	CFRM [sessionKeyLength]byte
	// MAC authenticates subsequent secure-messaging commands.
	MAC [sessionKeyLength]byte
	// ENC encrypts subsequent secure-messaging command/response data.
	ENC [sessionKeyLength]byte
	// RMAC authenticates subsequent secure-messaging responses.
	RMAC [sessionKeyLength]byte
}

// Zeroize overwrites all four key roles in place.
func (k *SessionKeys) Zeroize() {
	if k == nil {
		return
	}
	zeroize(k.CFRM[:])
	zeroize(k.MAC[:])
	zeroize(k.ENC[:])
	zeroize(k.RMAC[:])
}
