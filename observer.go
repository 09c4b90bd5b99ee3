// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

// Observer receives structured events as the handshake progresses: the
// core emits events, and it is up to the caller to render or discard
// them, rather than the core formatting and writing log lines itself. No
// method receives private key material or session keys; implementations
// that want wire-level detail for debugging must do so explicitly and out
// of band.
//
// See internal/zlogobserver for a zerolog-backed implementation.
type Observer interface {
	// EphemeralKeyGenerated reports that the host's P-256 ephemeral
	// keypair was generated successfully.
	EphemeralKeyGenerated()
	// ResponseReceived reports the size of the card's GENERAL
	// AUTHENTICATE response, before parsing.
	ResponseReceived(bytes int)
	// SignatureParsed reports that the card's signed response parsed
	// successfully and whether persistent binding was requested.
	SignatureParsed(persistentBinding bool)
	// KeysDerived reports that the KDF produced a key block.
	KeysDerived()
	// CryptogramVerified reports that the AuthCryptogram check passed.
	CryptogramVerified()
	// TunnelOpened reports successful completion and the elapsed time.
	TunnelOpened(elapsed HandshakeMetrics)
	// TunnelFailed reports the Kind of a fatal failure.
	TunnelFailed(kind Kind)
}

// NopObserver discards every event. It is the default when no Observer is
// supplied to OpenTunnel.
type NopObserver struct{}

func (NopObserver) EphemeralKeyGenerated()        {}
func (NopObserver) ResponseReceived(int)          {}
func (NopObserver) SignatureParsed(bool)          {}
func (NopObserver) KeysDerived()                  {}
func (NopObserver) CryptogramVerified()           {}
func (NopObserver) TunnelOpened(HandshakeMetrics) {}
func (NopObserver) TunnelFailed(Kind)             {}

var _ Observer = NopObserver{}
