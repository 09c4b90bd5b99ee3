// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

// Transceiver is the byte-level link to the card. It is the one external
// collaborator this package depends on: the actual NFC/contact transport
// is deliberately kept out of the core, so this package only defines the
// contract an implementation must satisfy. See internal/pcsctransceiver
// for a concrete PC/SC-backed implementation.
type Transceiver interface {
	// Transceive sends apduBytes to the card under the given command name
	// (used only for observability, e.g. "GENERAL AUTHENTICATE") and
	// returns the card's response. A nil Response with a nil error
	// indicates a transport failure equivalent to the reference
	// implementation's null return; OpenTunnel treats both a non-nil
	// error and a nil Response as fatal TransportErrors.
	Transceive(apduName string, apduBytes []byte) (*Response, error)

	// Close releases the transport. OpenTunnel calls Close on every
	// failure path; on success it leaves t open so the caller can drive
	// the downstream Secure Messaging channel over the same connection.
	Close() error
}

// Response is the card's reply to a transceived command.
type Response struct {
	// Data is the R-APDU body, excluding the SW1SW2 status bytes.
	Data []byte
	// Success indicates the status word signalled normal completion
	// (SW1SW2 == 0x9000). OpenTunnel treats a non-success response the
	// same as a transport failure.
	Success bool
}
