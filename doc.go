// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

// Package opacity implements the host side of the Opacity secure-tunnel
// handshake from NIST SP 800-73-4 Cipher Suite 2: an ephemeral-static ECDH
// key agreement over P-256 between a host application and a PIV card,
// followed by a NIST SP 800-56A key derivation and a CMAC-AES-128
// cryptogram check, yielding four session keys for Secure Messaging.
//
// The package only implements the handshake itself. Byte-level transport to
// the card, PIN handling, key storage, and persistent-binding mode are all
// out of scope; see Transceiver for the transport contract callers must
// supply.
package opacity
