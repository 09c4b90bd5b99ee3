// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

// zeroize overwrites b in place. It is called on every exit path that does
// not hand key material to the caller: the ephemeral private scalar always,
// and any KDF output or partial session keys when the handshake fails.
func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
