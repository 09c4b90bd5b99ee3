// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

// VerifyCVC is an optional hook for verifying the card's Card Verifiable
// Certificate / signature. CVC verification is OPTIONAL per NIST SP
// 800-73-4 §4.1.6 and is not performed by OpenTunnel itself. When set via
// TunnelOptions, it receives CardSignature.CVC's raw bytes after the
// curve/OID checks pass but before ECDH. A non-nil return is fatal and is
// reported as a KindKeyValidation error, matching how the core already
// treats a failed on-curve check.
type VerifyCVC func(cvc []byte) error
