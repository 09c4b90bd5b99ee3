// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

import "fmt"

// Kind classifies a handshake failure into one of a small set of semantic
// categories. Callers route alerts by comparing errors.Is against the
// package-level sentinels below, not by inspecting Kind directly.
type Kind int

const (
	// KindCryptoInit covers ephemeral keypair generation failures and
	// unexpected public-key component sizes.
	KindCryptoInit Kind = iota + 1
	// KindTransport covers a Transceive error, a nil Transceiver response,
	// or a non-success status word. Errors returned by Close are not
	// reported.
	KindTransport
	// KindParse covers a malformed GENERAL AUTHENTICATE response: a
	// missing tag, a wrong length, or a wrong algorithm OID.
	KindParse
	// KindPolicy covers a card that requested persistent binding.
	KindPolicy
	// KindKeyValidation covers a card public key that fails the on-curve
	// or identity check.
	KindKeyValidation
	// KindEcdh covers a shared-secret computation that produced the
	// identity point or otherwise failed.
	KindEcdh
	// KindAuthentication covers a CMAC cryptogram mismatch.
	KindAuthentication
)

func (k Kind) String() string {
	switch k {
	case KindCryptoInit:
		return "crypto_init"
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	case KindPolicy:
		return "policy"
	case KindKeyValidation:
		return "key_validation"
	case KindEcdh:
		return "ecdh"
	case KindAuthentication:
		return "authentication"
	default:
		return "unknown"
	}
}

// Error is the single error type the core returns. Every exit path of
// OpenTunnel other than success produces one of these, tagged with a Kind so
// callers can distinguish e.g. PolicyError from AuthenticationError without
// string matching.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("opacity: %s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("opacity: %s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is one of the sentinel Kind markers below,
// letting callers write errors.Is(err, opacity.ErrPolicy) instead of
// switching on Kind.
func (e *Error) Is(target error) bool {
	sentinel, ok := target.(*Error)
	if !ok {
		return false
	}
	return sentinel.Detail == "" && sentinel.Err == nil && sentinel.Kind == e.Kind
}

// Sentinels for errors.Is comparisons. Each carries only a Kind; use
// newError to build the detailed error actually returned to callers.
var (
	ErrCryptoInit     = &Error{Kind: KindCryptoInit}
	ErrTransport      = &Error{Kind: KindTransport}
	ErrParse          = &Error{Kind: KindParse}
	ErrPolicy         = &Error{Kind: KindPolicy}
	ErrKeyValidation  = &Error{Kind: KindKeyValidation}
	ErrEcdh           = &Error{Kind: KindEcdh}
	ErrAuthentication = &Error{Kind: KindAuthentication}
)

func newError(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}
