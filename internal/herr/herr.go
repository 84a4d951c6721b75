// SPDX-License-Identifier: MIT
//
// Package herr defines the typed error kinds shared by every protocol in
// this repository. All protocol failures are fatal to the session that
// raised them: no error reveals whether its cause was a wrong password or a
// tampered transcript, so callers should branch on Kind, never on message
// text.
package herr

import (
	"errors"
	"fmt"
)

// Kind classifies a protocol error for callers that need to distinguish
// causes (e.g. a CLI exit code) without string-matching messages.
type Kind string

const (
	// InvalidArgument covers malformed caller input: an identity longer than
	// MAX_ID, a non-alphanumeric session id, bad CLI arguments.
	InvalidArgument Kind = "invalid_argument"

	// InvalidEncoding covers malformed wire data: a point or field element
	// that fails decoding or validity checks, an identity length byte over
	// 255, an unsupported tagged-hash output width.
	InvalidEncoding Kind = "invalid_encoding"

	// AuthenticationFailure covers a cryptographic check that did not pass:
	// CRISP's pairing equality, OPAQUE's A_s/A_u comparison, a degenerate
	// G2 element.
	AuthenticationFailure Kind = "authentication_failure"

	// TransportError covers send/receive failures and header mismatches.
	TransportError Kind = "transport_error"

	// Internal covers failures in supporting infrastructure: pairing
	// context initialization, file I/O.
	Internal Kind = "internal"
)

type protocolError struct {
	kind Kind
	err  error
}

func (e *protocolError) Error() string {
	return fmt.Sprintf("%s: %v", e.kind, e.err)
}

func (e *protocolError) Unwrap() error {
	return e.err
}

// New returns an error of the given kind wrapping a plain message.
func New(kind Kind, msg string) error {
	return &protocolError{kind: kind, err: errors.New(msg)}
}

// Wrap returns an error of the given kind wrapping err. Wrap returns nil if
// err is nil.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}

	return &protocolError{kind: kind, err: err}
}

// Is reports whether the first error of this package in err's chain (err
// itself or the nearest error it wraps) was constructed with kind. Kinds of
// errors wrapped further inside that error are not consulted.
func Is(err error, kind Kind) bool {
	var pe *protocolError
	if errors.As(err, &pe) {
		return pe.kind == kind
	}

	return false
}
