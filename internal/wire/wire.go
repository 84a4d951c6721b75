// SPDX-License-Identifier: MIT
//
// Package wire frames fixed-width protocol messages over any
// io.ReadWriter (in practice a net.Conn), prefixing each message with a
// one-byte counter that both peers increment in lockstep. This gives the
// exchange a cheap, explicit check that the two sides agree on how many
// messages have crossed the wire, modeled on the SEND/RECV helper macros in
// utils.h — which this repository's cmd/ binaries replace with a real,
// checked framing layer instead of bare fixed-size reads and writes.
package wire

import (
	"io"

	"github.com/shapaz/pake/internal/herr"
)

// Writer writes counter-prefixed messages to an underlying io.Writer. The
// zero value is not usable; construct with NewWriter.
type Writer struct {
	w   io.Writer
	ctr byte
}

// NewWriter wraps w. The first message is sent with counter 0.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteMessage writes the one-byte counter header followed by msg, then
// advances the counter by 4 for the next call.
func (wr *Writer) WriteMessage(msg []byte) error {
	if _, err := wr.w.Write([]byte{wr.ctr}); err != nil {
		return herr.Wrap(herr.TransportError, err)
	}
	if _, err := wr.w.Write(msg); err != nil {
		return herr.Wrap(herr.TransportError, err)
	}
	wr.ctr += 4
	return nil
}

// Reader reads counter-prefixed messages from an underlying io.Reader. The
// zero value is not usable; construct with NewReader.
type Reader struct {
	r   io.Reader
	ctr byte
}

// NewReader wraps r. The first expected message carries counter 0.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadMessage reads a counter-prefixed message of exactly len(buf) bytes
// into buf, rejecting a header that does not match the expected counter.
func (rd *Reader) ReadMessage(buf []byte) error {
	var hdr [1]byte
	if _, err := io.ReadFull(rd.r, hdr[:]); err != nil {
		return herr.Wrap(herr.TransportError, err)
	}
	if hdr[0] != rd.ctr {
		return herr.New(herr.TransportError, "wire: unexpected message counter")
	}
	if _, err := io.ReadFull(rd.r, buf); err != nil {
		return herr.Wrap(herr.TransportError, err)
	}
	rd.ctr += 4
	return nil
}
