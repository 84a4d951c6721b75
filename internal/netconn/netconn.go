// SPDX-License-Identifier: MIT
//
// Package netconn provides the TCP transport cmd/ binaries use to exchange
// protocol messages. It is a minimal stand-in for the out-of-scope UDP
// handshake transport of the original C sources (see utils.cpp's
// open_socket, SEND, RECV): TCP already gives reliable, in-order delivery
// for the session's lifetime, so there is no SYN/SYN_ACK/ACK opener to
// reimplement.
package netconn

import (
	"net"

	"github.com/shapaz/pake/internal/herr"
)

// Dial connects to addr (host:port), the client role's entry point.
func Dial(addr string) (net.Conn, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, herr.Wrap(herr.TransportError, err)
	}
	return conn, nil
}

// Listen accepts a single inbound connection on addr, the server role's
// entry point. It closes the listener once a connection is accepted or the
// accept fails.
func Listen(addr string) (net.Conn, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, herr.Wrap(herr.TransportError, err)
	}
	defer ln.Close()

	conn, err := ln.Accept()
	if err != nil {
		return nil, herr.Wrap(herr.TransportError, err)
	}
	return conn, nil
}
