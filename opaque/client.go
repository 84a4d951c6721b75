// SPDX-License-Identifier: MIT

package opaque

import (
	cryptorand "crypto/rand"
	"crypto/subtle"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/salsa20"

	"github.com/shapaz/pake/internal/herr"
	"github.com/shapaz/pake/internal/ident"
	"github.com/shapaz/pake/internal/tagged"
	"github.com/shapaz/pake/internal/zeroize"

	"github.com/shapaz/pake/group"
)

// SSIDLen is the byte width of the client-chosen session identifier.
const SSIDLen = 16

// KeyLen is the byte width of each of the derived session key, A_s and A_u.
const KeyLen = 32

// ClientExchange is a client's in-progress OPAQUE exchange.
type ClientExchange struct {
	g        group.Group
	password string

	sid  [ident.MaxID]byte
	ssid [SSIDLen]byte

	r  group.Scalar
	xu group.Scalar
	Xu group.Point

	alphaBytes []byte
}

// NewClientExchange begins a client-side OPAQUE exchange for identity sid,
// bound to password.
func NewClientExchange(g group.Group, sid, password string) (*ClientExchange, error) {
	padded, err := ident.Pad(sid)
	if err != nil {
		return nil, err
	}

	var ssid [SSIDLen]byte
	if _, err := io.ReadFull(cryptorand.Reader, ssid[:]); err != nil {
		return nil, herr.Wrap(herr.Internal, err)
	}

	r := g.NewScalar().Random()
	xu := g.NewScalar().Random()
	Xu := g.BaseMult(xu)

	pwdHash := tagged.Sum512(protocol, 1, []byte(password))
	alphaPoint := g.NewPoint().ScalarMult(r, g.PointFromHash(pwdHash))

	return &ClientExchange{
		g: g, password: password,
		sid: padded, ssid: ssid,
		r: r, xu: xu, Xu: Xu,
		alphaBytes: alphaPoint.Bytes(),
	}, nil
}

// Message1 returns the first flight: sid || ssid || X_u || alpha.
func (c *ClientExchange) Message1() []byte {
	out := make([]byte, 0, ident.MaxID+SSIDLen+2*group.PointLen)
	out = append(out, c.sid[:]...)
	out = append(out, c.ssid[:]...)
	out = append(out, c.Xu.Bytes()...)
	out = append(out, c.alphaBytes...)
	return out
}

// message2Len is the fixed length of the server's response flight:
// beta || X_s || envelope || A_s.
const message2Len = group.PointLen + group.PointLen + envelopeLen + KeyLen

// Finish consumes the server's response flight, verifies A_s, and returns
// the shared session key plus the A_u acknowledgement to send back. The
// client's ephemeral scalars are zeroized before returning, whether or not
// an error occurred.
func (c *ClientExchange) Finish(serverMsg []byte) (sessionKey, ack []byte, err error) {
	defer zeroize.Scalars(c.r, c.xu)

	if len(serverMsg) != message2Len {
		return nil, nil, herr.New(herr.InvalidEncoding, "opaque: malformed server response")
	}

	betaBytes := serverMsg[:group.PointLen]
	XsBytes := serverMsg[group.PointLen : 2*group.PointLen]
	ciphertext := serverMsg[2*group.PointLen : 2*group.PointLen+envelopeLen]
	wantAs := serverMsg[2*group.PointLen+envelopeLen:]

	beta, err := c.g.DecodePoint(betaBytes)
	if err != nil {
		return nil, nil, err
	}

	rInv := c.r.Copy().Invert()
	unblinded := c.g.NewPoint().ScalarMult(rInv, beta)

	rw := tagged.Sum256(protocol, 2, []byte(c.password), unblinded.Bytes())

	m, ok := secretbox.Open(nil, ciphertext, &envelopeNonce, &rw)
	if !ok {
		return nil, nil, herr.New(herr.AuthenticationFailure, "opaque: envelope authentication failed")
	}

	pu, err := c.g.DecodeScalar(m[:group.ScalarLen])
	if err != nil {
		return nil, nil, err
	}
	Pu, err := c.g.DecodePoint(m[group.ScalarLen : group.ScalarLen+group.PointLen])
	if err != nil {
		return nil, nil, err
	}
	Ps, err := c.g.DecodePoint(m[group.ScalarLen+group.PointLen:])
	if err != nil {
		return nil, nil, err
	}
	_ = Pu // bound into the envelope, not otherwise used by the client

	ssidPrime := tagged.Sum256(protocol, 3, c.sid[:], c.ssid[:], c.alphaBytes)

	es := deriveExponent(c.g, XsBytes, "U", ssidPrime)
	eu := deriveExponent(c.g, c.Xu.Bytes(), "S", ssidPrime)

	Xs, err := c.g.DecodePoint(XsBytes)
	if err != nil {
		return nil, nil, err
	}

	lhs := c.g.NewPoint().ScalarMult(es, Ps)
	lhs.Add(Xs)

	euPu := eu.Multiply(pu)
	exponent := c.xu.Add(euPu)

	K := c.g.NewPoint().ScalarMult(exponent, lhs)
	Kbuf := tagged.Sum256(protocol, 5, K.Bytes())

	out := expand(Kbuf, ssidPrime)

	if subtle.ConstantTimeCompare(out[KeyLen:2*KeyLen], wantAs) != 1 {
		return nil, nil, herr.New(herr.AuthenticationFailure, "opaque: A_s verification failed")
	}

	return out[:KeyLen], out[2*KeyLen:], nil
}

// deriveExponent computes reduce(TAGGED_HASH(4, point, role, ssidPrime)).
func deriveExponent(g group.Group, point []byte, role string, ssidPrime [32]byte) group.Scalar {
	hash := tagged.Sum512(protocol, 4, point, []byte(role), ssidPrime[:])
	return g.NewScalar().FromUniformBytes(hash)
}

// expand derives SK || A_s || A_u as a raw XSalsa20 key stream keyed by K,
// with the first 24 bytes of ssidPrime as nonce, matching libsodium's
// crypto_stream(out, len(out), nonce, key) used as a PRF in the original.
func expand(key [32]byte, ssidPrime [32]byte) []byte {
	var nonce [24]byte
	copy(nonce[:], ssidPrime[:24])

	out := make([]byte, 3*KeyLen)
	salsa20.XORKeyStream(out, out, nonce[:], &key)
	return out
}
