// SPDX-License-Identifier: MIT

package opaque

import (
	"crypto/subtle"
	"os"
	"path/filepath"
	"strings"

	"github.com/shapaz/pake/group"
	"github.com/shapaz/pake/internal/herr"
	"github.com/shapaz/pake/internal/ident"
	"github.com/shapaz/pake/internal/tagged"
	"github.com/shapaz/pake/internal/zeroize"
)

// LoadRecord sanitizes sid (rejecting anything but ASCII letters/digits, to
// rule out path traversal) and reads "<dir>/<lowercased sid>.pwd".
func LoadRecord(g group.Group, dir, sid string) (*Record, error) {
	safe, err := sanitizeSID(sid)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(dir, safe+".pwd"))
	if err != nil {
		return nil, herr.Wrap(herr.Internal, err)
	}
	defer f.Close()

	return ReadRecord(g, f)
}

func sanitizeSID(sid string) (string, error) {
	var b strings.Builder
	for _, c := range sid {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c >= 'A' && c <= 'Z':
			b.WriteRune(c - 'A' + 'a')
		default:
			return "", herr.New(herr.InvalidArgument, "opaque: identity contains invalid character")
		}
	}
	return b.String(), nil
}

// ServerExchange is a server's in-progress OPAQUE exchange, loaded from one
// client's enrollment record.
type ServerExchange struct {
	g   group.Group
	rec *Record

	sid  [ident.MaxID]byte
	ssid [SSIDLen]byte

	alphaBytes []byte

	xs group.Scalar
	Xs group.Point

	betaBytes []byte
	cipher    []byte

	out []byte // SK || A_s || A_u, computed eagerly in NewServerExchange
}

// NewServerExchange processes the client's first flight against rec.
func NewServerExchange(g group.Group, rec *Record, clientMsg []byte) (*ServerExchange, error) {
	const msg1Len = ident.MaxID + SSIDLen + 2*group.PointLen
	if len(clientMsg) != msg1Len {
		return nil, herr.New(herr.InvalidEncoding, "opaque: malformed client message")
	}

	var sid [ident.MaxID]byte
	copy(sid[:], clientMsg[:ident.MaxID])
	var ssid [SSIDLen]byte
	copy(ssid[:], clientMsg[ident.MaxID:ident.MaxID+SSIDLen])
	XuBytes := clientMsg[ident.MaxID+SSIDLen : ident.MaxID+SSIDLen+group.PointLen]
	alphaBytes := clientMsg[ident.MaxID+SSIDLen+group.PointLen:]

	alpha, err := g.DecodePoint(alphaBytes)
	if err != nil {
		return nil, err
	}
	Xu, err := g.DecodePoint(XuBytes)
	if err != nil {
		return nil, err
	}

	xs := g.NewScalar().Random()
	Xs := g.BaseMult(xs)

	beta := g.NewPoint().ScalarMult(rec.KS, alpha)

	ssidPrime := tagged.Sum256(protocol, 3, sid[:], ssid[:], alphaBytes)

	es := deriveExponent(g, Xs.Bytes(), "U", ssidPrime)
	eu := deriveExponent(g, XuBytes, "S", ssidPrime)

	rhs := g.NewPoint().ScalarMult(eu, rec.PUPub)
	rhs.Add(Xu)

	esPs := es.Multiply(rec.PS)
	exponent := xs.Add(esPs)

	K := g.NewPoint().ScalarMult(exponent, rhs)
	Kbuf := tagged.Sum256(protocol, 5, K.Bytes())

	out := expand(Kbuf, ssidPrime)

	return &ServerExchange{
		g: g, rec: rec,
		sid: sid, ssid: ssid,
		alphaBytes: alphaBytes,
		xs:         xs, Xs: Xs,
		betaBytes: beta.Bytes(),
		cipher:    rec.C,
		out:       out,
	}, nil
}

// Message2 returns the second flight: beta || X_s || c || A_s.
func (s *ServerExchange) Message2() []byte {
	out := make([]byte, 0, 2*group.PointLen+envelopeLen+KeyLen)
	out = append(out, s.betaBytes...)
	out = append(out, s.Xs.Bytes()...)
	out = append(out, s.cipher...)
	out = append(out, s.out[KeyLen:2*KeyLen]...)
	return out
}

// Finish verifies the client's A_u acknowledgement and returns the shared
// session key. The server's ephemeral scalar is zeroized before returning,
// whether or not an error occurred.
func (s *ServerExchange) Finish(clientAu []byte) ([]byte, error) {
	defer zeroize.Scalars(s.xs)

	if subtle.ConstantTimeCompare(s.out[2*KeyLen:], clientAu) != 1 {
		return nil, herr.New(herr.AuthenticationFailure, "opaque: A_u verification failed")
	}
	return s.out[:KeyLen], nil
}
