// SPDX-License-Identifier: MIT
//
// Package chip implements the CHIP protocol: an identity-based
// Schnorr-style enrollment and two-message key agreement over Ristretto255,
// followed by the shared CPace-Ristretto255 finisher (package cpace).
//
// Package layout and enrollment/exchange split follow avahowell-occlude's
// small, single-purpose style; the group arithmetic is bit-exact with
// original_source/CHIP/{gen_pwd_file,key_exchange}.cpp.
package chip

import (
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/shapaz/pake/group"
	"github.com/shapaz/pake/internal/herr"
	"github.com/shapaz/pake/internal/ident"
	"github.com/shapaz/pake/internal/tagged"
	"github.com/shapaz/pake/internal/zeroize"
)

const (
	protocol = "CHIP"

	// Argon2id parameters matching libsodium's OPSLIMIT_SENSITIVE /
	// MEMLIMIT_SENSITIVE profile, grounded on avahowell-occlude's use of
	// golang.org/x/crypto/argon2 for the same purpose.
	argonTime    = 4
	argonMemory  = 1 << 20 // 1 GiB, in KiB
	argonThreads = 1
)

// Record is a CHIP enrollment record, as produced once offline by a trusted
// authority and read at the start of every exchange.
type Record struct {
	Net string
	ID  [ident.MaxID]byte
	X   group.Point
	Y   group.Point
	Z   group.Scalar
}

// Enroll derives a CHIP enrollment record for identity id on network net,
// bound to password.
func Enroll(g group.Group, net, password, id string) (*Record, error) {
	padded, err := ident.Pad(id)
	if err != nil {
		return nil, err
	}

	salt := tagged.Sum256(protocol, 1, []byte(net))

	pwdHash := argon2.IDKey([]byte(password), salt[:], argonTime, argonMemory, argonThreads, 64)

	var pwdHash64 [64]byte
	copy(pwdHash64[:], pwdHash)
	y := g.NewScalar().FromUniformBytes(pwdHash64)
	Y := g.BaseMult(y)

	x := g.NewScalar().Random()
	defer zeroize.Scalars(x, y)
	X := g.BaseMult(x)

	idHash := tagged.Sum512(protocol, 2, []byte(net), padded[:], X.Bytes())
	h := g.NewScalar().FromUniformBytes(idHash)

	z := h.Multiply(y).Add(x)

	return &Record{Net: net, ID: padded, X: X, Y: Y, Z: z}, nil
}

// Write serializes the record in the §6 wire layout:
// net || 0x00 || padded_ID || X || Y || z.
func (r *Record) Write(w io.Writer) error {
	if _, err := io.WriteString(w, r.Net); err != nil {
		return herr.Wrap(herr.Internal, err)
	}
	if _, err := w.Write([]byte{0}); err != nil {
		return herr.Wrap(herr.Internal, err)
	}
	if _, err := w.Write(r.ID[:]); err != nil {
		return herr.Wrap(herr.Internal, err)
	}
	if _, err := w.Write(r.X.Bytes()); err != nil {
		return herr.Wrap(herr.Internal, err)
	}
	if _, err := w.Write(r.Y.Bytes()); err != nil {
		return herr.Wrap(herr.Internal, err)
	}
	if _, err := w.Write(r.Z.Bytes()); err != nil {
		return herr.Wrap(herr.Internal, err)
	}
	return nil
}

// ReadRecord parses a CHIP enrollment record from the §6 wire layout.
func ReadRecord(g group.Group, r io.Reader) (*Record, error) {
	net, err := readCString(r)
	if err != nil {
		return nil, err
	}

	var id [ident.MaxID]byte
	if _, err := io.ReadFull(r, id[:]); err != nil {
		return nil, herr.Wrap(herr.Internal, err)
	}

	X, err := readPoint(g, r)
	if err != nil {
		return nil, err
	}

	Y, err := readPoint(g, r)
	if err != nil {
		return nil, err
	}

	zBuf := make([]byte, group.ScalarLen)
	if _, err := io.ReadFull(r, zBuf); err != nil {
		return nil, herr.Wrap(herr.Internal, err)
	}
	z, err := g.DecodeScalar(zBuf)
	if err != nil {
		return nil, err
	}

	return &Record{Net: net, ID: id, X: X, Y: Y, Z: z}, nil
}

func readPoint(g group.Group, r io.Reader) (group.Point, error) {
	buf := make([]byte, group.PointLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, herr.Wrap(herr.Internal, err)
	}
	return g.DecodePoint(buf)
}

func readCString(r io.Reader) (string, error) {
	var buf []byte
	one := make([]byte, 1)
	for {
		if _, err := io.ReadFull(r, one); err != nil {
			return "", herr.Wrap(herr.Internal, err)
		}
		if one[0] == 0 {
			return string(buf), nil
		}
		buf = append(buf, one[0])
	}
}
