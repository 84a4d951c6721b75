// SPDX-License-Identifier: MIT
//
// Package crisp implements the CRISP protocol: a pairing-based
// identity-verifying enrollment and key agreement, followed by the shared
// CPace-Ristretto255 finisher (package cpace). It is a direct, bit-exact
// port of original_source/CRISP/{gen_pwd_file,key_exchange}.cpp onto the
// pairing.Group abstraction, in the small single-purpose-package style of
// avahowell-occlude.
package crisp

import (
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/shapaz/pake/internal/herr"
	"github.com/shapaz/pake/internal/ident"
	"github.com/shapaz/pake/internal/tagged"
	"github.com/shapaz/pake/internal/zeroize"
	"github.com/shapaz/pake/pairing"
)

const (
	protocol = "CRISP"

	argonTime    = 4
	argonMemory  = 1 << 20 // 1 GiB, in KiB
	argonThreads = 1
)

// Record is a CRISP enrollment record.
type Record struct {
	Net string
	ID  [ident.MaxID]byte
	G2  pairing.G2 // the group's fixed generator, carried in the record as original_source does
	A   pairing.G2
	B   pairing.G1
	C   pairing.G1
}

// Enroll derives a CRISP enrollment record for identity id on network net,
// bound to password.
func Enroll(pg pairing.Group, net, password, id string) (*Record, error) {
	padded, err := ident.Pad(id)
	if err != nil {
		return nil, err
	}

	salt := tagged.Sum256(protocol, 1, []byte(net))
	pwdHash := argon2.IDKey([]byte(password), salt[:], argonTime, argonMemory, argonThreads, 32)

	idHash := tagged.Sum256(protocol, 2, []byte(net), padded[:])

	g2 := pg.G2Generator()

	x := pg.RandomZr()
	defer zeroize.Scalars(x)

	A := pg.NewG2().Pow(g2, x)
	B := pg.NewG1().Pow(pg.HashToG1(pwdHash), x)
	C := pg.NewG1().Pow(pg.HashToG1(idHash[:]), x)

	return &Record{Net: net, ID: padded, G2: g2, A: A, B: B, C: C}, nil
}

// Write serializes the record in the §6 wire layout:
// net || 0x00 || padded_ID || g2 || A || B || C.
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
	if _, err := w.Write(r.G2.Bytes()); err != nil {
		return herr.Wrap(herr.Internal, err)
	}
	if _, err := w.Write(r.A.Bytes()); err != nil {
		return herr.Wrap(herr.Internal, err)
	}
	if _, err := w.Write(r.B.Bytes()); err != nil {
		return herr.Wrap(herr.Internal, err)
	}
	if _, err := w.Write(r.C.Bytes()); err != nil {
		return herr.Wrap(herr.Internal, err)
	}
	return nil
}

// ReadRecord parses a CRISP enrollment record from the §6 wire layout.
func ReadRecord(pg pairing.Group, r io.Reader) (*Record, error) {
	net, err := readCString(r)
	if err != nil {
		return nil, err
	}

	var id [ident.MaxID]byte
	if _, err := io.ReadFull(r, id[:]); err != nil {
		return nil, herr.Wrap(herr.Internal, err)
	}

	g2, err := readG2(pg, r)
	if err != nil {
		return nil, err
	}
	A, err := readG2(pg, r)
	if err != nil {
		return nil, err
	}
	B, err := readG1(pg, r)
	if err != nil {
		return nil, err
	}
	C, err := readG1(pg, r)
	if err != nil {
		return nil, err
	}

	return &Record{Net: net, ID: id, G2: g2, A: A, B: B, C: C}, nil
}

func readG1(pg pairing.Group, r io.Reader) (pairing.G1, error) {
	buf := make([]byte, pg.G1Len())
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, herr.Wrap(herr.Internal, err)
	}
	return pg.DecodeG1(buf)
}

func readG2(pg pairing.Group, r io.Reader) (pairing.G2, error) {
	buf := make([]byte, pg.G2Len())
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, herr.Wrap(herr.Internal, err)
	}
	return pg.DecodeG2(buf)
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
