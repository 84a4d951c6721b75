// SPDX-License-Identifier: MIT

package ristretto_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shapaz/pake/group"
	"github.com/shapaz/pake/group/ristretto"
)

func TestPointRoundTrip(t *testing.T) {
	g := ristretto.New()

	s := g.NewScalar().Random()
	p := g.BaseMult(s)

	decoded, err := g.DecodePoint(p.Bytes())
	require.NoError(t, err)
	require.True(t, p.Equal(decoded))
}

func TestScalarRoundTrip(t *testing.T) {
	g := ristretto.New()

	s := g.NewScalar().Random()

	decoded, err := g.DecodeScalar(s.Bytes())
	require.NoError(t, err)
	require.Equal(t, s.Bytes(), decoded.Bytes())
}

func TestPointFromHashDeterministic(t *testing.T) {
	g := ristretto.New()

	var b [group.UniformLen]byte
	for i := range b {
		b[i] = byte(i)
	}

	p1 := g.PointFromHash(b)
	p2 := g.PointFromHash(b)
	require.True(t, p1.Equal(p2), "PointFromHash must be deterministic")
}

func TestDecodePointRejectsBadLength(t *testing.T) {
	g := ristretto.New()

	_, err := g.DecodePoint(make([]byte, 16))
	require.Error(t, err)
}
