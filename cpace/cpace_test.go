// SPDX-License-Identifier: MIT

package cpace_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shapaz/pake/cpace"
	"github.com/shapaz/pake/group/ristretto"
	"github.com/shapaz/pake/internal/ident"
)

func TestAgreement(t *testing.T) {
	g := ristretto.New()

	idA, err := ident.Pad("alice")
	require.NoError(t, err)
	idB, err := ident.Pad("bob")
	require.NoError(t, err)

	pwd := []byte("shared-secret")
	extra := []byte("demo")

	a, err := cpace.NewSession(g, true, nil, pwd, idA, idB, extra)
	require.NoError(t, err)

	b, err := cpace.NewSession(g, false, nil, pwd, idB, idA, extra)
	require.NoError(t, err)

	keyA, err := a.NewKey(b.OutMessage())
	require.NoError(t, err)

	keyB, err := b.NewKey(a.OutMessage())
	require.NoError(t, err)

	require.Equal(t, keyA, keyB)
	require.Len(t, keyA, cpace.KeyLen)
}

func TestDisagreementOnPassword(t *testing.T) {
	g := ristretto.New()

	idA, err := ident.Pad("alice")
	require.NoError(t, err)
	idB, err := ident.Pad("bob")
	require.NoError(t, err)

	extra := []byte("demo")

	a, err := cpace.NewSession(g, true, nil, []byte("pw1"), idA, idB, extra)
	require.NoError(t, err)

	b, err := cpace.NewSession(g, false, nil, []byte("pw2"), idB, idA, extra)
	require.NoError(t, err)

	keyA, err := a.NewKey(b.OutMessage())
	require.NoError(t, err)

	keyB, err := b.NewKey(a.OutMessage())
	require.NoError(t, err)

	require.NotEqual(t, keyA, keyB)
}

func TestRejectsInvalidPeerMessage(t *testing.T) {
	g := ristretto.New()

	idA, err := ident.Pad("alice")
	require.NoError(t, err)
	idB, err := ident.Pad("bob")
	require.NoError(t, err)

	a, err := cpace.NewSession(g, true, nil, []byte("pw"), idA, idB, nil)
	require.NoError(t, err)

	_, err = a.NewKey(make([]byte, 16))
	require.Error(t, err)
}
