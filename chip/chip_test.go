// SPDX-License-Identifier: MIT

package chip_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shapaz/pake/chip"
	"github.com/shapaz/pake/group/ristretto"
)

func TestExchangeAgreement(t *testing.T) {
	g := ristretto.New()

	aliceRec, err := chip.Enroll(g, "example-net", "correct-horse", "alice")
	require.NoError(t, err)
	bobRec, err := chip.Enroll(g, "example-net", "correct-horse", "bob")
	require.NoError(t, err)

	aliceEx := chip.NewExchange(g, aliceRec)
	bobEx := chip.NewExchange(g, bobRec)

	aliceCPace, err := aliceEx.Finish(bobRec.ID, bobRec.X, bobEx.OutMessage())
	require.NoError(t, err)
	bobCPace, err := bobEx.Finish(aliceRec.ID, aliceRec.X, aliceEx.OutMessage())
	require.NoError(t, err)

	aliceKey, err := aliceCPace.NewKey(bobCPace.OutMessage())
	require.NoError(t, err)
	bobKey, err := bobCPace.NewKey(aliceCPace.OutMessage())
	require.NoError(t, err)

	require.Equal(t, aliceKey, bobKey)
}

func TestExchangeWrongPasswordDisagrees(t *testing.T) {
	g := ristretto.New()

	aliceRec, err := chip.Enroll(g, "example-net", "correct-horse", "alice")
	require.NoError(t, err)
	bobRec, err := chip.Enroll(g, "example-net", "wrong-horse", "bob")
	require.NoError(t, err)

	aliceEx := chip.NewExchange(g, aliceRec)
	bobEx := chip.NewExchange(g, bobRec)

	aliceCPace, err := aliceEx.Finish(bobRec.ID, bobRec.X, bobEx.OutMessage())
	require.NoError(t, err)
	bobCPace, err := bobEx.Finish(aliceRec.ID, aliceRec.X, aliceEx.OutMessage())
	require.NoError(t, err)

	aliceKey, err := aliceCPace.NewKey(bobCPace.OutMessage())
	require.NoError(t, err)
	bobKey, err := bobCPace.NewKey(aliceCPace.OutMessage())
	require.NoError(t, err)

	require.NotEqual(t, aliceKey, bobKey)
}

func TestEnrollRoundTrip(t *testing.T) {
	g := ristretto.New()

	rec, err := chip.Enroll(g, "example-net", "pw", "alice")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rec.Write(&buf))

	got, err := chip.ReadRecord(g, &buf)
	require.NoError(t, err)

	require.Equal(t, rec.Net, got.Net)
	require.Equal(t, rec.ID, got.ID)
	require.Equal(t, rec.X.Bytes(), got.X.Bytes())
	require.Equal(t, rec.Y.Bytes(), got.Y.Bytes())
	require.Equal(t, rec.Z.Bytes(), got.Z.Bytes())
}
