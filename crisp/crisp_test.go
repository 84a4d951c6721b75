// SPDX-License-Identifier: MIT

package crisp_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shapaz/pake/crisp"
	"github.com/shapaz/pake/group/ristretto"
	"github.com/shapaz/pake/pairing/bls12381"
)

func TestExchangeAgreement(t *testing.T) {
	pg := bls12381.New()
	g := ristretto.New()

	aliceRec, err := crisp.Enroll(pg, "example-net", "correct-horse", "alice")
	require.NoError(t, err)
	bobRec, err := crisp.Enroll(pg, "example-net", "correct-horse", "bob")
	require.NoError(t, err)

	aliceEx := crisp.NewExchange(pg, g, aliceRec)
	bobEx := crisp.NewExchange(pg, g, bobRec)

	aliceCPace, err := aliceEx.Finish(bobRec.ID, bobEx.OutMessage())
	require.NoError(t, err)
	bobCPace, err := bobEx.Finish(aliceRec.ID, aliceEx.OutMessage())
	require.NoError(t, err)

	aliceKey, err := aliceCPace.NewKey(bobCPace.OutMessage())
	require.NoError(t, err)
	bobKey, err := bobCPace.NewKey(aliceCPace.OutMessage())
	require.NoError(t, err)

	require.Equal(t, aliceKey, bobKey)
}

func TestExchangeRejectsForgedIdentity(t *testing.T) {
	pg := bls12381.New()
	g := ristretto.New()

	aliceRec, err := crisp.Enroll(pg, "example-net", "pw", "alice")
	require.NoError(t, err)
	bobRec, err := crisp.Enroll(pg, "example-net", "pw", "bob")
	require.NoError(t, err)
	eveRec, err := crisp.Enroll(pg, "example-net", "pw", "eve")
	require.NoError(t, err)

	aliceEx := crisp.NewExchange(pg, g, aliceRec)
	bobEx := crisp.NewExchange(pg, g, bobRec)

	// Eve replays Bob's blinded ephemeral but claims her own identity.
	_, err = aliceEx.Finish(eveRec.ID, bobEx.OutMessage())
	require.Error(t, err)
}

func TestEnrollRoundTrip(t *testing.T) {
	pg := bls12381.New()

	rec, err := crisp.Enroll(pg, "example-net", "pw", "alice")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rec.Write(&buf))

	got, err := crisp.ReadRecord(pg, &buf)
	require.NoError(t, err)

	require.Equal(t, rec.Net, got.Net)
	require.Equal(t, rec.ID, got.ID)
	require.Equal(t, rec.A.Bytes(), got.A.Bytes())
	require.Equal(t, rec.B.Bytes(), got.B.Bytes())
	require.Equal(t, rec.C.Bytes(), got.C.Bytes())
}
