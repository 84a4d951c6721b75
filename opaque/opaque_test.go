// SPDX-License-Identifier: MIT

package opaque_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shapaz/pake/group/ristretto"
	"github.com/shapaz/pake/opaque"
)

func TestExchangeAgreement(t *testing.T) {
	g := ristretto.New()

	rec, err := opaque.Enroll(g, "correct-horse")
	require.NoError(t, err)

	client, err := opaque.NewClientExchange(g, "alice", "correct-horse")
	require.NoError(t, err)

	server, err := opaque.NewServerExchange(g, rec, client.Message1())
	require.NoError(t, err)

	clientKey, au, err := client.Finish(server.Message2())
	require.NoError(t, err)

	serverKey, err := server.Finish(au)
	require.NoError(t, err)

	require.Equal(t, clientKey, serverKey)
	require.Len(t, clientKey, opaque.KeyLen)
}

func TestExchangeWrongPasswordFails(t *testing.T) {
	g := ristretto.New()

	rec, err := opaque.Enroll(g, "correct-horse")
	require.NoError(t, err)

	client, err := opaque.NewClientExchange(g, "alice", "wrong-horse")
	require.NoError(t, err)

	server, err := opaque.NewServerExchange(g, rec, client.Message1())
	require.NoError(t, err)

	_, _, err = client.Finish(server.Message2())
	require.Error(t, err)
}

func TestRecordRoundTrip(t *testing.T) {
	g := ristretto.New()

	rec, err := opaque.Enroll(g, "pw")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rec.Write(&buf))

	got, err := opaque.ReadRecord(g, &buf)
	require.NoError(t, err)

	require.Equal(t, rec.KS.Bytes(), got.KS.Bytes())
	require.Equal(t, rec.PS.Bytes(), got.PS.Bytes())
	require.Equal(t, rec.PSPub.Bytes(), got.PSPub.Bytes())
	require.Equal(t, rec.PUPub.Bytes(), got.PUPub.Bytes())
	require.Equal(t, rec.C, got.C)
}

func TestLoadRecordRejectsPathTraversal(t *testing.T) {
	g := ristretto.New()

	_, err := opaque.LoadRecord(g, t.TempDir(), "../etc/passwd")
	require.Error(t, err)
}

func TestLoadRecordFromDisk(t *testing.T) {
	g := ristretto.New()

	rec, err := opaque.Enroll(g, "pw")
	require.NoError(t, err)

	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "alice.pwd"))
	require.NoError(t, err)
	require.NoError(t, rec.Write(f))
	require.NoError(t, f.Close())

	got, err := opaque.LoadRecord(g, dir, "Alice")
	require.NoError(t, err)
	require.Equal(t, rec.PSPub.Bytes(), got.PSPub.Bytes())
}
