// SPDX-License-Identifier: MIT

package wire_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shapaz/pake/internal/herr"
	"github.com/shapaz/pake/internal/wire"
)

func TestWriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	require.NoError(t, w.WriteMessage([]byte("first")))
	require.NoError(t, w.WriteMessage([]byte("second")))

	r := wire.NewReader(&buf)

	got := make([]byte, len("first"))
	require.NoError(t, r.ReadMessage(got))
	require.Equal(t, "first", string(got))

	got2 := make([]byte, len("second"))
	require.NoError(t, r.ReadMessage(got2))
	require.Equal(t, "second", string(got2))
}

func TestReadRejectsWrongCounter(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(4) // peer expects the first message at counter 0
	buf.WriteString("oops")

	r := wire.NewReader(&buf)
	err := r.ReadMessage(make([]byte, 4))
	require.Error(t, err)
	require.True(t, herr.Is(err, herr.TransportError))
}
