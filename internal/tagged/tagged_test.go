// SPDX-License-Identifier: MIT

package tagged_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shapaz/pake/internal/herr"
	"github.com/shapaz/pake/internal/tagged"
)

func TestSum256DeterministicAndWidthCorrect(t *testing.T) {
	a := tagged.Sum256("CHIP", 1, []byte("segment"))
	b := tagged.Sum256("CHIP", 1, []byte("segment"))
	require.Equal(t, a, b)
	require.Len(t, a, 32)
}

func TestSum512DeterministicAndWidthCorrect(t *testing.T) {
	a := tagged.Sum512("CHIP", 2, []byte("segment"))
	b := tagged.Sum512("CHIP", 2, []byte("segment"))
	require.Equal(t, a, b)
	require.Len(t, a, 64)
}

func TestDistinctTagsDisagree(t *testing.T) {
	a := tagged.Sum256("CHIP", 1, []byte("segment"))
	b := tagged.Sum256("CHIP", 2, []byte("segment"))
	require.NotEqual(t, a, b)
}

func TestDistinctProtocolsDisagree(t *testing.T) {
	a := tagged.Sum256("CHIP", 1, []byte("segment"))
	b := tagged.Sum256("CRISP", 1, []byte("segment"))
	require.NotEqual(t, a, b)
}

func TestSegmentConcatenationIsNotLengthFramed(t *testing.T) {
	// "ab","c" and "a","bc" concatenate to the same bytes, so they must
	// hash identically: callers, not Hash, are responsible for fixed
	// widths that keep segments from being confused with one another.
	a := tagged.Sum256("OPAQUE", 5, []byte("ab"), []byte("c"))
	b := tagged.Sum256("OPAQUE", 5, []byte("a"), []byte("bc"))
	require.Equal(t, a, b)
}

func TestHashRejectsUnsupportedWidth(t *testing.T) {
	out := make([]byte, 20)
	err := tagged.Hash(out, "CHIP", 1, []byte("segment"))
	require.Error(t, err)
	require.True(t, herr.Is(err, herr.InvalidEncoding))
}
