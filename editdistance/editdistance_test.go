package editdistance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func toUTF16(s string) []uint16 {
	var out []uint16
	for _, r := range s {
		if r > 0xffff {
			r -= 0x10000
			out = append(out, uint16(0xd800+(r>>10)), uint16(0xdc00+(r&0x3ff)))
		} else {
			out = append(out, uint16(r))
		}
	}
	return out
}

func idxsFor(s []uint16) ([]uint8, uint8) {
	idxs := make([]uint8, len(s))
	n := MakeIdxs(s, uint8(len(s)), idxs)
	return idxs, n
}

func calcStrings(t *testing.T, a, b string) uint8 {
	t.Helper()
	s1 := toUTF16(a)
	s2 := toUTF16(b)
	idxs1, len1 := idxsFor(s1)
	idxs2, len2 := idxsFor(s2)
	return Calc(s1, idxs1, int(len1), s2, idxs2, int(len2))
}

func TestCalcIdenticalStringsAreZero(t *testing.T) {
	require.EqualValues(t, 0, calcStrings(t, "en-US", "en-US"))
	require.EqualValues(t, 0, calcStrings(t, "", ""))
}

func TestCalcIsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"en-US", "en-GB"},
		{"az-AZ", "az-Cyrl-AZ"},
		{"English", "Engilsh"},
		{"", "abc"},
		{"a", "abc"},
	}
	for _, p := range pairs {
		require.Equal(t, calcStrings(t, p[0], p[1]), calcStrings(t, p[1], p[0]), "%v", p)
	}
}

func TestCalcEmptyStringIsLengthOfOther(t *testing.T) {
	require.EqualValues(t, 5, calcStrings(t, "", "en-US"))
	require.EqualValues(t, 5, calcStrings(t, "en-US", ""))
}

func TestCalcSingleInsertOrDelete(t *testing.T) {
	require.EqualValues(t, 1, calcStrings(t, "cat", "cats"))
	require.EqualValues(t, 1, calcStrings(t, "cats", "cat"))
}

func TestCalcSingleSubstitution(t *testing.T) {
	require.EqualValues(t, 1, calcStrings(t, "cat", "cot"))
}

func TestCalcAdjacentTransposition(t *testing.T) {
	// "ab" -> "ba" is a single adjacent transposition, costing 1 — not 2
	// as plain Levenshtein would score it.
	require.EqualValues(t, 1, calcStrings(t, "ab", "ba"))
	require.EqualValues(t, 1, calcStrings(t, "abcd", "bacd"))
}

func TestCalcNonAdjacentTranspositionIsNotDiscounted(t *testing.T) {
	// "abc" -> "cba" swaps the first and last letters, which this variant
	// does not special-case — it falls back to ordinary substitution cost.
	require.EqualValues(t, 2, calcStrings(t, "abc", "cba"))
}

func TestCalcTriangleInequality(t *testing.T) {
	a, b, c := "kitten", "sitting", "sitten"
	ab := calcStrings(t, a, b)
	ac := calcStrings(t, a, c)
	cb := calcStrings(t, c, b)
	require.LessOrEqual(t, int(ab), int(ac)+int(cb))
}

func TestCalcSurrogatePairCountsAsOneCodePoint(t *testing.T) {
	// U+1F600 (grinning face) is a surrogate pair in UTF-16; replacing it
	// with a single BMP character should cost 1, not 2.
	emoji := string(rune(0x1F600))
	require.EqualValues(t, 1, calcStrings(t, emoji, "x"))
	require.EqualValues(t, 0, calcStrings(t, emoji, emoji))
}

func TestMakeIdxsCountsSurrogatePairsAsOneUnit(t *testing.T) {
	s := toUTF16("a" + string(rune(0x1F600)) + "b")
	idxs := make([]uint8, len(s))
	n := MakeIdxs(s, uint8(len(s)), idxs)
	require.EqualValues(t, 3, n)
	require.EqualValues(t, 1, idxs[0])
	require.EqualValues(t, 3, idxs[1])
	require.EqualValues(t, 4, idxs[2])
}

func TestMakeIdxsPlainBMPStringIsOneToOne(t *testing.T) {
	s := toUTF16("hello")
	idxs := make([]uint8, len(s))
	n := MakeIdxs(s, uint8(len(s)), idxs)
	require.EqualValues(t, 5, n)
	for i := range idxs[:n] {
		require.EqualValues(t, i+1, idxs[i])
	}
}
