package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackUTF16RoundTripsLength(t *testing.T) {
	buf := make([]byte, 64)
	n := packUTF16(buf, "en-US")
	require.EqualValues(t, 5, n)
}

func TestQueryLocaleRunSucceedsAgainstBuiltinTable(t *testing.T) {
	prev := queryLocaleQueryFlag
	defer func() { queryLocaleQueryFlag = prev }()

	queryLocaleQueryFlag = "en-US"
	require.NoError(t, queryLocaleRun())
}
