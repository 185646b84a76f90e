package unittest

import (
	"testing"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/stretchr/testify/require"

	"github.com/onflow/starkhash/model/starknet"
)

func FeltEqual(t testing.TB, expected, actual felt.Felt) {
	t.Helper()
	require.True(t, expected.Equal(&actual), "expected %s, got %s", expected.String(), actual.String())
}

// BlocksEqual requires two blocks to carry the same hash, header and body.
func BlocksEqual(t testing.TB, expected, actual *starknet.Block) {
	t.Helper()
	FeltEqual(t, expected.Hash(), actual.Hash())
	require.Equal(t, expected.Header(), actual.Header())
	require.Equal(t, expected.Body(), actual.Body())
}
