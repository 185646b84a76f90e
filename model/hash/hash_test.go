package hash_test

import (
	"testing"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/starkhash/model/hash"
)

func feltFromUint(v uint64) *felt.Felt {
	return new(felt.Felt).SetUint64(v)
}

func TestAdditiveHash(t *testing.T) {
	h := hash.Additive{}
	assert.Equal(t, feltFromUint(5), h.Hash(feltFromUint(2), feltFromUint(3)))

	// 1 + 2 + 3 + len(3)
	assert.Equal(t, feltFromUint(9), h.HashArray(feltFromUint(1), feltFromUint(2), feltFromUint(3)))
	assert.Equal(t, feltFromUint(0), h.HashArray())
}

// TestAdditiveHashWrapsModulus checks the hash reduces modulo the Stark prime.
func TestAdditiveHashWrapsModulus(t *testing.T) {
	// p - 1
	minusOne, err := new(felt.Felt).SetString("0x800000000000011000000000000000000000000000000000000000000000000")
	require.NoError(t, err)

	assert.True(t, hash.Additive{}.Hash(minusOne, feltFromUint(1)).IsZero())
}

func TestHasherNames(t *testing.T) {
	assert.Equal(t, hash.NamePedersen, hash.Pedersen{}.Name())
	assert.Equal(t, hash.NamePoseidon, hash.Poseidon{}.Name())
	assert.Equal(t, hash.NameAdditive, hash.Additive{}.Name())
}

// TestPrimitivesAreDeterministic checks repeated calls to the real primitives
// are stable and distinguish argument order.
func TestPrimitivesAreDeterministic(t *testing.T) {
	for _, h := range []hash.Hasher{hash.Pedersen{}, hash.Poseidon{}} {
		t.Run(h.Name(), func(t *testing.T) {
			a, b := feltFromUint(1), feltFromUint(2)
			first := h.Hash(a, b)
			assert.Equal(t, first, h.Hash(a, b))
			assert.NotEqual(t, first, h.Hash(b, a))

			arr := h.HashArray(a, b)
			assert.Equal(t, arr, h.HashArray(a, b))
			assert.NotEqual(t, arr, h.HashArray(b, a))
		})
	}
}
