package hash

import (
	"github.com/NethermindEth/juno/core/crypto"
	"github.com/NethermindEth/juno/core/felt"
)

// Hasher is a two-to-one hash over field elements, together with its
// array form. Implementations must be pure: the output depends only on the
// inputs, so a Hasher can be shared freely between goroutines.
type Hasher interface {
	// Name identifies the primitive, e.g. in formula tables and metrics.
	Name() string

	// Hash combines two field elements into one.
	Hash(a, b *felt.Felt) *felt.Felt

	// HashArray hashes an ordered sequence of field elements.
	HashArray(elems ...*felt.Felt) *felt.Felt
}

const (
	NamePedersen = "pedersen"
	NamePoseidon = "poseidon"
	NameAdditive = "additive"
)

// Pedersen is the Starknet Pedersen hash. HashArray computes
// h(h(...h(h(0, a0), a1)...), n), as defined by the protocol.
type Pedersen struct{}

var _ Hasher = Pedersen{}

func (Pedersen) Name() string { return NamePedersen }

func (Pedersen) Hash(a, b *felt.Felt) *felt.Felt {
	return crypto.Pedersen(a, b)
}

func (Pedersen) HashArray(elems ...*felt.Felt) *felt.Felt {
	return crypto.PedersenArray(elems...)
}

// Poseidon is the Starknet Poseidon (Hades) hash. HashArray is the sponge
// construction used by the protocol for all post 0.13.2 commitments.
type Poseidon struct{}

var _ Hasher = Poseidon{}

func (Poseidon) Name() string { return NamePoseidon }

func (Poseidon) Hash(a, b *felt.Felt) *felt.Felt {
	return crypto.Poseidon(a, b)
}

func (Poseidon) HashArray(elems ...*felt.Felt) *felt.Felt {
	return crypto.PoseidonArray(elems...)
}
