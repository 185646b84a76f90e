package hash

import (
	"github.com/NethermindEth/juno/core/felt"
)

// Additive is a non-cryptographic hasher with H(a, b) = a + b mod p. It keeps
// commitment and chain logic hand-verifiable in tests and must never be used
// for real blocks.
//
// HashArray mirrors the shape of the Pedersen array hash: the elements are
// folded starting from zero and the element count is folded in last.
type Additive struct{}

var _ Hasher = Additive{}

func (Additive) Name() string { return NameAdditive }

func (Additive) Hash(a, b *felt.Felt) *felt.Felt {
	return new(felt.Felt).Add(a, b)
}

func (a Additive) HashArray(elems ...*felt.Felt) *felt.Felt {
	acc := new(felt.Felt)
	for _, e := range elems {
		acc = a.Hash(acc, e)
	}
	return a.Hash(acc, new(felt.Felt).SetUint64(uint64(len(elems))))
}
