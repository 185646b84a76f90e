package commitment

import (
	"fmt"

	"github.com/NethermindEth/juno/core/felt"

	"github.com/onflow/starkhash/model/hash"
)

// Chain folds the leaves into a running hash that starts from the leaf count:
//
//	root = h(...h(h(n, l0), l1)..., l(n-1))
//
// The empty sequence commits to zero.
type Chain struct {
	Hasher hash.Hasher
}

var _ Strategy = Chain{}

func (c Chain) Name() string {
	return fmt.Sprintf("chain-%s", c.Hasher.Name())
}

func (c Chain) Commit(leaves []*felt.Felt) (*felt.Felt, error) {
	acc := new(felt.Felt).SetUint64(uint64(len(leaves)))
	for _, l := range leaves {
		acc = c.Hasher.Hash(acc, l)
	}
	return acc, nil
}
