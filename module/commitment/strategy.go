package commitment

import (
	"github.com/NethermindEth/juno/core/felt"

	"github.com/onflow/starkhash/model/starknet"
)

// Strategy combines an ordered sequence of leaves into a single root.
// Strategies are pure: the root depends only on the leaves, their order and
// the strategy parameters.
type Strategy interface {
	// Name describes the strategy and its parameters.
	Name() string

	// Commit returns the root over leaves. The leaves are not modified.
	Commit(leaves []*felt.Felt) (*felt.Felt, error)
}

// Build commits to the leaves of one category after checking their number
// against the declared count. A nil strategy marks a category that is not
// committed to, its root is zero.
//
// Expected errors:
//   - starknet.LeafCountMismatchError if len(leaves) != declared
func Build(category starknet.Category, leaves []*felt.Felt, declared uint64, strategy Strategy) (*felt.Felt, error) {
	if err := checkCount(category, uint64(len(leaves)), declared); err != nil {
		return nil, err
	}
	if strategy == nil {
		return new(felt.Felt), nil
	}
	return strategy.Commit(leaves)
}

func checkCount(category starknet.Category, actual, declared uint64) error {
	if actual != declared {
		return starknet.LeafCountMismatchError{
			Category: category,
			Declared: declared,
			Actual:   actual,
		}
	}
	return nil
}
