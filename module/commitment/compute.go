package commitment

import (
	"fmt"

	"github.com/NethermindEth/juno/core/felt"
	"golang.org/x/sync/errgroup"

	"github.com/onflow/starkhash/model/starknet"
)

// Compute returns the four commitments of body under the scheme. The
// categories are independent and committed to concurrently. When several
// categories fail, the error of the first one in starknet.Categories order
// is returned, so the outcome does not depend on scheduling.
//
// Expected errors:
//   - starknet.LeafCountMismatchError if a body collection differs from its declared count
//   - starknet.InvalidBodyError if leaves cannot be derived from the body
func Compute(scheme *Scheme, body *starknet.Body, declared starknet.Counts) (starknet.Commitments, error) {
	roots := make([]*felt.Felt, len(starknet.Categories))
	errs := make([]error, len(starknet.Categories))

	var g errgroup.Group
	for i, category := range starknet.Categories {
		g.Go(func() error {
			roots[i], errs[i] = commitCategory(scheme, body, category, declared.Of(category))
			return errs[i]
		})
	}
	// the error returned by Wait depends on scheduling, report the first
	// category in order instead
	if err := g.Wait(); err != nil {
		for i, err := range errs {
			if err != nil {
				return starknet.Commitments{}, fmt.Errorf("could not commit to %s: %w", starknet.Categories[i], err)
			}
		}
	}

	return starknet.Commitments{
		Transactions: *roots[0],
		Events:       *roots[1],
		Receipts:     *roots[2],
		StateDiff:    *roots[3],
	}, nil
}

func commitCategory(scheme *Scheme, body *starknet.Body, category starknet.Category, declared uint64) (*felt.Felt, error) {
	if category == starknet.CategoryStateDiff && scheme.StructuredStateDiff != nil {
		if err := checkCount(category, uint64(len(body.StateDiff)), declared); err != nil {
			return nil, err
		}
		return scheme.StructuredStateDiff.CommitStateDiff(body.StateDiff)
	}

	strategy := scheme.Strategy(category)
	if strategy == nil {
		// not committed to, but the declared count must still hold
		if err := checkCount(category, body.Counts().Of(category), declared); err != nil {
			return nil, err
		}
		return new(felt.Felt), nil
	}

	leaves, err := EncodeLeaves(scheme.Leaves, body, category)
	if err != nil {
		return nil, err
	}
	return Build(category, leaves, declared, strategy)
}
