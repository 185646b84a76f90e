package commitment

import (
	"fmt"

	"github.com/NethermindEth/juno/core/felt"

	"github.com/onflow/starkhash/model/starknet"
	"github.com/onflow/starkhash/module"
)

// EncodeLeaves returns the ordered leaves of one category of the body.
//
// Expected errors:
//   - starknet.InvalidBodyError if an event references a transaction index
//     outside the body
func EncodeLeaves(encoder module.LeafEncoder, body *starknet.Body, category starknet.Category) ([]*felt.Felt, error) {
	switch category {
	case starknet.CategoryTransactions:
		leaves := make([]*felt.Felt, len(body.Transactions))
		for i := range body.Transactions {
			leaves[i] = encoder.TransactionLeaf(&body.Transactions[i])
		}
		return leaves, nil

	case starknet.CategoryEvents:
		leaves := make([]*felt.Felt, len(body.Events))
		for i := range body.Events {
			ev := &body.Events[i]
			if ev.TransactionIndex >= uint64(len(body.Transactions)) {
				return nil, starknet.NewInvalidBodyErrorf("event %d references transaction %d, block has %d transactions",
					i, ev.TransactionIndex, len(body.Transactions))
			}
			leaves[i] = encoder.EventLeaf(ev, &body.Transactions[ev.TransactionIndex].Hash)
		}
		return leaves, nil

	case starknet.CategoryReceipts:
		leaves := make([]*felt.Felt, len(body.Receipts))
		for i := range body.Receipts {
			leaves[i] = encoder.ReceiptLeaf(&body.Receipts[i])
		}
		return leaves, nil

	case starknet.CategoryStateDiff:
		leaves := make([]*felt.Felt, len(body.StateDiff))
		for i := range body.StateDiff {
			leaves[i] = encoder.StateDiffLeaf(&body.StateDiff[i])
		}
		return leaves, nil
	}
	return nil, starknet.NewInvalidBodyErrorf("unknown category %d", category)
}

// LeafSet holds the ordered leaves of every category of one block body.
type LeafSet struct {
	Transactions []*felt.Felt
	Events       []*felt.Felt
	Receipts     []*felt.Felt
	StateDiff    []*felt.Felt
}

// Of returns the leaves of category c.
func (s *LeafSet) Of(c starknet.Category) []*felt.Felt {
	switch c {
	case starknet.CategoryTransactions:
		return s.Transactions
	case starknet.CategoryEvents:
		return s.Events
	case starknet.CategoryReceipts:
		return s.Receipts
	case starknet.CategoryStateDiff:
		return s.StateDiff
	}
	return nil
}

// Leaves encodes all four categories of body with the scheme's leaf encoder.
func Leaves(scheme *Scheme, body *starknet.Body) (*LeafSet, error) {
	var set LeafSet
	targets := []*[]*felt.Felt{&set.Transactions, &set.Events, &set.Receipts, &set.StateDiff}
	for i, category := range starknet.Categories {
		leaves, err := EncodeLeaves(scheme.Leaves, body, category)
		if err != nil {
			return nil, fmt.Errorf("could not encode %s leaves: %w", category, err)
		}
		*targets[i] = leaves
	}
	return &set, nil
}
