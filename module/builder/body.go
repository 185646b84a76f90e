package builder

import (
	"github.com/NethermindEth/juno/core/felt"

	"github.com/onflow/starkhash/model/starknet"
)

// CheckBody verifies the structural rules of a block body:
//   - receipts pair one to one with transactions, by position and hash
//   - transaction hashes are unique
//   - events reference existing transactions and are strictly ordered by
//     transaction index, then by order within the transaction
//   - state diff entries are strictly ordered by kind, address and key
//
// All failures are starknet.InvalidBodyError.
func CheckBody(body *starknet.Body) error {
	if len(body.Receipts) != len(body.Transactions) {
		return starknet.NewInvalidBodyErrorf("%d receipts for %d transactions", len(body.Receipts), len(body.Transactions))
	}

	seen := make(map[felt.Felt]int, len(body.Transactions))
	for i := range body.Transactions {
		hash := body.Transactions[i].Hash
		if first, ok := seen[hash]; ok {
			return starknet.NewInvalidBodyErrorf("transactions %d and %d share hash %s", first, i, hash.String())
		}
		seen[hash] = i

		receipt := &body.Receipts[i]
		if !receipt.TransactionHash.Equal(&hash) {
			return starknet.NewInvalidBodyErrorf("receipt %d is for transaction %s, expected %s",
				i, receipt.TransactionHash.String(), hash.String())
		}
	}

	for i := range body.Events {
		ev := &body.Events[i]
		if ev.TransactionIndex >= uint64(len(body.Transactions)) {
			return starknet.NewInvalidBodyErrorf("event %d references transaction %d, block has %d transactions",
				i, ev.TransactionIndex, len(body.Transactions))
		}
		if i == 0 {
			continue
		}
		prev := &body.Events[i-1]
		if ev.TransactionIndex < prev.TransactionIndex ||
			(ev.TransactionIndex == prev.TransactionIndex && ev.Order <= prev.Order) {
			return starknet.NewInvalidBodyErrorf("event %d (tx %d, order %d) does not follow event %d (tx %d, order %d)",
				i, ev.TransactionIndex, ev.Order, i-1, prev.TransactionIndex, prev.Order)
		}
	}

	for i := 1; i < len(body.StateDiff); i++ {
		if body.StateDiff[i-1].Compare(&body.StateDiff[i]) >= 0 {
			return starknet.NewInvalidBodyErrorf("state diff entry %d (%s) is not ordered after entry %d (%s)",
				i, body.StateDiff[i].Kind, i-1, body.StateDiff[i-1].Kind)
		}
	}

	return nil
}
