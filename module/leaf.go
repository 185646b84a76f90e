package module

import (
	"github.com/NethermindEth/juno/core/felt"

	"github.com/onflow/starkhash/model/starknet"
)

// LeafEncoder turns body items into the leaf hashes a block commits to. The
// encoding is protocol data: each commitment scheme carries the encoder that
// matches its protocol versions.
//
// Implementations must be pure and safe for concurrent use.
type LeafEncoder interface {
	// Name identifies the encoding.
	Name() string

	// TransactionLeaf returns the leaf of a transaction.
	TransactionLeaf(tx *starknet.Transaction) *felt.Felt

	// ReceiptLeaf returns the leaf of a receipt.
	ReceiptLeaf(receipt *starknet.Receipt) *felt.Felt

	// EventLeaf returns the leaf of an event. txHash is the hash of the
	// transaction that emitted the event.
	EventLeaf(event *starknet.Event, txHash *felt.Felt) *felt.Felt

	// StateDiffLeaf returns the leaf of a single state diff entry.
	StateDiffLeaf(entry *starknet.StateDiffEntry) *felt.Felt
}
