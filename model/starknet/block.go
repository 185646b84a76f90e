package starknet

import (
	"slices"

	"github.com/NethermindEth/juno/core/felt"
)

// Block is a sealed block: a header, the body it commits to, and the block
// hash. A Block has no mutating methods; all accessors return copies, so a
// sealed block can be shared between goroutines without coordination.
//
// Block values must be created with NewBlock. Whether the hash actually
// matches header and body is not checked at construction; see the
// validation package for that.
type Block struct {
	header Header
	hash   felt.Felt
	body   Body
	sealed bool
}

// NewBlock seals header and body under the given block hash. All inputs are
// copied, later changes to them do not affect the returned block.
func NewBlock(header Header, hash felt.Felt, body Body) *Block {
	b := &Block{}
	b.seal(header, hash, body.Copy())
	return b
}

// seal panics when invoked on an already sealed block. A block has exactly
// one identity over its lifetime.
func (b *Block) seal(header Header, hash felt.Felt, body Body) {
	if b.sealed {
		panic("starknet: block is already sealed")
	}
	b.header = header
	b.hash = hash
	b.body = body
	b.sealed = true
}

// Hash returns the block hash.
func (b *Block) Hash() felt.Felt {
	return b.hash
}

// Number returns the block number.
func (b *Block) Number() uint64 {
	return b.header.Number
}

// ParentHash returns the hash of the parent block.
func (b *Block) ParentHash() felt.Felt {
	return b.header.ParentHash
}

// ProtocolVersion returns the protocol version the block was produced under.
func (b *Block) ProtocolVersion() ProtocolVersion {
	return b.header.ProtocolVersion
}

// Header returns a copy of the block header.
func (b *Block) Header() Header {
	return b.header
}

// Body returns a deep copy of the block body.
func (b *Block) Body() Body {
	return b.body.Copy()
}

// Transactions returns a copy of the ordered transactions.
func (b *Block) Transactions() []Transaction {
	return copyTransactions(b.body.Transactions)
}

// Receipts returns a copy of the receipts, ordered like the transactions.
func (b *Block) Receipts() []Receipt {
	return copyReceipts(b.body.Receipts)
}

// Events returns a copy of the events in emission order.
func (b *Block) Events() []Event {
	return copyEvents(b.body.Events)
}

// StateDiff returns a copy of the state diff entries.
func (b *Block) StateDiff() []StateDiffEntry {
	return slices.Clone(b.body.StateDiff)
}
