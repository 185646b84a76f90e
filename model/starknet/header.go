package starknet

import (
	"github.com/NethermindEth/juno/core/felt"
)

// GenesisParentHash is the parent hash of block zero.
var GenesisParentHash = felt.Zero

// L1DAMode is the way block data is published on the settlement layer.
type L1DAMode uint8

const (
	Calldata L1DAMode = iota
	Blob
)

func (m L1DAMode) String() string {
	switch m {
	case Calldata:
		return "CALLDATA"
	case Blob:
		return "BLOB"
	}
	return "UNKNOWN"
}

// GasPrice is a fee scalar quoted in both fee tokens.
type GasPrice struct {
	PriceInWei felt.Felt
	PriceInFri felt.Felt
}

// Commitments holds the four commitment roots of a block.
type Commitments struct {
	Transactions felt.Felt
	Events       felt.Felt
	Receipts     felt.Felt
	StateDiff    felt.Felt
}

// Of returns the commitment of category c.
func (c Commitments) Of(category Category) felt.Felt {
	switch category {
	case CategoryTransactions:
		return c.Transactions
	case CategoryEvents:
		return c.Events
	case CategoryReceipts:
		return c.Receipts
	case CategoryStateDiff:
		return c.StateDiff
	}
	return felt.Zero
}

// Header contains all scalar fields and commitments of a block. Every field
// is held by value, so a copied Header never aliases another one.
type Header struct {
	Number           uint64
	ParentHash       felt.Felt
	GlobalStateRoot  felt.Felt
	SequencerAddress felt.Felt
	// Timestamp in seconds since the unix epoch.
	Timestamp       uint64
	ProtocolVersion ProtocolVersion
	L1GasPrice      GasPrice
	L1DataGasPrice  GasPrice
	L2GasPrice      GasPrice
	L1DAMode        L1DAMode

	TransactionCount uint64
	EventCount       uint64
	StateDiffLength  uint64

	TransactionCommitment felt.Felt
	EventCommitment       felt.Felt
	ReceiptCommitment     felt.Felt
	StateDiffCommitment   felt.Felt
}

// Commitments returns the commitment roots stored in the header.
func (h *Header) Commitments() Commitments {
	return Commitments{
		Transactions: h.TransactionCommitment,
		Events:       h.EventCommitment,
		Receipts:     h.ReceiptCommitment,
		StateDiff:    h.StateDiffCommitment,
	}
}

// SetCommitments stores the given commitment roots in the header.
func (h *Header) SetCommitments(c Commitments) {
	h.TransactionCommitment = c.Transactions
	h.EventCommitment = c.Events
	h.ReceiptCommitment = c.Receipts
	h.StateDiffCommitment = c.StateDiff
}

// Counts returns the declared leaf count of every category. Receipts pair with
// transactions and share their count.
func (h *Header) Counts() Counts {
	return Counts{
		Transactions: h.TransactionCount,
		Events:       h.EventCount,
		Receipts:     h.TransactionCount,
		StateDiff:    h.StateDiffLength,
	}
}

// Counts holds the number of leaves of each category.
type Counts struct {
	Transactions uint64
	Events       uint64
	Receipts     uint64
	StateDiff    uint64
}

// Of returns the count of category c.
func (c Counts) Of(category Category) uint64 {
	switch category {
	case CategoryTransactions:
		return c.Transactions
	case CategoryEvents:
		return c.Events
	case CategoryReceipts:
		return c.Receipts
	case CategoryStateDiff:
		return c.StateDiff
	}
	return 0
}
