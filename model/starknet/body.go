package starknet

import (
	"slices"

	"github.com/NethermindEth/juno/core/felt"
)

// Transaction is the part of a transaction a block commits to.
type Transaction struct {
	Hash felt.Felt
	// Signature is the committed signature. Blocks before 0.11.1 only commit
	// to the signatures of invoke transactions, others are committed empty.
	Signature []felt.Felt
}

// MessageToL1 is a message sent from L2 to the settlement layer.
type MessageToL1 struct {
	From    felt.Felt
	To      felt.Felt
	Payload []felt.Felt
}

// Receipt is the execution outcome of the transaction with the same hash.
type Receipt struct {
	TransactionHash felt.Felt
	ActualFee       felt.Felt
	Messages        []MessageToL1
	// RevertReason is empty for transactions that succeeded.
	RevertReason string
	L1Gas        uint64
	L1DataGas    uint64
	L2Gas        uint64
}

// Event is emitted by the transaction at TransactionIndex. Order is its
// position among the events of that transaction.
type Event struct {
	TransactionIndex uint64
	Order            uint64
	From             felt.Felt
	Keys             []felt.Felt
	Data             []felt.Felt
}

// StateDiffKind distinguishes the kinds of entries in a state diff.
type StateDiffKind uint8

const (
	StorageUpdate StateDiffKind = iota
	NonceUpdate
	DeployedContract
	ReplacedClass
	DeclaredClass
	DeprecatedDeclaredClass
)

func (k StateDiffKind) String() string {
	switch k {
	case StorageUpdate:
		return "storage_update"
	case NonceUpdate:
		return "nonce_update"
	case DeployedContract:
		return "deployed_contract"
	case ReplacedClass:
		return "replaced_class"
	case DeclaredClass:
		return "declared_class"
	case DeprecatedDeclaredClass:
		return "deprecated_declared_class"
	}
	return "unknown"
}

// StateDiffEntry is a single flattened state change. Key is only meaningful
// for storage updates; Value is the new storage value, nonce, class hash or
// compiled class hash depending on the kind. Declared and deprecated declared
// classes carry their class hash in Address.
type StateDiffEntry struct {
	Kind    StateDiffKind
	Address felt.Felt
	Key     felt.Felt
	Value   felt.Felt
}

// Compare orders entries by kind, then address, then key.
func (e *StateDiffEntry) Compare(other *StateDiffEntry) int {
	switch {
	case e.Kind < other.Kind:
		return -1
	case e.Kind > other.Kind:
		return 1
	}
	if c := e.Address.Cmp(&other.Address); c != 0 {
		return c
	}
	return e.Key.Cmp(&other.Key)
}

// Body holds the ordered collections a block commits to.
type Body struct {
	Transactions []Transaction
	Receipts     []Receipt
	Events       []Event
	StateDiff    []StateDiffEntry
}

// Counts returns the actual length of every collection.
func (b *Body) Counts() Counts {
	return Counts{
		Transactions: uint64(len(b.Transactions)),
		Events:       uint64(len(b.Events)),
		Receipts:     uint64(len(b.Receipts)),
		StateDiff:    uint64(len(b.StateDiff)),
	}
}

// Copy returns a deep copy of the body. Nil collections stay nil.
func (b *Body) Copy() Body {
	return Body{
		Transactions: copyTransactions(b.Transactions),
		Receipts:     copyReceipts(b.Receipts),
		Events:       copyEvents(b.Events),
		StateDiff:    slices.Clone(b.StateDiff),
	}
}

func copyTransactions(txs []Transaction) []Transaction {
	return cloneEach(txs, func(tx Transaction) Transaction {
		tx.Signature = slices.Clone(tx.Signature)
		return tx
	})
}

func copyReceipts(receipts []Receipt) []Receipt {
	return cloneEach(receipts, func(r Receipt) Receipt {
		r.Messages = cloneEach(r.Messages, func(m MessageToL1) MessageToL1 {
			m.Payload = slices.Clone(m.Payload)
			return m
		})
		return r
	})
}

func copyEvents(events []Event) []Event {
	return cloneEach(events, func(ev Event) Event {
		ev.Keys = slices.Clone(ev.Keys)
		ev.Data = slices.Clone(ev.Data)
		return ev
	})
}

func cloneEach[T any](items []T, clone func(T) T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = clone(item)
	}
	return out
}
