package commitment

import (
	"github.com/onflow/starkhash/model/hash"
	"github.com/onflow/starkhash/model/starknet"
	"github.com/onflow/starkhash/module/leaf"
)

// TrieHeight is the height of the Starknet transaction, event and receipt
// tries.
const TrieHeight = 64

// VersionPoseidon is the first protocol version committing with Poseidon.
const VersionPoseidon = "0.13.2"

// VersionUnsupported is the first version the Starknet table does not cover.
const VersionUnsupported = "0.15.0"

// StarknetTable returns the commitment schemes of Starknet history.
func StarknetTable() *Table {
	return NewStarknetTable(hash.Pedersen{}, hash.Poseidon{})
}

// NewStarknetTable returns the Starknet schemes with the given hashers in
// place of Pedersen and Poseidon.
func NewStarknetTable(pedersen, poseidon hash.Hasher) *Table {
	table, err := NewTable(
		Scheme{
			Name:         "legacy",
			Versions:     starknet.VersionsFrom("", VersionPoseidon),
			Leaves:       leaf.NewLegacy(pedersen),
			Transactions: Patricia{Hasher: pedersen, Height: TrieHeight},
			Events:       Patricia{Hasher: pedersen, Height: TrieHeight},
		},
		Scheme{
			Name:         "poseidon",
			Versions:     starknet.VersionsFrom(VersionPoseidon, VersionUnsupported),
			Leaves:       leaf.NewPoseidon(poseidon),
			Transactions: Patricia{Hasher: poseidon, Height: TrieHeight},
			Events:       Patricia{Hasher: poseidon, Height: TrieHeight},
			Receipts:     Patricia{Hasher: poseidon, Height: TrieHeight},

			StructuredStateDiff: StructuredStateDiff{Hasher: poseidon},
		},
	)
	if err != nil {
		panic(err)
	}
	return table
}
