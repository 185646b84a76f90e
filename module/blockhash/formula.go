package blockhash

import (
	"fmt"

	"github.com/NethermindEth/juno/core/felt"

	"github.com/onflow/starkhash/model/hash"
	"github.com/onflow/starkhash/model/starknet"
)

// Params are the chain level inputs of block hashes.
type Params struct {
	// ChainID is only committed to by the oldest formula.
	ChainID felt.Felt
}

// ChainID returns the short string felt of a chain name such as "SN_MAIN".
func ChainID(name string) felt.Felt {
	var id felt.Felt
	id.SetBytes([]byte(name))
	return id
}

// Formula describes the block hash of a range of protocol versions: an
// ordered field tuple hashed at once with the array form of Hasher.
type Formula struct {
	Name     string
	Versions starknet.VersionRange
	Hasher   hash.Hasher
	Fields   func(h *starknet.Header, p Params) []*felt.Felt
}

// Hash returns the array hash of the formula fields of h.
func (f *Formula) Hash(h *starknet.Header, p Params) *felt.Felt {
	return f.Hasher.HashArray(f.Fields(h, p)...)
}

// Table is a closed, versioned set of block hash formulas.
type Table struct {
	formulas []Formula
}

// NewTable checks that the formula version ranges are ordered and disjoint.
func NewTable(formulas ...Formula) (*Table, error) {
	ranges := make([]starknet.VersionRange, len(formulas))
	for i, f := range formulas {
		if f.Hasher == nil || f.Fields == nil {
			return nil, fmt.Errorf("formula %q is incomplete", f.Name)
		}
		ranges[i] = f.Versions
	}
	if err := starknet.CheckVersionRanges(ranges); err != nil {
		return nil, fmt.Errorf("invalid block hash table: %w", err)
	}
	return &Table{formulas: append([]Formula(nil), formulas...)}, nil
}

// Lookup returns the formula covering version v.
//
// Expected errors:
//   - starknet.UnsupportedProtocolVersionError if no formula covers v
func (t *Table) Lookup(v starknet.ProtocolVersion) (*Formula, error) {
	for i := range t.formulas {
		if t.formulas[i].Versions.Contains(v) {
			return &t.formulas[i], nil
		}
	}
	return nil, starknet.UnsupportedProtocolVersionError{Version: v, Table: "block hash"}
}

// Formulas returns the registered formulas in version order.
func (t *Table) Formulas() []Formula {
	return append([]Formula(nil), t.formulas...)
}
