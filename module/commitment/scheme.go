package commitment

import (
	"fmt"

	"github.com/onflow/starkhash/model/starknet"
	"github.com/onflow/starkhash/module"
)

// Scheme describes how blocks of a range of protocol versions commit to
// their body: the leaf encoding and one strategy per category. A nil strategy
// means the category is not committed to and its commitment is zero.
type Scheme struct {
	Name     string
	Versions starknet.VersionRange
	Leaves   module.LeafEncoder

	Transactions Strategy
	Events       Strategy
	Receipts     Strategy
	StateDiff    Strategy

	// StructuredStateDiff, if set, commits to the state diff in place of the
	// leaf based StateDiff strategy.
	StructuredStateDiff StateDiffStrategy
}

// Strategy returns the strategy of category c.
func (s *Scheme) Strategy(c starknet.Category) Strategy {
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

// Table is a closed, versioned set of commitment schemes. Supporting a new
// protocol version means appending a scheme, not altering existing ones.
type Table struct {
	schemes []Scheme
}

// NewTable checks that the scheme version ranges are ordered and disjoint.
func NewTable(schemes ...Scheme) (*Table, error) {
	ranges := make([]starknet.VersionRange, len(schemes))
	for i, s := range schemes {
		if s.Leaves == nil {
			return nil, fmt.Errorf("scheme %q has no leaf encoder", s.Name)
		}
		if s.StateDiff != nil && s.StructuredStateDiff != nil {
			return nil, fmt.Errorf("scheme %q has two state diff strategies", s.Name)
		}
		ranges[i] = s.Versions
	}
	if err := starknet.CheckVersionRanges(ranges); err != nil {
		return nil, fmt.Errorf("invalid commitment table: %w", err)
	}
	return &Table{schemes: append([]Scheme(nil), schemes...)}, nil
}

// Lookup returns the scheme covering version v.
//
// Expected errors:
//   - starknet.UnsupportedProtocolVersionError if no scheme covers v
func (t *Table) Lookup(v starknet.ProtocolVersion) (*Scheme, error) {
	for i := range t.schemes {
		if t.schemes[i].Versions.Contains(v) {
			return &t.schemes[i], nil
		}
	}
	return nil, starknet.UnsupportedProtocolVersionError{Version: v, Table: "commitment"}
}

// Schemes returns the registered schemes in version order.
func (t *Table) Schemes() []Scheme {
	return append([]Scheme(nil), t.schemes...)
}
