package blockhash

import (
	"github.com/NethermindEth/juno/core/felt"

	"github.com/onflow/starkhash/model/starknet"
)

// Computer derives block hashes from headers. It holds no mutable state and
// is safe for concurrent use.
type Computer struct {
	table  *Table
	params Params
}

func NewComputer(table *Table, params Params) *Computer {
	return &Computer{
		table:  table,
		params: params,
	}
}

// Compute returns the hash of the block with the given header. The header
// commitments and counts are taken as they are.
//
// Expected errors:
//   - starknet.UnsupportedProtocolVersionError if no formula covers the header version
func (c *Computer) Compute(header *starknet.Header) (*felt.Felt, error) {
	formula, err := c.table.Lookup(header.ProtocolVersion)
	if err != nil {
		return nil, err
	}
	return formula.Hash(header, c.params), nil
}

// Lookup returns the formula applied to blocks of version v.
func (c *Computer) Lookup(v starknet.ProtocolVersion) (*Formula, error) {
	return c.table.Lookup(v)
}
