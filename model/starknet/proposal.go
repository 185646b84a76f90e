package starknet

import (
	"github.com/NethermindEth/juno/core/felt"
)

// Proposal carries everything needed to build a block on top of a parent:
// the scalar header fields and the body collections. Number, parent hash,
// counts and commitments are derived by the builder.
type Proposal struct {
	GlobalStateRoot  felt.Felt
	SequencerAddress felt.Felt
	Timestamp        uint64
	ProtocolVersion  ProtocolVersion
	L1GasPrice       GasPrice
	L1DataGasPrice   GasPrice
	L2GasPrice       GasPrice
	L1DAMode         L1DAMode

	Body Body

	// Declared, if set, holds counts announced alongside the body, e.g. by a
	// peer. They must match the body exactly.
	Declared *Counts
}
