package module

import (
	"github.com/onflow/starkhash/model/starknet"
)

// Builder assembles and seals blocks. Builders hold no mutable state between
// calls and can be shared by pipelines building different blocks at once.
type Builder interface {

	// Build validates the proposal against the parent, computes all
	// commitments and the block hash, and returns the sealed block. A nil
	// parent builds the genesis block.
	//
	// # Errors
	//   - starknet.LeafCountMismatchError if declared counts differ from the body
	//   - starknet.InvalidBodyError if body ordering or pairing is violated
	//   - starknet.ProtocolVersionRegressionError if the version precedes the parent's
	//   - starknet.UnsupportedProtocolVersionError if no scheme or formula covers the version
	// No block is returned on error.
	Build(parent *starknet.Block, proposal *starknet.Proposal) (*starknet.Block, error)
}

// ChainValidator verifies sealed blocks and the links between them.
type ChainValidator interface {

	// Validate checks the blocks in order and reports the first failing block.
	Validate(blocks []*starknet.Block) error

	// ValidateSegment is like Validate, with blocks[0] checked against the
	// trusted anchor block.
	ValidateSegment(anchor *starknet.Block, blocks []*starknet.Block) error
}
