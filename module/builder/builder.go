package builder

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/onflow/starkhash/model/starknet"
	"github.com/onflow/starkhash/module"
	"github.com/onflow/starkhash/module/commitment"
	"github.com/onflow/starkhash/utils/logging"
)

// Builder seals blocks on top of a parent. It keeps no state between calls.
type Builder struct {
	log     zerolog.Logger
	metrics module.CommitmentMetrics
	cfg     Config
}

var _ module.Builder = (*Builder)(nil)

// New creates a new block builder. Without options it builds Starknet
// mainnet blocks.
func New(log zerolog.Logger, metrics module.CommitmentMetrics, options ...func(*Config)) *Builder {

	// initialize default config
	cfg := DefaultConfig()

	// apply option parameters
	for _, option := range options {
		option(&cfg)
	}

	b := &Builder{
		log:     log.With().Str("component", "builder").Logger(),
		metrics: metrics,
		cfg:     cfg,
	}
	return b
}

// Build derives number and parent hash from the parent, checks the proposal,
// computes the commitments and the block hash and returns the sealed block.
// A nil parent builds the genesis block. The proposal is not modified.
//
// Expected errors:
//   - starknet.ProtocolVersionRegressionError if the version precedes the parent's
//   - starknet.LeafCountMismatchError if declared counts differ from the body
//   - starknet.InvalidBodyError if the body breaks pairing or ordering rules
//   - starknet.UnsupportedProtocolVersionError if no scheme or formula covers the version
func (b *Builder) Build(parent *starknet.Block, proposal *starknet.Proposal) (*starknet.Block, error) {
	start := time.Now()

	header := starknet.Header{
		Number:           0,
		ParentHash:       starknet.GenesisParentHash,
		GlobalStateRoot:  proposal.GlobalStateRoot,
		SequencerAddress: proposal.SequencerAddress,
		Timestamp:        proposal.Timestamp,
		ProtocolVersion:  proposal.ProtocolVersion,
		L1GasPrice:       proposal.L1GasPrice,
		L1DataGasPrice:   proposal.L1DataGasPrice,
		L2GasPrice:       proposal.L2GasPrice,
		L1DAMode:         proposal.L1DAMode,
	}
	if parent != nil {
		parentVersion := parent.ProtocolVersion()
		if header.ProtocolVersion.LessThan(parentVersion) {
			return nil, starknet.ProtocolVersionRegressionError{
				Parent: parentVersion,
				Child:  header.ProtocolVersion,
			}
		}
		header.Number = parent.Number() + 1
		header.ParentHash = parent.Hash()
	}

	body := proposal.Body.Copy()
	counts := body.Counts()
	if proposal.Declared != nil {
		for _, category := range starknet.Categories {
			if declared := proposal.Declared.Of(category); declared != counts.Of(category) {
				return nil, starknet.LeafCountMismatchError{
					Category: category,
					Declared: declared,
					Actual:   counts.Of(category),
				}
			}
		}
	}

	err := CheckBody(&body)
	if err != nil {
		return nil, fmt.Errorf("could not build block %d: %w", header.Number, err)
	}

	scheme, err := b.cfg.schemes.Lookup(header.ProtocolVersion)
	if err != nil {
		return nil, fmt.Errorf("could not build block %d: %w", header.Number, err)
	}
	formula, err := b.cfg.formulas.Lookup(header.ProtocolVersion)
	if err != nil {
		return nil, fmt.Errorf("could not build block %d: %w", header.Number, err)
	}

	header.TransactionCount = counts.Transactions
	header.EventCount = counts.Events
	header.StateDiffLength = counts.StateDiff

	committed := time.Now()
	commitments, err := commitment.Compute(scheme, &body, header.Counts())
	if err != nil {
		return nil, fmt.Errorf("could not compute commitments of block %d: %w", header.Number, err)
	}
	b.metrics.CommitmentsComputed(scheme.Name, time.Since(committed))
	header.SetCommitments(commitments)

	hash := formula.Hash(&header, b.cfg.params)
	block := starknet.NewBlock(header, *hash, body)

	b.metrics.BlockSealed(formula.Name, counts.Transactions, time.Since(start))
	b.log.Debug().
		Uint64("number", header.Number).
		Str("hash", logging.Felt(hash)).
		Str("parent_hash", logging.Felt(&header.ParentHash)).
		Str("protocol_version", header.ProtocolVersion.String()).
		Str("scheme", scheme.Name).
		Str("formula", formula.Name).
		Uint64("transactions", counts.Transactions).
		Uint64("events", counts.Events).
		Msg("block sealed")

	return block, nil
}
