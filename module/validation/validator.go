package validation

import (
	"errors"
	"math"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/onflow/starkhash/model/starknet"
	"github.com/onflow/starkhash/module"
	"github.com/onflow/starkhash/module/commitment"
	"github.com/onflow/starkhash/utils/logging"
)

// Validator verifies sealed blocks: their numbering and parent links, the
// protocol version progression, all four commitments and the block hash.
// Blocks are checked concurrently, the reported failures do not depend on
// scheduling.
type Validator struct {
	log     zerolog.Logger
	metrics module.CommitmentMetrics
	cfg     Config
}

var _ module.ChainValidator = (*Validator)(nil)

func New(log zerolog.Logger, metrics module.CommitmentMetrics, options ...func(*Config)) *Validator {
	cfg := DefaultConfig()
	for _, option := range options {
		option(&cfg)
	}

	v := &Validator{
		log:     log.With().Str("component", "chain_validator").Logger(),
		metrics: metrics,
		cfg:     cfg,
	}
	return v
}

// Validate checks the blocks in order. blocks[0] is checked against the
// genesis parent hash when its number is zero; otherwise its predecessor is
// unknown and only its own content is checked. Every other block is checked
// against the block before it. A nil entry fails the presence check, the
// block after it is checked like one without a known predecessor.
//
// Returns nil or the *ValidationError of the lowest failing index.
func (v *Validator) Validate(blocks []*starknet.Block) error {
	return first(v.run(nil, blocks, false))
}

// ValidateSegment is like Validate, with blocks[0] checked against the
// trusted anchor block. A nil anchor behaves like Validate.
func (v *Validator) ValidateSegment(anchor *starknet.Block, blocks []*starknet.Block) error {
	return first(v.run(anchor, blocks, false))
}

// ValidateAll checks every block like Validate and reports all failing
// blocks, ordered by index, as a *multierror.Error of *ValidationError.
func (v *Validator) ValidateAll(blocks []*starknet.Block) error {
	var result *multierror.Error
	for _, err := range v.run(nil, blocks, true) {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// run checks the blocks with at most cfg.workers at once and returns the
// failure of each index. Unless all is set, blocks above the lowest known
// failure are skipped.
func (v *Validator) run(anchor *starknet.Block, blocks []*starknet.Block, all bool) []error {
	errs := make([]error, len(blocks))

	var lowest atomic.Int64
	lowest.Store(math.MaxInt64)
	skip := func(i int) bool {
		return !all && int64(i) > lowest.Load()
	}

	var g errgroup.Group
	g.SetLimit(v.cfg.workers)
	for i := range blocks {
		if skip(i) {
			break
		}
		g.Go(func() error {
			if skip(i) {
				return nil
			}
			prev := anchor
			if i > 0 {
				prev = blocks[i-1]
			}

			verr := v.check(prev, blocks[i])
			if verr == nil {
				v.metrics.BlockValidated()
				return nil
			}

			verr.Index = i
			errs[i] = verr
			v.metrics.ValidationFailed(verr.Check.String())
			log := v.log.With().Int("index", i).Logger()
			if blocks[i] != nil {
				log = logging.Block(log.With(), blocks[i]).Logger()
			}
			log.Debug().
				Str("check", verr.Check.String()).
				Err(verr.Err).
				Msg("block failed validation")

			for {
				current := lowest.Load()
				if int64(i) >= current || lowest.CompareAndSwap(current, int64(i)) {
					break
				}
			}
			return verr
		})
	}
	// errgroup reports the failure that happened first, errs holds the
	// failure of every index
	if err := g.Wait(); err == nil {
		return nil
	}

	return errs
}

// check runs all checks of block in order and returns the first failure.
// prev is nil when the predecessor is unknown.
func (v *Validator) check(prev, block *starknet.Block) *ValidationError {
	if block == nil {
		return &ValidationError{Check: CheckPresence, Err: ErrMissingBlock}
	}

	header := block.Header()
	fail := func(check Check, field string, err error) *ValidationError {
		return &ValidationError{
			Number: header.Number,
			Check:  check,
			Field:  field,
			Err:    err,
		}
	}

	switch {
	case prev != nil:
		if header.Number != prev.Number()+1 {
			return fail(CheckNumber, "number", starknet.BlockNumberDiscontinuityError{
				Expected: prev.Number() + 1,
				Actual:   header.Number,
			})
		}
		expected := prev.Hash()
		if !header.ParentHash.Equal(&expected) {
			return fail(CheckParentLink, "parent_hash", starknet.ChainLinkMismatchError{
				Number:   header.Number,
				Expected: expected,
				Actual:   header.ParentHash,
			})
		}
		if header.ProtocolVersion.LessThan(prev.ProtocolVersion()) {
			return fail(CheckProtocolVersion, "protocol_version", starknet.ProtocolVersionRegressionError{
				Parent: prev.ProtocolVersion(),
				Child:  header.ProtocolVersion,
			})
		}

	case header.Number == 0:
		if !header.ParentHash.Equal(&starknet.GenesisParentHash) {
			return fail(CheckParentLink, "parent_hash", starknet.ChainLinkMismatchError{
				Number:   0,
				Expected: starknet.GenesisParentHash,
				Actual:   header.ParentHash,
			})
		}
	}

	scheme, err := v.cfg.schemes.Lookup(header.ProtocolVersion)
	if err != nil {
		return fail(CheckProtocolVersion, "protocol_version", err)
	}
	formula, err := v.cfg.formulas.Lookup(header.ProtocolVersion)
	if err != nil {
		return fail(CheckProtocolVersion, "protocol_version", err)
	}

	body := block.Body()
	recomputed, err := commitment.Compute(scheme, &body, header.Counts())
	if err != nil {
		return fail(CheckCommitment, fieldOf(err), err)
	}
	stored := header.Commitments()
	for _, category := range starknet.Categories {
		s, r := stored.Of(category), recomputed.Of(category)
		if !s.Equal(&r) {
			return fail(CheckCommitment, category.CommitmentField(), starknet.CommitmentMismatchError{
				Category:   category,
				Stored:     s,
				Recomputed: r,
			})
		}
	}

	hash := block.Hash()
	expected := formula.Hash(&header, v.cfg.params)
	if !hash.Equal(expected) {
		return fail(CheckBlockHash, "block_hash", starknet.BlockHashMismatchError{
			Number:     header.Number,
			Stored:     hash,
			Recomputed: *expected,
		})
	}

	return nil
}

// fieldOf names the header field a commitment computation failure concerns.
func fieldOf(err error) string {
	var mismatch starknet.LeafCountMismatchError
	if errors.As(err, &mismatch) {
		return mismatch.Category.CommitmentField()
	}
	return ""
}

// first returns the failure of the lowest index.
func first(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
