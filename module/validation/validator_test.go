package validation_test

import (
	"bytes"
	"testing"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/onflow/starkhash/model/starknet"
	"github.com/onflow/starkhash/module/builder"
	"github.com/onflow/starkhash/module/metrics"
	"github.com/onflow/starkhash/module/validation"
	"github.com/onflow/starkhash/utils/unittest"
)

type ValidatorSuite struct {
	suite.Suite
	blocks    []*starknet.Block
	validator *validation.Validator
}

func TestValidator(t *testing.T) {
	suite.Run(t, new(ValidatorSuite))
}

func (vs *ValidatorSuite) SetupTest() {
	b := builder.New(unittest.Logger(), metrics.NewNoopCollector())
	vs.blocks = unittest.ChainFixture(vs.T(), b, 5)
	vs.validator = validation.New(unittest.Logger(), metrics.NewNoopCollector(), validation.WithWorkers(4))
}

// tampered returns a copy of the chain with block i rebuilt by mutate.
func (vs *ValidatorSuite) tampered(i int, mutate func(*starknet.Header, *starknet.Body)) []*starknet.Block {
	blocks := append([]*starknet.Block(nil), vs.blocks...)
	blocks[i] = unittest.Rebuild(blocks[i], mutate)
	return blocks
}

// requireFailure checks err is the ValidationError of block i for check.
func (vs *ValidatorSuite) requireFailure(err error, i int, check validation.Check) *validation.ValidationError {
	vs.Require().Error(err)
	vs.Require().True(validation.IsValidationError(err), err.Error())
	var verr *validation.ValidationError
	vs.Require().ErrorAs(err, &verr)
	vs.Assert().Equal(i, verr.Index)
	vs.Assert().Equal(vs.blocks[i].Number(), verr.Number)
	vs.Assert().Equal(check, verr.Check, verr.Error())
	return verr
}

func flipLowByte(f felt.Felt) felt.Felt {
	raw := f.Bytes()
	raw[31] ^= 0x01
	var flipped felt.Felt
	flipped.SetBytes(raw[:])
	return flipped
}

func (vs *ValidatorSuite) TestValidChain() {
	vs.Assert().NoError(vs.validator.Validate(vs.blocks))
	vs.Assert().NoError(vs.validator.ValidateAll(vs.blocks))
	vs.Assert().NoError(vs.validator.Validate(nil))
}

func (vs *ValidatorSuite) TestParentLinkBroken() {
	blocks := vs.tampered(3, func(h *starknet.Header, _ *starknet.Body) {
		h.ParentHash = flipLowByte(h.ParentHash)
	})

	err := vs.validator.Validate(blocks)
	verr := vs.requireFailure(err, 3, validation.CheckParentLink)
	vs.Assert().Equal("parent_hash", verr.Field)
	vs.Assert().True(starknet.IsChainLinkMismatchError(err))
}

func (vs *ValidatorSuite) TestGenesisParent() {
	blocks := vs.tampered(0, func(h *starknet.Header, _ *starknet.Body) {
		h.ParentHash = unittest.Felt(1)
	})
	err := vs.validator.Validate(blocks)
	vs.requireFailure(err, 0, validation.CheckParentLink)
}

func (vs *ValidatorSuite) TestNumberDiscontinuity() {
	blocks := []*starknet.Block{vs.blocks[0], vs.blocks[2]}
	err := vs.validator.Validate(blocks)
	vs.Require().Error(err)
	var verr *validation.ValidationError
	vs.Require().ErrorAs(err, &verr)
	vs.Assert().Equal(1, verr.Index)
	vs.Assert().Equal(validation.CheckNumber, verr.Check)
	vs.Assert().True(starknet.IsBlockNumberDiscontinuityError(err))
}

func (vs *ValidatorSuite) TestVersionRegression() {
	blocks := vs.tampered(2, func(h *starknet.Header, _ *starknet.Body) {
		h.ProtocolVersion = starknet.MustParseProtocolVersion("0.13.2")
	})
	err := vs.validator.Validate(blocks)
	vs.requireFailure(err, 2, validation.CheckProtocolVersion)
	vs.Assert().True(starknet.IsProtocolVersionRegressionError(err))
}

func (vs *ValidatorSuite) TestUnsupportedVersion() {
	blocks := vs.tampered(4, func(h *starknet.Header, _ *starknet.Body) {
		h.ProtocolVersion = starknet.MustParseProtocolVersion("0.15.0")
	})
	err := vs.validator.Validate(blocks)
	vs.requireFailure(err, 4, validation.CheckProtocolVersion)
	vs.Assert().True(starknet.IsUnsupportedProtocolVersionError(err))
}

func (vs *ValidatorSuite) TestBodyTampered() {
	blocks := vs.tampered(2, func(_ *starknet.Header, b *starknet.Body) {
		b.Transactions[0].Signature[0] = unittest.Felt(7)
	})
	err := vs.validator.Validate(blocks)
	verr := vs.requireFailure(err, 2, validation.CheckCommitment)
	vs.Assert().Equal("transaction_commitment", verr.Field)

	var mismatch starknet.CommitmentMismatchError
	vs.Require().ErrorAs(err, &mismatch)
	vs.Assert().Equal(starknet.CategoryTransactions, mismatch.Category)
	stored := vs.blocks[2].Header().TransactionCommitment
	vs.Assert().True(stored.Equal(&mismatch.Stored))
}

func (vs *ValidatorSuite) TestStateDiffTampered() {
	blocks := vs.tampered(1, func(_ *starknet.Header, b *starknet.Body) {
		b.StateDiff[0].Value = flipLowByte(b.StateDiff[0].Value)
	})
	err := vs.validator.Validate(blocks)
	verr := vs.requireFailure(err, 1, validation.CheckCommitment)
	vs.Assert().Equal("state_diff_commitment", verr.Field)
}

func (vs *ValidatorSuite) TestCountTampered() {
	blocks := vs.tampered(1, func(h *starknet.Header, _ *starknet.Body) {
		h.EventCount++
	})
	err := vs.validator.Validate(blocks)
	verr := vs.requireFailure(err, 1, validation.CheckCommitment)
	vs.Assert().Equal("event_commitment", verr.Field)
	vs.Assert().True(starknet.IsLeafCountMismatchError(err))
}

func (vs *ValidatorSuite) TestHeaderFieldTampered() {
	blocks := vs.tampered(1, func(h *starknet.Header, _ *starknet.Body) {
		h.Timestamp++
	})
	err := vs.validator.Validate(blocks)
	vs.requireFailure(err, 1, validation.CheckBlockHash)
	vs.Assert().True(starknet.IsBlockHashMismatchError(err))
}

func (vs *ValidatorSuite) TestLowestIndexReported() {
	blocks := vs.tampered(3, func(h *starknet.Header, _ *starknet.Body) {
		h.Timestamp++
	})
	blocks[1] = unittest.Rebuild(blocks[1], func(h *starknet.Header, _ *starknet.Body) {
		h.GlobalStateRoot = flipLowByte(h.GlobalStateRoot)
	})

	for i := 0; i < 10; i++ {
		err := vs.validator.Validate(blocks)
		vs.requireFailure(err, 1, validation.CheckBlockHash)
	}

	err := vs.validator.ValidateAll(blocks)
	vs.Require().Error(err)
	var merr *multierror.Error
	vs.Require().ErrorAs(err, &merr)
	vs.Require().Len(merr.Errors, 2)
	for n, expected := range []int{1, 3} {
		var verr *validation.ValidationError
		vs.Require().ErrorAs(merr.Errors[n], &verr)
		vs.Assert().Equal(expected, verr.Index)
	}
}

func (vs *ValidatorSuite) TestUnanchoredSegment() {
	vs.Assert().NoError(vs.validator.Validate(vs.blocks[2:]))
	vs.Assert().NoError(vs.validator.ValidateSegment(vs.blocks[1], vs.blocks[2:]))

	err := vs.validator.ValidateSegment(vs.blocks[0], vs.blocks[2:])
	vs.Require().Error(err)
	var verr *validation.ValidationError
	vs.Require().ErrorAs(err, &verr)
	vs.Assert().Equal(0, verr.Index)
	vs.Assert().Equal(validation.CheckNumber, verr.Check)
}

func (vs *ValidatorSuite) TestBlocksNotModified() {
	before := make([]starknet.Header, len(vs.blocks))
	for i, b := range vs.blocks {
		before[i] = b.Header()
	}
	vs.Require().NoError(vs.validator.Validate(vs.blocks))
	for i, b := range vs.blocks {
		vs.Assert().Equal(before[i], b.Header())
	}
}

func (vs *ValidatorSuite) TestMissingBlock() {
	blocks := append([]*starknet.Block(nil), vs.blocks...)
	blocks[2] = nil

	err := vs.validator.Validate(blocks)
	vs.Require().Error(err)
	var verr *validation.ValidationError
	vs.Require().ErrorAs(err, &verr)
	vs.Assert().Equal(2, verr.Index)
	vs.Assert().Equal(validation.CheckPresence, verr.Check)
	vs.Assert().ErrorIs(err, validation.ErrMissingBlock)

	// the block after the gap has no known predecessor and is otherwise valid
	err = vs.validator.ValidateAll(blocks)
	var merr *multierror.Error
	vs.Require().ErrorAs(err, &merr)
	vs.Assert().Len(merr.Errors, 1)
}

func TestFailureIsLogged(t *testing.T) {
	b := builder.New(unittest.Logger(), metrics.NewNoopCollector())
	blocks := unittest.ChainFixture(t, b, 2)
	blocks[1] = unittest.Rebuild(blocks[1], func(h *starknet.Header, _ *starknet.Body) {
		h.SequencerAddress = unittest.Felt(3)
	})

	var buf bytes.Buffer
	v := validation.New(unittest.LoggerWithWriter(zerolog.SyncWriter(&buf)), metrics.NewNoopCollector())
	require.Error(t, v.Validate(blocks))

	out := buf.String()
	assert.Contains(t, out, `"message":"block failed validation"`)
	assert.Contains(t, out, `"component":"chain_validator"`)
	assert.Contains(t, out, `"check":"block_hash"`)
	assert.Contains(t, out, `"index":1`)
}

func TestSingleWorker(t *testing.T) {
	b := builder.New(unittest.Logger(), metrics.NewNoopCollector())
	blocks := unittest.ChainFixture(t, b, 3)
	v := validation.New(unittest.Logger(), metrics.NewNoopCollector(), validation.WithWorkers(1))
	require.NoError(t, v.Validate(blocks))

	blocks[2] = unittest.Rebuild(blocks[2], func(h *starknet.Header, _ *starknet.Body) {
		h.SequencerAddress = unittest.Felt(3)
	})
	err := v.Validate(blocks)
	require.Error(t, err)
	assert.True(t, starknet.IsBlockHashMismatchError(err))
}
