package starknet

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/juno/core/felt"
)

// LeafCountMismatchError is returned when the number of leaves supplied for a
// category differs from the count declared for it.
type LeafCountMismatchError struct {
	Category Category
	Declared uint64
	Actual   uint64
}

func (e LeafCountMismatchError) Error() string {
	return fmt.Sprintf("%s: declared %d leaves but got %d", e.Category, e.Declared, e.Actual)
}

func IsLeafCountMismatchError(err error) bool {
	var target LeafCountMismatchError
	return errors.As(err, &target)
}

// UnsupportedProtocolVersionError is returned when no commitment scheme or
// block hash formula is registered for a protocol version.
type UnsupportedProtocolVersionError struct {
	Version ProtocolVersion
	// Table names the lookup that failed, e.g. "commitment" or "block hash".
	Table string
}

func (e UnsupportedProtocolVersionError) Error() string {
	return fmt.Sprintf("no %s entry registered for protocol version %q", e.Table, e.Version)
}

func IsUnsupportedProtocolVersionError(err error) bool {
	var target UnsupportedProtocolVersionError
	return errors.As(err, &target)
}

// ProtocolVersionRegressionError is returned when a block's protocol version
// orders before its parent's.
type ProtocolVersionRegressionError struct {
	Parent ProtocolVersion
	Child  ProtocolVersion
}

func (e ProtocolVersionRegressionError) Error() string {
	return fmt.Sprintf("protocol version %q regresses from parent version %q", e.Child, e.Parent)
}

func IsProtocolVersionRegressionError(err error) bool {
	var target ProtocolVersionRegressionError
	return errors.As(err, &target)
}

// ChainLinkMismatchError is returned when a block's parent hash is not the
// hash of its predecessor (or the genesis sentinel for block zero).
type ChainLinkMismatchError struct {
	Number   uint64
	Expected felt.Felt
	Actual   felt.Felt
}

func (e ChainLinkMismatchError) Error() string {
	return fmt.Sprintf("block %d: parent hash %s does not match expected %s",
		e.Number, e.Actual.String(), e.Expected.String())
}

func IsChainLinkMismatchError(err error) bool {
	var target ChainLinkMismatchError
	return errors.As(err, &target)
}

// BlockNumberDiscontinuityError is returned when block numbers do not
// increase by exactly one.
type BlockNumberDiscontinuityError struct {
	Expected uint64
	Actual   uint64
}

func (e BlockNumberDiscontinuityError) Error() string {
	return fmt.Sprintf("expected block number %d but got %d", e.Expected, e.Actual)
}

func IsBlockNumberDiscontinuityError(err error) bool {
	var target BlockNumberDiscontinuityError
	return errors.As(err, &target)
}

// CommitmentMismatchError is returned when a recomputed commitment differs
// from the one stored in the header.
type CommitmentMismatchError struct {
	Category   Category
	Stored     felt.Felt
	Recomputed felt.Felt
}

func (e CommitmentMismatchError) Error() string {
	return fmt.Sprintf("%s: stored %s but recomputed %s",
		e.Category.CommitmentField(), e.Stored.String(), e.Recomputed.String())
}

func IsCommitmentMismatchError(err error) bool {
	var target CommitmentMismatchError
	return errors.As(err, &target)
}

// BlockHashMismatchError is returned when a recomputed block hash differs
// from the stored one.
type BlockHashMismatchError struct {
	Number     uint64
	Stored     felt.Felt
	Recomputed felt.Felt
}

func (e BlockHashMismatchError) Error() string {
	return fmt.Sprintf("block %d: stored hash %s but recomputed %s",
		e.Number, e.Stored.String(), e.Recomputed.String())
}

func IsBlockHashMismatchError(err error) bool {
	var target BlockHashMismatchError
	return errors.As(err, &target)
}

// InvalidBodyError indicates that the body collections violate an ordering
// or pairing constraint and cannot be committed to.
type InvalidBodyError struct {
	error
}

func NewInvalidBodyErrorf(msg string, args ...interface{}) error {
	return InvalidBodyError{
		error: fmt.Errorf(msg, args...),
	}
}

func (e InvalidBodyError) Unwrap() error {
	return e.error
}

func IsInvalidBodyError(err error) bool {
	var target InvalidBodyError
	return errors.As(err, &target)
}
