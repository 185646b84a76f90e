package validation

import (
	"errors"
	"fmt"
)

// Check names a single chain validation check.
type Check int

const (
	CheckNumber Check = iota + 1
	CheckParentLink
	CheckProtocolVersion
	CheckCommitment
	CheckBlockHash
	CheckPresence
)

// ErrMissingBlock is the failure of a nil entry in the validated blocks.
var ErrMissingBlock = errors.New("block is missing")

func (c Check) String() string {
	switch c {
	case CheckNumber:
		return "number"
	case CheckParentLink:
		return "parent_link"
	case CheckProtocolVersion:
		return "protocol_version"
	case CheckCommitment:
		return "commitment"
	case CheckBlockHash:
		return "block_hash"
	case CheckPresence:
		return "presence"
	}
	return "unknown"
}

// ValidationError reports the first failed check of one block of a chain.
// Err holds the typed starknet error describing the failure.
type ValidationError struct {
	// Index is the position of the block in the validated slice.
	Index  int
	Number uint64
	Check  Check
	// Field is the header field at fault, if the check concerns one.
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("block %d at index %d failed %s check on %s: %v", e.Number, e.Index, e.Check, e.Field, e.Err)
	}
	return fmt.Sprintf("block %d at index %d failed %s check: %v", e.Number, e.Index, e.Check, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError returns whether err is a ValidationError.
func IsValidationError(err error) bool {
	var errValidation *ValidationError
	return errors.As(err, &errValidation)
}
