package module

import (
	"time"
)

// CommitmentMetrics records block sealing and chain validation.
type CommitmentMetrics interface {
	// CommitmentsComputed reports the time spent on the four commitments of
	// one block under the given scheme.
	CommitmentsComputed(scheme string, duration time.Duration)

	// BlockSealed reports a sealed block, the formula of its hash and the
	// total time spent building it.
	BlockSealed(formula string, transactions uint64, duration time.Duration)

	// BlockValidated reports a block that passed every check.
	BlockValidated()

	// ValidationFailed reports a block failing the given check.
	ValidationFailed(check string)
}
