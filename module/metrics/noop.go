package metrics

import (
	"time"

	"github.com/onflow/starkhash/module"
)

type NoopCollector struct{}

var _ module.CommitmentMetrics = (*NoopCollector)(nil)

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) CommitmentsComputed(scheme string, duration time.Duration)             {}
func (nc *NoopCollector) BlockSealed(formula string, transactions uint64, duration time.Duration) {}
func (nc *NoopCollector) BlockValidated()                                                        {}
func (nc *NoopCollector) ValidationFailed(check string)                                          {}
