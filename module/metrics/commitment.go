package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/onflow/starkhash/module"
)

// CommitmentCollector exposes builder and validator activity to prometheus.
type CommitmentCollector struct {
	commitmentDuration *prometheus.HistogramVec
	sealDuration       *prometheus.HistogramVec
	sealedBlocks       *prometheus.CounterVec
	sealedTransactions prometheus.Counter
	validatedBlocks    prometheus.Counter
	validationFailures *prometheus.CounterVec
}

var _ module.CommitmentMetrics = (*CommitmentCollector)(nil)

// NewCommitmentCollector registers the collectors with registerer. A nil
// registerer uses the prometheus default registry.
func NewCommitmentCollector(registerer prometheus.Registerer) *CommitmentCollector {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	cc := &CommitmentCollector{

		commitmentDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:      "commitments_duration_seconds",
			Namespace: namespaceStarkhash,
			Subsystem: subsystemBuilder,
			Help:      "time spent computing the commitments of a block",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{LabelScheme}),

		sealDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:      "seal_duration_seconds",
			Namespace: namespaceStarkhash,
			Subsystem: subsystemBuilder,
			Help:      "time spent building and sealing a block",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{LabelFormula}),

		sealedBlocks: factory.NewCounterVec(prometheus.CounterOpts{
			Name:      "sealed_blocks_total",
			Namespace: namespaceStarkhash,
			Subsystem: subsystemBuilder,
			Help:      "the number of sealed blocks",
		}, []string{LabelFormula}),

		sealedTransactions: factory.NewCounter(prometheus.CounterOpts{
			Name:      "sealed_transactions_total",
			Namespace: namespaceStarkhash,
			Subsystem: subsystemBuilder,
			Help:      "the number of transactions in sealed blocks",
		}),

		validatedBlocks: factory.NewCounter(prometheus.CounterOpts{
			Name:      "validated_blocks_total",
			Namespace: namespaceStarkhash,
			Subsystem: subsystemValidation,
			Help:      "the number of blocks that passed validation",
		}),

		validationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name:      "failures_total",
			Namespace: namespaceStarkhash,
			Subsystem: subsystemValidation,
			Help:      "the number of blocks that failed validation, by failed check",
		}, []string{LabelCheck}),
	}

	return cc
}

func (cc *CommitmentCollector) CommitmentsComputed(scheme string, duration time.Duration) {
	cc.commitmentDuration.WithLabelValues(scheme).Observe(duration.Seconds())
}

func (cc *CommitmentCollector) BlockSealed(formula string, transactions uint64, duration time.Duration) {
	cc.sealDuration.WithLabelValues(formula).Observe(duration.Seconds())
	cc.sealedBlocks.WithLabelValues(formula).Inc()
	cc.sealedTransactions.Add(float64(transactions))
}

func (cc *CommitmentCollector) BlockValidated() {
	cc.validatedBlocks.Inc()
}

func (cc *CommitmentCollector) ValidationFailed(check string) {
	cc.validationFailures.WithLabelValues(check).Inc()
}
