package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/starkhash/module/metrics"
)

func TestCommitmentCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := metrics.NewCommitmentCollector(registry)

	collector.CommitmentsComputed("poseidon", time.Millisecond)
	collector.BlockSealed("0.13.4", 3, 2*time.Millisecond)
	collector.BlockSealed("0.13.4", 2, time.Millisecond)
	collector.BlockValidated()
	collector.ValidationFailed("parent_link")
	collector.ValidationFailed("parent_link")

	count, err := testutil.GatherAndCount(registry,
		"starkhash_builder_sealed_blocks_total",
		"starkhash_builder_sealed_transactions_total",
		"starkhash_validation_validated_blocks_total",
		"starkhash_validation_failures_total",
		"starkhash_builder_commitments_duration_seconds",
		"starkhash_builder_seal_duration_seconds",
	)
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	expected := `
# HELP starkhash_builder_sealed_transactions_total the number of transactions in sealed blocks
# TYPE starkhash_builder_sealed_transactions_total counter
starkhash_builder_sealed_transactions_total 5
# HELP starkhash_validation_failures_total the number of blocks that failed validation, by failed check
# TYPE starkhash_validation_failures_total counter
starkhash_validation_failures_total{check="parent_link"} 2
`
	err = testutil.GatherAndCompare(registry, strings.NewReader(expected),
		"starkhash_builder_sealed_transactions_total",
		"starkhash_validation_failures_total",
	)
	assert.NoError(t, err)
}
