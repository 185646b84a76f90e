package hashblock_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hashblock "github.com/onflow/starkhash/cmd/util/cmd/hash-block"
	"github.com/onflow/starkhash/config"
	"github.com/onflow/starkhash/model/encodable"
	"github.com/onflow/starkhash/model/encoding/cbor"
	"github.com/onflow/starkhash/model/starknet"
	"github.com/onflow/starkhash/module/builder"
	"github.com/onflow/starkhash/module/metrics"
	"github.com/onflow/starkhash/utils/unittest"
)

func writeBlock(t *testing.T, block *starknet.Block) *config.Config {
	cfg := &config.Config{
		ChainID:  "SN_MAIN",
		Workers:  1,
		LogLevel: "info",
		Input:    filepath.Join(t.TempDir(), "block.cbor"),
		Format:   config.FormatCBOR,
	}
	wire := encodable.FromBlock(block)
	require.NoError(t, os.WriteFile(cfg.Input, cbor.NewEncoder().MustEncode(&wire), 0o600))
	return cfg
}

func TestHashBlock(t *testing.T) {
	b := builder.New(unittest.Logger(), metrics.NewNoopCollector())
	block, err := b.Build(nil, unittest.ProposalFixture())
	require.NoError(t, err)

	result, err := hashblock.HashBlock(writeBlock(t, block))
	require.NoError(t, err)
	assert.True(t, result.Matches())
	assert.Equal(t, "poseidon", result.Scheme)
	assert.Equal(t, "0.13.4", result.Formula)
	unittest.FeltEqual(t, block.Hash(), result.Hash)
	result.Log(unittest.Logger())
}

func TestHashBlockMismatch(t *testing.T) {
	b := builder.New(unittest.Logger(), metrics.NewNoopCollector())
	block, err := b.Build(nil, unittest.ProposalFixture())
	require.NoError(t, err)
	tampered := unittest.Rebuild(block, func(_ *starknet.Header, body *starknet.Body) {
		body.Events[0].Data[0] = unittest.Felt(1)
	})

	result, err := hashblock.HashBlock(writeBlock(t, tampered))
	require.NoError(t, err)
	assert.False(t, result.Matches())
	assert.NotEqual(t, result.Stored.Events, result.Recomputed.Events)
	assert.Equal(t, result.Stored.Transactions, result.Recomputed.Transactions)
}

func TestHashBlockUnsupportedVersion(t *testing.T) {
	block := starknet.NewBlock(starknet.Header{ProtocolVersion: starknet.MustParseProtocolVersion("0.15.0")},
		unittest.Felt(1), starknet.Body{})
	_, err := hashblock.HashBlock(writeBlock(t, block))
	require.Error(t, err)
	assert.True(t, starknet.IsUnsupportedProtocolVersionError(err))
}
