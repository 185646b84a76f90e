package verify_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verify "github.com/onflow/starkhash/cmd/util/cmd/verify-chain"
	"github.com/onflow/starkhash/config"
	"github.com/onflow/starkhash/model/encodable"
	"github.com/onflow/starkhash/model/starknet"
	"github.com/onflow/starkhash/module/builder"
	"github.com/onflow/starkhash/module/metrics"
	"github.com/onflow/starkhash/utils/unittest"
)

func writeChain(t *testing.T, cfg *config.Config, blocks []*starknet.Block) {
	encoder, err := cfg.Encoder()
	require.NoError(t, err)
	data, err := encoder.Encode(encodable.FromChain(blocks))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfg.Input, data, 0o600))
}

func testConfig(t *testing.T, format string) *config.Config {
	return &config.Config{
		ChainID:  "SN_MAIN",
		Workers:  2,
		LogLevel: "debug",
		Input:    filepath.Join(t.TempDir(), "chain."+format),
		Format:   format,
	}
}

func TestVerifyChain(t *testing.T) {
	b := builder.New(unittest.Logger(), metrics.NewNoopCollector())
	blocks := unittest.ChainFixture(t, b, 4)

	for _, format := range []string{config.FormatCBOR, config.FormatMsgpack} {
		t.Run(format, func(t *testing.T) {
			cfg := testConfig(t, format)
			writeChain(t, cfg, blocks)
			assert.NoError(t, verify.VerifyChain(unittest.Logger(), cfg, false))
			assert.NoError(t, verify.VerifyChain(unittest.Logger(), cfg, true))
		})
	}
}

func TestVerifyChainReportsFailures(t *testing.T) {
	b := builder.New(unittest.Logger(), metrics.NewNoopCollector())
	blocks := unittest.ChainFixture(t, b, 4)
	for _, i := range []int{1, 2} {
		blocks[i] = unittest.Rebuild(blocks[i], func(h *starknet.Header, _ *starknet.Body) {
			h.Timestamp++
		})
	}

	cfg := testConfig(t, config.FormatCBOR)
	writeChain(t, cfg, blocks)

	err := verify.VerifyChain(unittest.Logger(), cfg, false)
	require.Error(t, err)
	assert.True(t, starknet.IsBlockHashMismatchError(err))

	err = verify.VerifyChain(unittest.Logger(), cfg, true)
	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
}

func TestVerifyChainInputErrors(t *testing.T) {
	cfg := testConfig(t, config.FormatCBOR)
	assert.Error(t, verify.VerifyChain(unittest.Logger(), cfg, false), "missing file")

	require.NoError(t, os.WriteFile(cfg.Input, []byte{0xff, 0x00}, 0o600))
	assert.Error(t, verify.VerifyChain(unittest.Logger(), cfg, false), "garbage")

	writeChain(t, cfg, nil)
	assert.NoError(t, verify.VerifyChain(unittest.Logger(), cfg, false), "empty chain")
}
