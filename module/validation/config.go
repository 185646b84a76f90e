package validation

import (
	"runtime"

	"github.com/NethermindEth/juno/core/felt"

	"github.com/onflow/starkhash/module/blockhash"
	"github.com/onflow/starkhash/module/commitment"
)

type Config struct {
	schemes  *commitment.Table
	formulas *blockhash.Table
	params   blockhash.Params
	workers  int
}

// DefaultConfig validates Starknet mainnet blocks with one worker per CPU.
func DefaultConfig() Config {
	return Config{
		schemes:  commitment.StarknetTable(),
		formulas: blockhash.StarknetTable(),
		params:   blockhash.Params{ChainID: blockhash.ChainID(blockhash.Mainnet)},
		workers:  runtime.NumCPU(),
	}
}

func WithCommitmentTable(schemes *commitment.Table) func(*Config) {
	return func(cfg *Config) {
		cfg.schemes = schemes
	}
}

func WithBlockHashTable(formulas *blockhash.Table) func(*Config) {
	return func(cfg *Config) {
		cfg.formulas = formulas
	}
}

func WithChainID(chainID felt.Felt) func(*Config) {
	return func(cfg *Config) {
		cfg.params.ChainID = chainID
	}
}

// WithWorkers bounds the number of blocks checked at once. Values below one
// are ignored.
func WithWorkers(workers int) func(*Config) {
	return func(cfg *Config) {
		if workers > 0 {
			cfg.workers = workers
		}
	}
}
