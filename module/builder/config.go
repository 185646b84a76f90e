package builder

import (
	"github.com/NethermindEth/juno/core/felt"

	"github.com/onflow/starkhash/module/blockhash"
	"github.com/onflow/starkhash/module/commitment"
)

type Config struct {
	schemes  *commitment.Table
	formulas *blockhash.Table
	params   blockhash.Params
}

// DefaultConfig builds Starknet mainnet blocks.
func DefaultConfig() Config {
	return Config{
		schemes:  commitment.StarknetTable(),
		formulas: blockhash.StarknetTable(),
		params:   blockhash.Params{ChainID: blockhash.ChainID(blockhash.Mainnet)},
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
