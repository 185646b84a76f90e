package verify

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/onflow/starkhash/cmd/util/cmd/common"
	"github.com/onflow/starkhash/config"
	"github.com/onflow/starkhash/module"
	"github.com/onflow/starkhash/module/blockhash"
	"github.com/onflow/starkhash/module/metrics"
	"github.com/onflow/starkhash/module/validation"
)

var (
	flagAll bool
)

// # verify a cbor encoded chain, stopping at the first failing block
// ./util verify-chain --input chain.cbor
// # report every failing block of a msgpack encoded sepolia chain
// ./util verify-chain --input chain.msgpack --format msgpack --chain-id SN_SEPOLIA --all
var Cmd = &cobra.Command{
	Use:   "verify-chain",
	Short: "verify numbering, parent links, commitments and hashes of a chain of blocks",
	Run:   run,
}

func init() {
	Cmd.Flags().BoolVar(&flagAll, "all", false,
		"report every failing block instead of the first one")
}

func run(*cobra.Command, []string) {
	err := VerifyChain(log.Logger, common.Config, flagAll)
	if err != nil {
		log.Fatal().Err(err).Msg("chain verification failed")
	}
}

// VerifyChain decodes the chain in the configured input and validates it.
func VerifyChain(logger zerolog.Logger, cfg *config.Config, all bool) error {
	blocks, err := common.ReadChain(cfg)
	if err != nil {
		return fmt.Errorf("could not read chain: %w", err)
	}
	if len(blocks) == 0 {
		logger.Info().Msg("input holds no blocks")
		return nil
	}

	var collector module.CommitmentMetrics = metrics.NewNoopCollector()
	if cfg.MetricsPort != 0 {
		registry := prometheus.NewRegistry()
		collector = metrics.NewCommitmentCollector(registry)
		server := metrics.NewServer(logger, cfg.MetricsPort, registry)
		<-server.Ready()
		defer func() { <-server.Done() }()
	}

	validator := validation.New(logger, collector,
		validation.WithWorkers(cfg.Workers),
		validation.WithChainID(blockhash.ChainID(cfg.ChainID)),
	)

	if all {
		err = validator.ValidateAll(blocks)
		var merr *multierror.Error
		if errors.As(err, &merr) {
			for _, failure := range merr.Errors {
				logger.Error().Err(failure).Msg("block failed validation")
			}
		}
	} else {
		err = validator.Validate(blocks)
	}
	if err != nil {
		return err
	}

	logger.Info().
		Int("blocks", len(blocks)).
		Uint64("first", blocks[0].Number()).
		Uint64("last", blocks[len(blocks)-1].Number()).
		Msg("chain verified")
	return nil
}
