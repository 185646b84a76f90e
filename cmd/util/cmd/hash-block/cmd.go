package hashblock

import (
	"fmt"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/onflow/starkhash/cmd/util/cmd/common"
	"github.com/onflow/starkhash/config"
	"github.com/onflow/starkhash/model/starknet"
	"github.com/onflow/starkhash/module/blockhash"
	"github.com/onflow/starkhash/module/commitment"
	"github.com/onflow/starkhash/utils/logging"
)

// # recompute the commitments and hash of a single block
// ./util hash-block --input block.cbor
var Cmd = &cobra.Command{
	Use:   "hash-block",
	Short: "recompute the commitments and the hash of a single block",
	Run:   run,
}

func run(*cobra.Command, []string) {
	result, err := HashBlock(common.Config)
	if err != nil {
		log.Fatal().Err(err).Msg("could not hash block")
	}
	result.Log(log.Logger)
	if !result.Matches() {
		log.Fatal().Msg("stored values differ from the recomputed ones")
	}
}

// Result compares the stored and recomputed values of one block.
type Result struct {
	Number     uint64
	Scheme     string
	Formula    string
	Stored     starknet.Commitments
	Recomputed starknet.Commitments
	StoredHash felt.Felt
	Hash       felt.Felt
}

// Matches reports whether all stored values were recomputed identically.
func (r *Result) Matches() bool {
	return r.Stored == r.Recomputed && r.StoredHash.Equal(&r.Hash)
}

func (r *Result) Log(logger zerolog.Logger) {
	for _, category := range starknet.Categories {
		stored, recomputed := r.Stored.Of(category), r.Recomputed.Of(category)
		logger.Info().
			Str("field", category.CommitmentField()).
			Str("stored", logging.Felt(&stored)).
			Str("recomputed", logging.Felt(&recomputed)).
			Bool("match", stored.Equal(&recomputed)).
			Msg("commitment")
	}
	logger.Info().
		Uint64("number", r.Number).
		Str("scheme", r.Scheme).
		Str("formula", r.Formula).
		Str("stored", logging.Felt(&r.StoredHash)).
		Str("recomputed", logging.Felt(&r.Hash)).
		Bool("match", r.StoredHash.Equal(&r.Hash)).
		Msg("block hash")
}

// HashBlock decodes the block in the configured input and recomputes its
// commitments and hash. The hash is computed over the recomputed
// commitments, not the stored ones.
func HashBlock(cfg *config.Config) (*Result, error) {
	block, err := common.ReadBlock(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read block: %w", err)
	}

	header := block.Header()
	scheme, err := commitment.StarknetTable().Lookup(header.ProtocolVersion)
	if err != nil {
		return nil, err
	}
	computer := blockhash.NewComputer(blockhash.StarknetTable(), blockhash.Params{ChainID: blockhash.ChainID(cfg.ChainID)})
	formula, err := computer.Lookup(header.ProtocolVersion)
	if err != nil {
		return nil, err
	}

	body := block.Body()
	recomputed, err := commitment.Compute(scheme, &body, header.Counts())
	if err != nil {
		return nil, fmt.Errorf("could not compute commitments: %w", err)
	}

	result := &Result{
		Number:     header.Number,
		Scheme:     scheme.Name,
		Formula:    formula.Name,
		Stored:     header.Commitments(),
		Recomputed: recomputed,
		StoredHash: block.Hash(),
	}
	header.SetCommitments(recomputed)
	hash, err := computer.Compute(&header)
	if err != nil {
		return nil, err
	}
	result.Hash = *hash
	return result, nil
}
