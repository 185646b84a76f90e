package common

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/onflow/starkhash/config"
	"github.com/onflow/starkhash/model/encodable"
	"github.com/onflow/starkhash/model/starknet"
)

// Config is the loaded configuration of the running command.
var Config *config.Config

// InitConfig loads and validates the configuration and sets up the global
// logger accordingly.
func InitConfig(flags *pflag.FlagSet) error {
	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	Config = cfg
	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}

// ReadChain decodes the chain stored in the input file.
func ReadChain(cfg *config.Config) ([]*starknet.Block, error) {
	var wire []encodable.Block
	if err := decodeInput(cfg, &wire); err != nil {
		return nil, err
	}
	return encodable.ToChain(wire)
}

// ReadBlock decodes the single block stored in the input file.
func ReadBlock(cfg *config.Config) (*starknet.Block, error) {
	var wire encodable.Block
	if err := decodeInput(cfg, &wire); err != nil {
		return nil, err
	}
	return wire.ToBlock()
}

func decodeInput(cfg *config.Config, val interface{}) error {
	encoder, err := cfg.Encoder()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("could not read input: %w", err)
	}
	err = encoder.Decode(data, val)
	if err != nil {
		return fmt.Errorf("could not decode %s input %s: %w", cfg.Format, cfg.Input, err)
	}
	return nil
}
