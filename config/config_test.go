package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/starkhash/config"
	"github.com/onflow/starkhash/model/encoding/msgpack"
)

func flags(t *testing.T, args ...string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.InitFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadFromFlags(t *testing.T) {
	cfg, err := config.Load(flags(t, "--input", "chain.cbor", "--workers", "3", "--log-level", "debug"))
	require.NoError(t, err)
	assert.Equal(t, "SN_MAIN", cfg.ChainID)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "chain.cbor", cfg.Input)
	assert.Equal(t, config.FormatCBOR, cfg.Format)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STARKHASH_INPUT", "from-env.msgpack")
	t.Setenv("STARKHASH_FORMAT", "msgpack")
	t.Setenv("STARKHASH_CHAIN_ID", "SN_SEPOLIA")

	cfg, err := config.Load(flags(t))
	require.NoError(t, err)
	assert.Equal(t, "from-env.msgpack", cfg.Input)
	assert.Equal(t, "SN_SEPOLIA", cfg.ChainID)

	encoder, err := cfg.Encoder()
	require.NoError(t, err)
	assert.IsType(t, msgpack.NewEncoder(), encoder)

	// flags take precedence over the environment
	cfg, err = config.Load(flags(t, "--chain-id", "SN_MAIN"))
	require.NoError(t, err)
	assert.Equal(t, "SN_MAIN", cfg.ChainID)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starkhash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: file.cbor\nworkers: 2\n"), 0o600))

	cfg, err := config.Load(flags(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, "file.cbor", cfg.Input)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := map[string][]string{
		"missing input":     {},
		"unknown format":    {"--input", "x", "--format", "json"},
		"no workers":        {"--input", "x", "--workers", "0"},
		"unknown log level": {"--input", "x", "--log-level", "loud"},
		"long chain id":     {"--input", "x", "--chain-id", "A_CHAIN_NAME_THAT_DOES_NOT_FIT_A_FELT"},
		"metrics port":      {"--input", "x", "--metrics-port", "70000"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(flags(t, args...))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(flags(t, "--input", "x", "--config", filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Error(t, err)
}
