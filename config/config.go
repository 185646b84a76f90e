package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/onflow/starkhash/model/encoding"
	"github.com/onflow/starkhash/model/encoding/cbor"
	"github.com/onflow/starkhash/model/encoding/msgpack"
)

// EnvPrefix prefixes the environment variables overriding config keys,
// e.g. STARKHASH_CHAIN_ID.
const EnvPrefix = "STARKHASH"

// Formats of encoded block files.
const (
	FormatCBOR    = "cbor"
	FormatMsgpack = "msgpack"
)

// Config holds the settings of the command line tools. The struct is
// validated via go-playground/validator tags.
type Config struct {
	// ChainID is the chain name committed to by pre 0.7.0 block hashes.
	ChainID  string `mapstructure:"chain-id" validate:"required,printascii,max=31"`
	Workers  int    `mapstructure:"workers" validate:"gte=1"`
	LogLevel string `mapstructure:"log-level" validate:"oneof=trace debug info warn error"`
	// Input is the path of the encoded block or chain file.
	Input  string `mapstructure:"input" validate:"required"`
	Format string `mapstructure:"format" validate:"oneof=cbor msgpack"`
	// MetricsPort serves prometheus metrics while the command runs. Zero
	// disables the metrics server.
	MetricsPort uint `mapstructure:"metrics-port" validate:"lte=65535"`
}

// InitFlags registers one flag per config key.
func InitFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "path of an optional config file")
	flags.String("chain-id", "SN_MAIN", "chain name, e.g. SN_MAIN or SN_SEPOLIA")
	flags.Int("workers", runtime.NumCPU(), "number of blocks validated concurrently")
	flags.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.String("input", "", "path of the encoded input file")
	flags.String("format", FormatCBOR, "encoding of the input file (cbor, msgpack)")
	flags.Uint("metrics-port", 0, "port of the prometheus metrics server, 0 disables it")
}

// Load reads the config from flags, the environment and an optional config
// file, in decreasing order of precedence, and validates it.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	err := v.BindPFlags(flags)
	if err != nil {
		return nil, fmt.Errorf("could not bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file %s: %w", path, err)
		}
	}

	var cfg Config
	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}

	err = validator.New().Struct(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Level returns the zerolog level of the config.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Encoder returns the codec of the input format.
func (c *Config) Encoder() (encoding.Encoder, error) {
	switch c.Format {
	case FormatCBOR:
		return cbor.NewEncoder(), nil
	case FormatMsgpack:
		return msgpack.NewEncoder(), nil
	}
	return nil, fmt.Errorf("unknown format %q", c.Format)
}
