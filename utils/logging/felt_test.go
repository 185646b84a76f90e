package logging_test

import (
	"bytes"
	"testing"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/onflow/starkhash/model/starknet"
	"github.com/onflow/starkhash/utils/logging"
)

func TestFelts(t *testing.T) {
	var a, b felt.Felt
	a.SetUint64(10)
	b.SetUint64(255)
	assert.Equal(t, []string{"0xa", "0xff"}, logging.Felts([]felt.Felt{a, b}))
	assert.Equal(t, "0xff", logging.Felt(&b))
}

func TestBlockContext(t *testing.T) {
	var hash felt.Felt
	hash.SetUint64(16)
	block := starknet.NewBlock(starknet.Header{Number: 7}, hash, starknet.Body{})

	var buf bytes.Buffer
	log := logging.Block(zerolog.New(&buf).With(), block).Logger()
	log.Info().Msg("test")

	assert.JSONEq(t, `{"level":"info","number":7,"hash":"0x10","message":"test"}`, buf.String())
}
