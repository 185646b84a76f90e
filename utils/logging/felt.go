package logging

import (
	"github.com/NethermindEth/juno/core/felt"
	"github.com/rs/zerolog"

	"github.com/onflow/starkhash/model/starknet"
)

// Felt returns the hex form of a felt for log fields.
func Felt(f *felt.Felt) string {
	return f.String()
}

func Felts(felts []felt.Felt) []string {
	ss := make([]string, 0, len(felts))
	for i := range felts {
		ss = append(ss, felts[i].String())
	}
	return ss
}

// Block adds the identifying fields of a block to a log context.
func Block(ctx zerolog.Context, block *starknet.Block) zerolog.Context {
	hash := block.Hash()
	return ctx.
		Uint64("number", block.Number()).
		Str("hash", Felt(&hash))
}
