package blockhash

import (
	"encoding/binary"

	"github.com/NethermindEth/juno/core/felt"

	"github.com/onflow/starkhash/model/hash"
	"github.com/onflow/starkhash/model/starknet"
)

// Starknet protocol boundaries of the block hash formulas.
const (
	Version070  = "0.7.0"
	Version0132 = "0.13.2"
	Version0134 = "0.13.4"
)

// VersionUnsupported is the first version the Starknet table does not cover.
const VersionUnsupported = "0.15.0"

// Chain names, see ChainID.
const (
	Mainnet = "SN_MAIN"
	Sepolia = "SN_SEPOLIA"
)

var (
	blockHashPrefix0 = shortString("STARKNET_BLOCK_HASH0")
	blockHashPrefix1 = shortString("STARKNET_BLOCK_HASH1")
	gasPricesPrefix0 = shortString("STARKNET_GAS_PRICES0")
)

// StarknetTable returns the block hash formulas of Starknet history.
func StarknetTable() *Table {
	return NewStarknetTable(hash.Pedersen{}, hash.Poseidon{})
}

// NewStarknetTable returns the Starknet formulas with the given hashers in
// place of Pedersen and Poseidon.
func NewStarknetTable(pedersen, poseidon hash.Hasher) *Table {
	table, err := NewTable(
		Formula{
			Name:     "pre-" + Version070,
			Versions: starknet.VersionsFrom("", Version070),
			Hasher:   pedersen,
			Fields:   pre070Fields,
		},
		Formula{
			Name:     Version070,
			Versions: starknet.VersionsFrom(Version070, Version0132),
			Hasher:   pedersen,
			Fields:   post070Fields,
		},
		Formula{
			Name:     Version0132,
			Versions: starknet.VersionsFrom(Version0132, Version0134),
			Hasher:   poseidon,
			Fields:   post0132Fields,
		},
		Formula{
			Name:     Version0134,
			Versions: starknet.VersionsFrom(Version0134, VersionUnsupported),
			Hasher:   poseidon,
			Fields:   post0134Fields(poseidon),
		},
	)
	if err != nil {
		panic(err)
	}
	return table
}

func pre070Fields(h *starknet.Header, p Params) []*felt.Felt {
	return []*felt.Felt{
		u64(h.Number),
		&h.GlobalStateRoot,
		&felt.Zero,
		&felt.Zero,
		u64(h.TransactionCount),
		&h.TransactionCommitment,
		&felt.Zero,
		&felt.Zero,
		&felt.Zero,
		&felt.Zero,
		&p.ChainID,
		&h.ParentHash,
	}
}

func post070Fields(h *starknet.Header, _ Params) []*felt.Felt {
	return []*felt.Felt{
		u64(h.Number),
		&h.GlobalStateRoot,
		&h.SequencerAddress,
		u64(h.Timestamp),
		u64(h.TransactionCount),
		&h.TransactionCommitment,
		u64(h.EventCount),
		&h.EventCommitment,
		&felt.Zero,
		&felt.Zero,
		&h.ParentHash,
	}
}

func post0132Fields(h *starknet.Header, _ Params) []*felt.Felt {
	version := h.ProtocolVersion.Felt()
	return []*felt.Felt{
		blockHashPrefix0,
		u64(h.Number),
		&h.GlobalStateRoot,
		&h.SequencerAddress,
		u64(h.Timestamp),
		ConcatCounts(h),
		&h.StateDiffCommitment,
		&h.TransactionCommitment,
		&h.EventCommitment,
		&h.ReceiptCommitment,
		&h.L1GasPrice.PriceInWei,
		&h.L1GasPrice.PriceInFri,
		&h.L1DataGasPrice.PriceInWei,
		&h.L1DataGasPrice.PriceInFri,
		&version,
		&felt.Zero,
		&h.ParentHash,
	}
}

// post0134Fields folds all gas prices, L2 gas included, into a single field.
func post0134Fields(hasher hash.Hasher) func(*starknet.Header, Params) []*felt.Felt {
	return func(h *starknet.Header, _ Params) []*felt.Felt {
		version := h.ProtocolVersion.Felt()
		return []*felt.Felt{
			blockHashPrefix1,
			u64(h.Number),
			&h.GlobalStateRoot,
			&h.SequencerAddress,
			u64(h.Timestamp),
			ConcatCounts(h),
			&h.StateDiffCommitment,
			&h.TransactionCommitment,
			&h.EventCommitment,
			&h.ReceiptCommitment,
			GasPricesHash(hasher, h),
			&version,
			&felt.Zero,
			&h.ParentHash,
		}
	}
}

// ConcatCounts packs the header counts and data availability mode into one
// field element:
//
//	tx count (8 bytes) | event count (8) | state diff length (8) | da mode (1) | zero (7)
//
// The counts are big endian. The da mode byte is 0x80 for blobs and zero
// for calldata.
func ConcatCounts(h *starknet.Header) *felt.Felt {
	var buf [32]byte
	binary.BigEndian.PutUint64(buf[0:8], h.TransactionCount)
	binary.BigEndian.PutUint64(buf[8:16], h.EventCount)
	binary.BigEndian.PutUint64(buf[16:24], h.StateDiffLength)
	if h.L1DAMode == starknet.Blob {
		buf[24] = 0x80
	}
	return new(felt.Felt).SetBytes(buf[:])
}

// GasPricesHash commits to the six gas prices of the header.
func GasPricesHash(hasher hash.Hasher, h *starknet.Header) *felt.Felt {
	return hasher.HashArray(
		gasPricesPrefix0,
		&h.L1GasPrice.PriceInWei,
		&h.L1GasPrice.PriceInFri,
		&h.L1DataGasPrice.PriceInWei,
		&h.L1DataGasPrice.PriceInFri,
		&h.L2GasPrice.PriceInWei,
		&h.L2GasPrice.PriceInFri,
	)
}

func shortString(s string) *felt.Felt {
	return new(felt.Felt).SetBytes([]byte(s))
}

func u64(v uint64) *felt.Felt {
	return new(felt.Felt).SetUint64(v)
}
