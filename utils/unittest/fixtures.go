package unittest

import (
	"math/rand"
	"testing"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/stretchr/testify/require"

	"github.com/onflow/starkhash/model/starknet"
	"github.com/onflow/starkhash/module"
)

// DefaultProtocolVersion is the version of proposals built by ProposalFixture.
const DefaultProtocolVersion = "0.13.4"

// returns a deterministic math/rand PRG that can be used for deterministic randomness in tests only.
// The PRG seed is logged in case the test iteration needs to be reproduced.
func GetPRG(t *testing.T) *rand.Rand {
	random := time.Now().UnixNano()
	t.Logf("rng seed is %d", random)
	rng := rand.New(rand.NewSource(random))
	return rng
}

// Felt returns the felt of a small integer.
func Felt(v uint64) felt.Felt {
	var f felt.Felt
	f.SetUint64(v)
	return f
}

// HexFelt parses a 0x prefixed hex felt.
func HexFelt(t testing.TB, s string) felt.Felt {
	t.Helper()
	var f felt.Felt
	_, err := f.SetString(s)
	require.NoError(t, err)
	return f
}

// FeltFixture returns a random felt below 2^248.
func FeltFixture() felt.Felt {
	var buf [31]byte
	_, _ = rand.Read(buf[:])
	var f felt.Felt
	f.SetBytes(buf[:])
	return f
}

func FeltFixtures(n int) []felt.Felt {
	felts := make([]felt.Felt, 0, n)
	for i := 0; i < n; i++ {
		felts = append(felts, FeltFixture())
	}
	return felts
}

func TransactionFixture() starknet.Transaction {
	return starknet.Transaction{
		Hash:      FeltFixture(),
		Signature: FeltFixtures(2),
	}
}

// ReceiptFixture returns a receipt of the transaction with the given hash.
func ReceiptFixture(txHash felt.Felt) starknet.Receipt {
	return starknet.Receipt{
		TransactionHash: txHash,
		ActualFee:       Felt(uint64(rand.Intn(1_000_000) + 1)),
		Messages: []starknet.MessageToL1{{
			From:    FeltFixture(),
			To:      FeltFixture(),
			Payload: FeltFixtures(2),
		}},
		L1Gas:     uint64(rand.Intn(10_000)),
		L1DataGas: uint64(rand.Intn(10_000)),
		L2Gas:     uint64(rand.Intn(10_000)),
	}
}

func EventFixture(txIndex, order uint64) starknet.Event {
	return starknet.Event{
		TransactionIndex: txIndex,
		Order:            order,
		From:             FeltFixture(),
		Keys:             FeltFixtures(1),
		Data:             FeltFixtures(3),
	}
}

// BodyFixture returns a consistent body: receipts pair with transactions,
// every transaction emits two events and the state diff is ordered.
func BodyFixture(transactions int) starknet.Body {
	var body starknet.Body
	for i := 0; i < transactions; i++ {
		tx := TransactionFixture()
		body.Transactions = append(body.Transactions, tx)
		body.Receipts = append(body.Receipts, ReceiptFixture(tx.Hash))
		body.Events = append(body.Events, EventFixture(uint64(i), 0), EventFixture(uint64(i), 1))
	}
	body.StateDiff = []starknet.StateDiffEntry{
		{Kind: starknet.StorageUpdate, Address: Felt(1), Key: Felt(1), Value: FeltFixture()},
		{Kind: starknet.StorageUpdate, Address: Felt(1), Key: Felt(2), Value: FeltFixture()},
		{Kind: starknet.NonceUpdate, Address: Felt(1), Value: Felt(uint64(transactions))},
		{Kind: starknet.DeclaredClass, Address: FeltFixture(), Value: FeltFixture()},
	}
	return body
}

func WithProtocolVersion(version string) func(*starknet.Proposal) {
	return func(p *starknet.Proposal) {
		p.ProtocolVersion = starknet.MustParseProtocolVersion(version)
	}
}

func WithBody(body starknet.Body) func(*starknet.Proposal) {
	return func(p *starknet.Proposal) {
		p.Body = body
	}
}

func WithDeclaredCounts(counts starknet.Counts) func(*starknet.Proposal) {
	return func(p *starknet.Proposal) {
		p.Declared = &counts
	}
}

func ProposalFixture(opts ...func(*starknet.Proposal)) *starknet.Proposal {
	proposal := &starknet.Proposal{
		GlobalStateRoot:  FeltFixture(),
		SequencerAddress: FeltFixture(),
		Timestamp:        uint64(time.Now().Unix()),
		ProtocolVersion:  starknet.MustParseProtocolVersion(DefaultProtocolVersion),
		L1GasPrice:       starknet.GasPrice{PriceInWei: Felt(30), PriceInFri: Felt(40)},
		L1DataGasPrice:   starknet.GasPrice{PriceInWei: Felt(3), PriceInFri: Felt(4)},
		L2GasPrice:       starknet.GasPrice{PriceInWei: Felt(1), PriceInFri: Felt(2)},
		L1DAMode:         starknet.Blob,
		Body:             BodyFixture(3),
	}
	for _, apply := range opts {
		apply(proposal)
	}
	return proposal
}

// ChainFixture builds a chain of length blocks starting at genesis.
func ChainFixture(t testing.TB, builder module.Builder, length int, opts ...func(*starknet.Proposal)) []*starknet.Block {
	blocks := make([]*starknet.Block, 0, length)
	var parent *starknet.Block
	for i := 0; i < length; i++ {
		block, err := builder.Build(parent, ProposalFixture(opts...))
		require.NoError(t, err)
		blocks = append(blocks, block)
		parent = block
	}
	return blocks
}

// Rebuild seals a copy of block with its header modified by mutate, keeping
// the original hash. It produces blocks a builder would never return.
func Rebuild(block *starknet.Block, mutate func(*starknet.Header, *starknet.Body)) *starknet.Block {
	header := block.Header()
	body := block.Body()
	mutate(&header, &body)
	return starknet.NewBlock(header, block.Hash(), body)
}
