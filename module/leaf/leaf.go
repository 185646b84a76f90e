// Package leaf implements the Starknet encodings of body items into
// commitment leaves.
//
// Two encodings exist. Blocks before 0.13.2 hash transactions and events with
// Pedersen; from 0.13.2 on, every leaf is a Poseidon array hash and receipts
// are committed as well. Each encoding is parametrised by its hasher so that
// tests can substitute a hand-verifiable one.
package leaf

import (
	"github.com/NethermindEth/juno/core/felt"
	"golang.org/x/crypto/sha3"

	"github.com/onflow/starkhash/model/hash"
	"github.com/onflow/starkhash/model/starknet"
	"github.com/onflow/starkhash/module"
)

// Legacy is the leaf encoding of blocks before 0.13.2.
type Legacy struct {
	hasher hash.Hasher
}

var _ module.LeafEncoder = (*Legacy)(nil)

// NewLegacy returns the legacy encoding over the given hasher. Starknet uses
// Pedersen.
func NewLegacy(hasher hash.Hasher) *Legacy {
	return &Legacy{hasher: hasher}
}

func (l *Legacy) Name() string { return "legacy-" + l.hasher.Name() }

// TransactionLeaf is h(tx_hash, h_array(signature)).
func (l *Legacy) TransactionLeaf(tx *starknet.Transaction) *felt.Felt {
	return l.hasher.Hash(&tx.Hash, l.hasher.HashArray(pointers(tx.Signature)...))
}

// ReceiptLeaf hashes the receipt fields with the legacy hasher. Legacy blocks
// carry no receipt commitment, the leaf exists for completeness of custom
// schemes.
func (l *Legacy) ReceiptLeaf(receipt *starknet.Receipt) *felt.Felt {
	return receiptLeaf(l.hasher, receipt)
}

// EventLeaf is h_array(from, h_array(keys), h_array(data)). Legacy event
// leaves do not bind the emitting transaction.
func (l *Legacy) EventLeaf(event *starknet.Event, _ *felt.Felt) *felt.Felt {
	return l.hasher.HashArray(
		&event.From,
		l.hasher.HashArray(pointers(event.Keys)...),
		l.hasher.HashArray(pointers(event.Data)...),
	)
}

func (l *Legacy) StateDiffLeaf(entry *starknet.StateDiffEntry) *felt.Felt {
	return stateDiffLeaf(l.hasher, entry)
}

// Poseidon is the leaf encoding of blocks from 0.13.2 on.
type Poseidon struct {
	hasher hash.Hasher
}

var _ module.LeafEncoder = (*Poseidon)(nil)

// NewPoseidon returns the 0.13.2 encoding over the given hasher. Starknet
// uses Poseidon.
func NewPoseidon(hasher hash.Hasher) *Poseidon {
	return &Poseidon{hasher: hasher}
}

func (p *Poseidon) Name() string { return "v0.13.2-" + p.hasher.Name() }

// TransactionLeaf is h_array(tx_hash, signature...). An empty signature is
// encoded as a single zero.
func (p *Poseidon) TransactionLeaf(tx *starknet.Transaction) *felt.Felt {
	elems := make([]*felt.Felt, 0, 1+max(len(tx.Signature), 1))
	elems = append(elems, &tx.Hash)
	if len(tx.Signature) == 0 {
		elems = append(elems, new(felt.Felt))
	} else {
		elems = append(elems, pointers(tx.Signature)...)
	}
	return p.hasher.HashArray(elems...)
}

func (p *Poseidon) ReceiptLeaf(receipt *starknet.Receipt) *felt.Felt {
	return receiptLeaf(p.hasher, receipt)
}

// EventLeaf is h_array(from, tx_hash, len(keys), keys..., len(data), data...).
func (p *Poseidon) EventLeaf(event *starknet.Event, txHash *felt.Felt) *felt.Felt {
	elems := make([]*felt.Felt, 0, 4+len(event.Keys)+len(event.Data))
	elems = append(elems, &event.From, txHash, length(len(event.Keys)))
	elems = append(elems, pointers(event.Keys)...)
	elems = append(elems, length(len(event.Data)))
	elems = append(elems, pointers(event.Data)...)
	return p.hasher.HashArray(elems...)
}

func (p *Poseidon) StateDiffLeaf(entry *starknet.StateDiffEntry) *felt.Felt {
	return stateDiffLeaf(p.hasher, entry)
}

// receiptLeaf is h_array(tx_hash, actual_fee, messages_hash,
// revert_reason_hash, l2_gas, l1_gas, l1_data_gas).
func receiptLeaf(hasher hash.Hasher, receipt *starknet.Receipt) *felt.Felt {
	return hasher.HashArray(
		&receipt.TransactionHash,
		&receipt.ActualFee,
		messagesHash(hasher, receipt.Messages),
		RevertReasonHash(receipt.RevertReason),
		new(felt.Felt).SetUint64(receipt.L2Gas),
		new(felt.Felt).SetUint64(receipt.L1Gas),
		new(felt.Felt).SetUint64(receipt.L1DataGas),
	)
}

// messagesHash is h_array(n, from_0, to_0, len(payload_0), payload_0..., ...).
func messagesHash(hasher hash.Hasher, messages []starknet.MessageToL1) *felt.Felt {
	elems := []*felt.Felt{length(len(messages))}
	for i := range messages {
		msg := &messages[i]
		elems = append(elems, &msg.From, &msg.To, length(len(msg.Payload)))
		elems = append(elems, pointers(msg.Payload)...)
	}
	return hasher.HashArray(elems...)
}

func stateDiffLeaf(hasher hash.Hasher, entry *starknet.StateDiffEntry) *felt.Felt {
	return hasher.HashArray(
		new(felt.Felt).SetUint64(uint64(entry.Kind)),
		&entry.Address,
		&entry.Key,
		&entry.Value,
	)
}

// RevertReasonHash is the Starknet keccak of the revert reason: keccak256
// truncated to its low 250 bits. Successful transactions hash to zero.
func RevertReasonHash(reason string) *felt.Felt {
	if reason == "" {
		return new(felt.Felt)
	}
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write([]byte(reason))
	digest := h.Sum(nil)
	digest[0] &= 0x03
	return new(felt.Felt).SetBytes(digest)
}

func length(n int) *felt.Felt {
	return new(felt.Felt).SetUint64(uint64(n))
}

// pointers returns pointers into elems, without copying the elements.
func pointers(elems []felt.Felt) []*felt.Felt {
	out := make([]*felt.Felt, len(elems))
	for i := range elems {
		out[i] = &elems[i]
	}
	return out
}
