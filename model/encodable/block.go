package encodable

import (
	"fmt"

	"github.com/onflow/starkhash/model/starknet"
)

// Block is the wire form of a sealed block. Fields are encoded positionally
// by the CBOR codec.
type Block struct {
	_      struct{} `cbor:",toarray"`
	Header Header
	Hash   Felt
	Body   Body
}

type Header struct {
	_                     struct{} `cbor:",toarray"`
	Number                uint64
	ParentHash            Felt
	GlobalStateRoot       Felt
	SequencerAddress      Felt
	Timestamp             uint64
	ProtocolVersion       string
	L1GasPrice            GasPrice
	L1DataGasPrice        GasPrice
	L2GasPrice            GasPrice
	L1DAMode              uint8
	TransactionCount      uint64
	EventCount            uint64
	StateDiffLength       uint64
	TransactionCommitment Felt
	EventCommitment       Felt
	ReceiptCommitment     Felt
	StateDiffCommitment   Felt
}

type GasPrice struct {
	_          struct{} `cbor:",toarray"`
	PriceInWei Felt
	PriceInFri Felt
}

type Body struct {
	_            struct{} `cbor:",toarray"`
	Transactions []Transaction
	Receipts     []Receipt
	Events       []Event
	StateDiff    []StateDiffEntry
}

type Transaction struct {
	_         struct{} `cbor:",toarray"`
	Hash      Felt
	Signature []Felt
}

type MessageToL1 struct {
	_       struct{} `cbor:",toarray"`
	From    Felt
	To      Felt
	Payload []Felt
}

type Receipt struct {
	_               struct{} `cbor:",toarray"`
	TransactionHash Felt
	ActualFee       Felt
	Messages        []MessageToL1
	RevertReason    string
	L1Gas           uint64
	L1DataGas       uint64
	L2Gas           uint64
}

type Event struct {
	_                struct{} `cbor:",toarray"`
	TransactionIndex uint64
	Order            uint64
	From             Felt
	Keys             []Felt
	Data             []Felt
}

type StateDiffEntry struct {
	_       struct{} `cbor:",toarray"`
	Kind    uint8
	Address Felt
	Key     Felt
	Value   Felt
}

// FromBlock returns the wire form of b.
func FromBlock(b *starknet.Block) Block {
	header := b.Header()
	hash := b.Hash()
	body := b.Body()
	return Block{
		Header: fromHeader(&header),
		Hash:   FromFelt(&hash),
		Body:   fromBody(&body),
	}
}

// ToBlock seals the decoded block. The hash is taken as it is; whether it
// matches the block is up to chain validation.
func (b *Block) ToBlock() (*starknet.Block, error) {
	header, err := b.Header.toHeader()
	if err != nil {
		return nil, fmt.Errorf("invalid header: %w", err)
	}
	hash, err := b.Hash.ToFelt()
	if err != nil {
		return nil, fmt.Errorf("invalid block hash: %w", err)
	}
	body, err := b.Body.toBody()
	if err != nil {
		return nil, fmt.Errorf("invalid body of block %d: %w", header.Number, err)
	}
	return starknet.NewBlock(header, hash, body), nil
}

// FromChain returns the wire form of every block.
func FromChain(blocks []*starknet.Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = FromBlock(b)
	}
	return out
}

// ToChain seals every decoded block.
func ToChain(blocks []Block) ([]*starknet.Block, error) {
	out := make([]*starknet.Block, len(blocks))
	for i := range blocks {
		b, err := blocks[i].ToBlock()
		if err != nil {
			return nil, fmt.Errorf("could not decode block at index %d: %w", i, err)
		}
		out[i] = b
	}
	return out, nil
}

func fromHeader(h *starknet.Header) Header {
	return Header{
		Number:                h.Number,
		ParentHash:            FromFelt(&h.ParentHash),
		GlobalStateRoot:       FromFelt(&h.GlobalStateRoot),
		SequencerAddress:      FromFelt(&h.SequencerAddress),
		Timestamp:             h.Timestamp,
		ProtocolVersion:       h.ProtocolVersion.String(),
		L1GasPrice:            fromGasPrice(&h.L1GasPrice),
		L1DataGasPrice:        fromGasPrice(&h.L1DataGasPrice),
		L2GasPrice:            fromGasPrice(&h.L2GasPrice),
		L1DAMode:              uint8(h.L1DAMode),
		TransactionCount:      h.TransactionCount,
		EventCount:            h.EventCount,
		StateDiffLength:       h.StateDiffLength,
		TransactionCommitment: FromFelt(&h.TransactionCommitment),
		EventCommitment:       FromFelt(&h.EventCommitment),
		ReceiptCommitment:     FromFelt(&h.ReceiptCommitment),
		StateDiffCommitment:   FromFelt(&h.StateDiffCommitment),
	}
}

func (h *Header) toHeader() (starknet.Header, error) {
	version, err := starknet.ParseProtocolVersion(h.ProtocolVersion)
	if err != nil {
		return starknet.Header{}, err
	}
	if h.L1DAMode > uint8(starknet.Blob) {
		return starknet.Header{}, fmt.Errorf("unknown l1 da mode %d", h.L1DAMode)
	}

	header := starknet.Header{
		Number:           h.Number,
		Timestamp:        h.Timestamp,
		ProtocolVersion:  version,
		L1DAMode:         starknet.L1DAMode(h.L1DAMode),
		TransactionCount: h.TransactionCount,
		EventCount:       h.EventCount,
		StateDiffLength:  h.StateDiffLength,
	}

	var d decoder
	d.felt(&header.ParentHash, h.ParentHash, "parent_hash")
	d.felt(&header.GlobalStateRoot, h.GlobalStateRoot, "global_state_root")
	d.felt(&header.SequencerAddress, h.SequencerAddress, "sequencer_address")
	d.gasPrice(&header.L1GasPrice, h.L1GasPrice, "l1_gas_price")
	d.gasPrice(&header.L1DataGasPrice, h.L1DataGasPrice, "l1_data_gas_price")
	d.gasPrice(&header.L2GasPrice, h.L2GasPrice, "l2_gas_price")
	d.felt(&header.TransactionCommitment, h.TransactionCommitment, "transaction_commitment")
	d.felt(&header.EventCommitment, h.EventCommitment, "event_commitment")
	d.felt(&header.ReceiptCommitment, h.ReceiptCommitment, "receipt_commitment")
	d.felt(&header.StateDiffCommitment, h.StateDiffCommitment, "state_diff_commitment")
	return header, d.err
}

func fromGasPrice(p *starknet.GasPrice) GasPrice {
	return GasPrice{
		PriceInWei: FromFelt(&p.PriceInWei),
		PriceInFri: FromFelt(&p.PriceInFri),
	}
}

func fromBody(b *starknet.Body) Body {
	return Body{
		Transactions: mapSlice(b.Transactions, func(tx *starknet.Transaction) (Transaction, error) {
			return Transaction{
				Hash:      FromFelt(&tx.Hash),
				Signature: fromFelts(tx.Signature),
			}, nil
		}),
		Receipts: mapSlice(b.Receipts, func(r *starknet.Receipt) (Receipt, error) {
			return Receipt{
				TransactionHash: FromFelt(&r.TransactionHash),
				ActualFee:       FromFelt(&r.ActualFee),
				Messages: mapSlice(r.Messages, func(m *starknet.MessageToL1) (MessageToL1, error) {
					return MessageToL1{
						From:    FromFelt(&m.From),
						To:      FromFelt(&m.To),
						Payload: fromFelts(m.Payload),
					}, nil
				}),
				RevertReason: r.RevertReason,
				L1Gas:        r.L1Gas,
				L1DataGas:    r.L1DataGas,
				L2Gas:        r.L2Gas,
			}, nil
		}),
		Events: mapSlice(b.Events, func(ev *starknet.Event) (Event, error) {
			return Event{
				TransactionIndex: ev.TransactionIndex,
				Order:            ev.Order,
				From:             FromFelt(&ev.From),
				Keys:             fromFelts(ev.Keys),
				Data:             fromFelts(ev.Data),
			}, nil
		}),
		StateDiff: mapSlice(b.StateDiff, func(e *starknet.StateDiffEntry) (StateDiffEntry, error) {
			return StateDiffEntry{
				Kind:    uint8(e.Kind),
				Address: FromFelt(&e.Address),
				Key:     FromFelt(&e.Key),
				Value:   FromFelt(&e.Value),
			}, nil
		}),
	}
}

func (b *Body) toBody() (starknet.Body, error) {
	var (
		body starknet.Body
		err  error
	)

	body.Transactions, err = mapSliceErr(b.Transactions, func(tx *Transaction) (starknet.Transaction, error) {
		var d decoder
		out := starknet.Transaction{}
		d.felt(&out.Hash, tx.Hash, "hash")
		out.Signature = d.felts(tx.Signature, "signature")
		return out, d.err
	})
	if err != nil {
		return starknet.Body{}, fmt.Errorf("transactions: %w", err)
	}

	body.Receipts, err = mapSliceErr(b.Receipts, func(r *Receipt) (starknet.Receipt, error) {
		var d decoder
		out := starknet.Receipt{
			RevertReason: r.RevertReason,
			L1Gas:        r.L1Gas,
			L1DataGas:    r.L1DataGas,
			L2Gas:        r.L2Gas,
		}
		d.felt(&out.TransactionHash, r.TransactionHash, "transaction_hash")
		d.felt(&out.ActualFee, r.ActualFee, "actual_fee")
		messages, err := mapSliceErr(r.Messages, func(m *MessageToL1) (starknet.MessageToL1, error) {
			var d decoder
			var msg starknet.MessageToL1
			d.felt(&msg.From, m.From, "from")
			d.felt(&msg.To, m.To, "to")
			msg.Payload = d.felts(m.Payload, "payload")
			return msg, d.err
		})
		if err != nil {
			return out, fmt.Errorf("messages: %w", err)
		}
		out.Messages = messages
		return out, d.err
	})
	if err != nil {
		return starknet.Body{}, fmt.Errorf("receipts: %w", err)
	}

	body.Events, err = mapSliceErr(b.Events, func(ev *Event) (starknet.Event, error) {
		var d decoder
		out := starknet.Event{
			TransactionIndex: ev.TransactionIndex,
			Order:            ev.Order,
		}
		d.felt(&out.From, ev.From, "from")
		out.Keys = d.felts(ev.Keys, "keys")
		out.Data = d.felts(ev.Data, "data")
		return out, d.err
	})
	if err != nil {
		return starknet.Body{}, fmt.Errorf("events: %w", err)
	}

	body.StateDiff, err = mapSliceErr(b.StateDiff, func(e *StateDiffEntry) (starknet.StateDiffEntry, error) {
		if e.Kind > uint8(starknet.DeprecatedDeclaredClass) {
			return starknet.StateDiffEntry{}, fmt.Errorf("unknown state diff kind %d", e.Kind)
		}
		var d decoder
		out := starknet.StateDiffEntry{Kind: starknet.StateDiffKind(e.Kind)}
		d.felt(&out.Address, e.Address, "address")
		d.felt(&out.Key, e.Key, "key")
		d.felt(&out.Value, e.Value, "value")
		return out, d.err
	})
	if err != nil {
		return starknet.Body{}, fmt.Errorf("state diff: %w", err)
	}

	return body, nil
}
