package starknet

// Category is one of the body collections a block commits to.
type Category int

const (
	CategoryTransactions Category = iota
	CategoryEvents
	CategoryReceipts
	CategoryStateDiff
)

// Categories lists every category in commitment order.
var Categories = []Category{
	CategoryTransactions,
	CategoryEvents,
	CategoryReceipts,
	CategoryStateDiff,
}

func (c Category) String() string {
	switch c {
	case CategoryTransactions:
		return "transactions"
	case CategoryEvents:
		return "events"
	case CategoryReceipts:
		return "receipts"
	case CategoryStateDiff:
		return "state_diff"
	}
	return "unknown"
}

// CommitmentField is the header field holding the commitment of c.
func (c Category) CommitmentField() string {
	switch c {
	case CategoryTransactions:
		return "transaction_commitment"
	case CategoryEvents:
		return "event_commitment"
	case CategoryReceipts:
		return "receipt_commitment"
	case CategoryStateDiff:
		return "state_diff_commitment"
	}
	return "unknown"
}
