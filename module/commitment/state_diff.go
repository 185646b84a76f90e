package commitment

import (
	"slices"

	"github.com/NethermindEth/juno/core/felt"

	"github.com/onflow/starkhash/model/hash"
	"github.com/onflow/starkhash/model/starknet"
)

// StateDiffStrategy commits to a state diff as a whole rather than one leaf
// per entry.
type StateDiffStrategy interface {
	Name() string

	// CommitStateDiff returns the commitment over entries. The entries are
	// not modified and may be in any order.
	CommitStateDiff(entries []starknet.StateDiffEntry) (*felt.Felt, error)
}

// StructuredStateDiff is the Starknet state diff commitment from 0.13.2 on.
// The entries are grouped by kind into sections, every section lists its
// item count followed by its items ordered by address:
//
//	deployed   = h_array(n, address, class_hash, ...)   deployed and replaced classes
//	declared   = h_array(n, class_hash, compiled_class_hash, ...)
//	deprecated = h_array(n, class_hash, ...)
//	storage    = h_array(n, address, m, key, value, ..., n', address, nonce, ...)
//	root       = h_array(0, deployed, declared, deprecated, 1, 0, storage)
//
// Declared and deprecated classes carry their class hash in Address.
type StructuredStateDiff struct {
	Hasher hash.Hasher
}

var _ StateDiffStrategy = StructuredStateDiff{}

func (s StructuredStateDiff) Name() string { return "structured-" + s.Hasher.Name() }

// CommitStateDiff groups and hashes the entries.
//
// Expected errors:
//   - starknet.InvalidBodyError if an entry has an unknown kind, an entry is
//     repeated, or a contract is both deployed and replaced
func (s StructuredStateDiff) CommitStateDiff(entries []starknet.StateDiffEntry) (*felt.Felt, error) {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b starknet.StateDiffEntry) int { return a.Compare(&b) })

	var classes, declared, deprecated, storage, nonces []*starknet.StateDiffEntry
	for i := range sorted {
		entry := &sorted[i]
		if i > 0 && sorted[i-1].Compare(entry) == 0 {
			return nil, starknet.NewInvalidBodyErrorf("state diff entry %s of %s is repeated", entry.Kind, entry.Address.String())
		}
		switch entry.Kind {
		case starknet.StorageUpdate:
			storage = append(storage, entry)
		case starknet.NonceUpdate:
			nonces = append(nonces, entry)
		case starknet.DeployedContract, starknet.ReplacedClass:
			classes = append(classes, entry)
		case starknet.DeclaredClass:
			declared = append(declared, entry)
		case starknet.DeprecatedDeclaredClass:
			deprecated = append(deprecated, entry)
		default:
			return nil, starknet.NewInvalidBodyErrorf("unknown state diff kind %d", entry.Kind)
		}
	}

	// deployed and replaced contracts form a single section
	slices.SortStableFunc(classes, func(a, b *starknet.StateDiffEntry) int { return a.Address.Cmp(&b.Address) })
	for i := 1; i < len(classes); i++ {
		if classes[i-1].Address.Equal(&classes[i].Address) {
			return nil, starknet.NewInvalidBodyErrorf("contract %s is both deployed and replaced", classes[i].Address.String())
		}
	}

	deployedHash := s.Hasher.HashArray(section(classes, addressValue)...)
	declaredHash := s.Hasher.HashArray(section(declared, addressValue)...)
	deprecatedHash := s.Hasher.HashArray(section(deprecated, func(e *starknet.StateDiffEntry) []*felt.Felt {
		return []*felt.Felt{&e.Address}
	})...)
	storageHash := s.Hasher.HashArray(append(storageSection(storage), section(nonces, addressValue)...)...)

	return s.Hasher.HashArray(
		&felt.Zero, // state diff version
		deployedHash,
		declaredHash,
		deprecatedHash,
		new(felt.Felt).SetUint64(1), // number of data availability modes
		&felt.Zero,                  // L1 data availability mode
		storageHash,
	), nil
}

func addressValue(e *starknet.StateDiffEntry) []*felt.Felt {
	return []*felt.Felt{&e.Address, &e.Value}
}

// section returns the item count followed by the fields of every item.
func section(items []*starknet.StateDiffEntry, fields func(*starknet.StateDiffEntry) []*felt.Felt) []*felt.Felt {
	out := []*felt.Felt{new(felt.Felt).SetUint64(uint64(len(items)))}
	for _, item := range items {
		out = append(out, fields(item)...)
	}
	return out
}

// storageSection lists the updated contracts, each with its number of
// updates and the updated key value pairs. updates is sorted by address and
// key.
func storageSection(updates []*starknet.StateDiffEntry) []*felt.Felt {
	var contracts uint64
	out := []*felt.Felt{nil}
	for start := 0; start < len(updates); {
		end := start
		for end < len(updates) && updates[end].Address.Equal(&updates[start].Address) {
			end++
		}
		contracts++
		out = append(out, &updates[start].Address, new(felt.Felt).SetUint64(uint64(end-start)))
		for _, update := range updates[start:end] {
			out = append(out, &update.Key, &update.Value)
		}
		start = end
	}
	out[0] = new(felt.Felt).SetUint64(contracts)
	return out
}
