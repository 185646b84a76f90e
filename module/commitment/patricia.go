package commitment

import (
	"fmt"
	"math/bits"
	"sort"
	"sync"

	"github.com/NethermindEth/juno/core/felt"

	"github.com/onflow/starkhash/model/hash"
)

// parallelThreshold is the minimal number of leaves in a subtree for its left
// branch to be hashed in a separate goroutine.
const parallelThreshold = 1024

// Patricia is the binary Merkle-Patricia trie Starknet commits block bodies
// with. Leaf i is stored under key i in a trie of fixed height; zero leaves
// are absent. Chains of single-child nodes are compacted into edges:
//
//	leaf   = value
//	binary = h(left, right)
//	edge   = h(child, path) + length
//
// The empty trie commits to zero.
type Patricia struct {
	Hasher hash.Hasher
	Height uint8
}

var _ Strategy = Patricia{}

func (p Patricia) Name() string {
	return fmt.Sprintf("patricia-%d-%s", p.Height, p.Hasher.Name())
}

func (p Patricia) Commit(leaves []*felt.Felt) (*felt.Felt, error) {
	if p.Height == 0 || p.Height > 64 {
		return nil, fmt.Errorf("patricia height must be in [1, 64], got %d", p.Height)
	}
	if p.Height < 64 && uint64(len(leaves)) > uint64(1)<<p.Height {
		return nil, fmt.Errorf("%d leaves do not fit a patricia trie of height %d", len(leaves), p.Height)
	}

	keys := make([]uint64, 0, len(leaves))
	values := make([]*felt.Felt, 0, len(leaves))
	for i, l := range leaves {
		if l.IsZero() {
			continue
		}
		keys = append(keys, uint64(i))
		values = append(values, l)
	}
	if len(keys) == 0 {
		return new(felt.Felt), nil
	}

	return p.node(keys, values, p.Height), nil
}

// node returns the hash of the subtree of the given height holding keys.
// keys are sorted, unique, non-empty and agree on all bits above height.
func (p Patricia) node(keys []uint64, values []*felt.Felt, height uint8) *felt.Felt {
	if len(keys) == 1 {
		if height == 0 {
			return values[0]
		}
		return p.edge(values[0], keys[0]&lowBits(height), height)
	}

	// the highest differing bit is where the subtree branches; everything
	// above it, down from height, is a shared edge
	branch := uint8(bits.Len64((keys[0] ^ keys[len(keys)-1]) & lowBits(height)))
	split := sort.Search(len(keys), func(i int) bool {
		return keys[i]>>(branch-1)&1 == 1
	})

	var left, right *felt.Felt
	if len(keys) >= parallelThreshold {
		wg := sync.WaitGroup{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			left = p.node(keys[:split], values[:split], branch-1)
		}()
		right = p.node(keys[split:], values[split:], branch-1)
		wg.Wait()
	} else {
		left = p.node(keys[:split], values[:split], branch-1)
		right = p.node(keys[split:], values[split:], branch-1)
	}

	binary := p.Hasher.Hash(left, right)
	length := height - branch
	if length == 0 {
		return binary
	}
	path := (keys[0] & lowBits(height)) >> branch
	return p.edge(binary, path, length)
}

func (p Patricia) edge(child *felt.Felt, path uint64, length uint8) *felt.Felt {
	h := p.Hasher.Hash(child, new(felt.Felt).SetUint64(path))
	return new(felt.Felt).Add(h, new(felt.Felt).SetUint64(uint64(length)))
}

// lowBits returns a mask of the n lowest bits.
func lowBits(n uint8) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<n - 1
}
