package commitment

import (
	"fmt"

	"github.com/NethermindEth/juno/core/felt"

	"github.com/onflow/starkhash/model/hash"
)

// SparseMerkle is a perfect binary Merkle tree of fixed height. Leaf i sits at
// position i; absent positions hold Padding. Interior nodes are h(left, right).
//
// Subtrees without any leaf are never materialised: their hash only depends on
// their height, d(0) = Padding and d(k+1) = h(d(k), d(k)).
type SparseMerkle struct {
	Hasher  hash.Hasher
	Height  uint8
	Padding felt.Felt
}

var _ Strategy = SparseMerkle{}

func (s SparseMerkle) Name() string {
	return fmt.Sprintf("sparse-merkle-%d-%s", s.Height, s.Hasher.Name())
}

type positioned struct {
	index uint64
	hash  *felt.Felt
}

// Commit returns the tree root. The empty sequence commits to d(Height).
func (s SparseMerkle) Commit(leaves []*felt.Felt) (*felt.Felt, error) {
	if s.Height > 64 {
		return nil, fmt.Errorf("sparse merkle height %d exceeds 64", s.Height)
	}
	if s.Height < 64 && uint64(len(leaves)) > uint64(1)<<s.Height {
		return nil, fmt.Errorf("%d leaves do not fit a sparse merkle tree of height %d", len(leaves), s.Height)
	}

	defaults := s.defaults()
	if len(leaves) == 0 {
		return defaults[s.Height], nil
	}

	level := make([]positioned, len(leaves))
	for i, l := range leaves {
		level[i] = positioned{index: uint64(i), hash: l}
	}

	for height := uint8(0); height < s.Height; height++ {
		next := make([]positioned, 0, (len(level)+1)/2)
		for i := 0; i < len(level); {
			node := level[i]
			var parent *felt.Felt
			switch {
			case node.index%2 == 1:
				parent = s.Hasher.Hash(defaults[height], node.hash)
				i++
			case i+1 < len(level) && level[i+1].index == node.index+1:
				parent = s.Hasher.Hash(node.hash, level[i+1].hash)
				i += 2
			default:
				parent = s.Hasher.Hash(node.hash, defaults[height])
				i++
			}
			next = append(next, positioned{index: node.index / 2, hash: parent})
		}
		level = next
	}

	return level[0].hash, nil
}

// defaults returns the hash of an empty subtree for every height up to and
// including the tree height.
func (s SparseMerkle) defaults() []*felt.Felt {
	defaults := make([]*felt.Felt, int(s.Height)+1)
	padding := s.Padding
	defaults[0] = &padding
	for i := 1; i <= int(s.Height); i++ {
		defaults[i] = s.Hasher.Hash(defaults[i-1], defaults[i-1])
	}
	return defaults
}
