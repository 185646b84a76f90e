package encodable

import (
	"fmt"

	"github.com/NethermindEth/juno/core/felt"
)

// Felt is the canonical 32 byte big endian form of a field element.
type Felt [32]byte

func FromFelt(f *felt.Felt) Felt {
	return f.Bytes()
}

// ToFelt returns the field element, rejecting values outside the field.
func (f Felt) ToFelt() (felt.Felt, error) {
	var x felt.Felt
	x.SetBytes(f[:])
	if x.Bytes() != f {
		return felt.Felt{}, fmt.Errorf("non canonical field element %x", f[:])
	}
	return x, nil
}

func fromFelts(fs []felt.Felt) []Felt {
	return mapSlice(fs, func(f *felt.Felt) (Felt, error) {
		return FromFelt(f), nil
	})
}

func toFelts(fs []Felt) ([]felt.Felt, error) {
	return mapSliceErr(fs, func(f *Felt) (felt.Felt, error) {
		return f.ToFelt()
	})
}

// mapSlice converts every element of src. Nil stays nil.
func mapSlice[T, U any](src []T, convert func(*T) (U, error)) []U {
	out, _ := mapSliceErr(src, convert)
	return out
}

func mapSliceErr[T, U any](src []T, convert func(*T) (U, error)) ([]U, error) {
	if src == nil {
		return nil, nil
	}
	out := make([]U, len(src))
	for i := range src {
		v, err := convert(&src[i])
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
