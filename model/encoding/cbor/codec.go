package cbor

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/onflow/starkhash/model/encoding"
)

// EncMode is the deterministic CBOR encoding used for blocks.
var EncMode = func() cbor.EncMode {
	options := cbor.CoreDetEncOptions()
	encMode, err := options.EncMode()
	if err != nil {
		panic(fmt.Errorf("could not initialize cbor encoding mode: %w", err))
	}
	return encMode
}()

// DecMode rejects duplicate map keys and bounds nesting.
var DecMode = func() cbor.DecMode {
	options := cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxNestedLevels:  16,
		MaxArrayElements: 1 << 24,
	}
	decMode, err := options.DecMode()
	if err != nil {
		panic(fmt.Errorf("could not initialize cbor decoding mode: %w", err))
	}
	return decMode
}()

type Encoder struct{}

var _ encoding.Encoder = (*Encoder)(nil)

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Encode(val interface{}) ([]byte, error) {
	return EncMode.Marshal(val)
}

func (e *Encoder) Decode(b []byte, val interface{}) error {
	return DecMode.Unmarshal(b, val)
}

func (e *Encoder) MustEncode(val interface{}) []byte {
	b, err := e.Encode(val)
	if err != nil {
		panic(err)
	}
	return b
}

func (e *Encoder) MustDecode(b []byte, val interface{}) {
	err := e.Decode(b, val)
	if err != nil {
		panic(err)
	}
}
