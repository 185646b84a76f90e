package encodable

import (
	"fmt"

	"github.com/NethermindEth/juno/core/felt"

	"github.com/onflow/starkhash/model/starknet"
)

// decoder converts wire felts and keeps the first failure.
type decoder struct {
	err error
}

func (d *decoder) felt(dst *felt.Felt, src Felt, field string) {
	if d.err != nil {
		return
	}
	f, err := src.ToFelt()
	if err != nil {
		d.err = fmt.Errorf("%s: %w", field, err)
		return
	}
	*dst = f
}

func (d *decoder) felts(src []Felt, field string) []felt.Felt {
	if d.err != nil {
		return nil
	}
	out, err := toFelts(src)
	if err != nil {
		d.err = fmt.Errorf("%s: %w", field, err)
	}
	return out
}

func (d *decoder) gasPrice(dst *starknet.GasPrice, src GasPrice, field string) {
	d.felt(&dst.PriceInWei, src.PriceInWei, field+".price_in_wei")
	d.felt(&dst.PriceInFri, src.PriceInFri, field+".price_in_fri")
}
