package cash

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// Wallet holds the native currency balance of a single address.
type Wallet struct {
	Amount uint64
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Marshal() ([]byte, error) {
	return barter.Marshal(w)
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return barter.Unmarshal(raw, w)
}

// Validate rejects empty wallets. An address without funds has no wallet.
func (w *Wallet) Validate() error {
	if w.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "empty wallet")
	}
	return nil
}

// NewBucket returns a bucket that stores wallets by their owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("cash", &Wallet{})
}
