package cash

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// Controller is the functionality needed by other extensions to move funds.
type Controller interface {
	// Balance returns the amount held by given address. An unknown
	// address holds nothing.
	Balance(db barter.ReadOnlyKVStore, addr barter.Address) (uint64, error)

	// MoveCoins moves a positive amount from src to dest. It fails with
	// ErrInsufficientAmount if src does not hold enough.
	MoveCoins(db barter.KVStore, src, dest barter.Address, amount uint64) error

	// MoveAll moves the whole balance of src to dest and returns the moved
	// amount. Moving an empty balance is a no-op.
	MoveAll(db barter.KVStore, src, dest barter.Address) (uint64, error)

	// IssueCoins creates a positive amount on the dest wallet.
	IssueCoins(db barter.KVStore, dest barter.Address, amount uint64) error
}

// BaseController is a simple implementation of Controller.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the cash bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) Balance(db barter.ReadOnlyKVStore, addr barter.Address) (uint64, error) {
	if err := addr.Validate(); err != nil {
		return 0, errors.Wrap(err, "address")
	}
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return w.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, errors.Wrap(err, "cannot load wallet")
	}
}

func (c BaseController) MoveCoins(db barter.KVStore, src, dest barter.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	have, err := c.Balance(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if have < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "have %d, need %d", have, amount)
	}
	if src.Equals(dest) {
		return nil
	}
	if err := c.set(db, src, have-amount); err != nil {
		return err
	}
	return c.add(db, dest, amount)
}

func (c BaseController) MoveAll(db barter.KVStore, src, dest barter.Address) (uint64, error) {
	have, err := c.Balance(db, src)
	if err != nil {
		return 0, errors.Wrap(err, "source")
	}
	if have == 0 {
		return 0, nil
	}
	if err := c.MoveCoins(db, src, dest, have); err != nil {
		return 0, err
	}
	return have, nil
}

func (c BaseController) IssueCoins(db barter.KVStore, dest barter.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	return c.add(db, dest, amount)
}

func (c BaseController) add(db barter.KVStore, addr barter.Address, amount uint64) error {
	have, err := c.Balance(db, addr)
	if err != nil {
		return err
	}
	if have+amount < have {
		return errors.Wrapf(errors.ErrOverflow, "wallet %s", addr)
	}
	return c.set(db, addr, have+amount)
}

// set stores the balance, removing the wallet when it becomes empty.
func (c BaseController) set(db barter.KVStore, addr barter.Address, amount uint64) error {
	if amount == 0 {
		if err := c.bucket.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return errors.Wrap(err, "cannot delete wallet")
		}
		return nil
	}
	if _, err := c.bucket.Put(db, addr, &Wallet{Amount: amount}); err != nil {
		return errors.Wrap(err, "cannot save wallet")
	}
	return nil
}
