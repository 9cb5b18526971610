package utils

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Recovery is a decorator to recover from panics in transactions. A panic
// becomes an ErrPanic error and is logged together with the message path.
type Recovery struct{}

var _ barter.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx barter.Context, store barter.KVStore, tx barter.Tx, next barter.Checker) (_ *barter.CheckResult, err error) {
	defer r.recover(ctx, tx, &err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx barter.Context, store barter.KVStore, tx barter.Tx, next barter.Deliverer) (_ *barter.DeliverResult, err error) {
	defer r.recover(ctx, tx, &err)
	return next.Deliver(ctx, store, tx)
}

// recover must be deferred directly.
func (Recovery) recover(ctx barter.Context, tx barter.Tx, err *error) {
	p := recover()
	if p == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", p)
	barter.GetLogger(ctx).Error("panic recovered",
		"path", barter.GetPath(tx),
		"panic", p)
}
