package weavetest

import "github.com/iov-one/barter"

// Decorator is a test double of barter.Decorator that stands in front of a
// handler, usually an escrow router.
//
// When Auth is set, the wrapped handler is called with a context that
// authenticates exactly the Signers. A transaction can be signed this way
// without preparing the context in every test case.
//
// CheckErr and DeliverErr reject the transaction before the wrapped handler
// is reached. Each call is counted, whatever its result.
type Decorator struct {
	Auth    *CtxAuth
	Signers []barter.Address

	CheckErr   error
	DeliverErr error

	checkCall   int
	deliverCall int
}

var _ barter.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Checker) (*barter.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(d.sign(ctx), db, tx)
}

func (d *Decorator) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Deliverer) (*barter.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(d.sign(ctx), db, tx)
}

func (d *Decorator) sign(ctx barter.Context) barter.Context {
	if d.Auth == nil {
		return ctx
	}
	return d.Auth.SetAddresses(ctx, d.Signers...)
}

func (d *Decorator) CheckCallCount() int   { return d.checkCall }
func (d *Decorator) DeliverCallCount() int { return d.deliverCall }
func (d *Decorator) CallCount() int        { return d.checkCall + d.deliverCall }

// Decorate returns a handler that passes every transaction through d
// before h.
func Decorate(h barter.Handler, d barter.Decorator) barter.Handler {
	return decorated{next: h, dec: d}
}

type decorated struct {
	next barter.Handler
	dec  barter.Decorator
}

func (d decorated) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	return d.dec.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	return d.dec.Deliver(ctx, db, tx, d.next)
}
