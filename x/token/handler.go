package token

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r barter.Registry, s *Service) {
	r.Handle(pathCreateMint, operationHandler{fn: func(ctx barter.Context, db barter.KVStore, tx barter.Tx) ([]byte, error) {
		var msg CreateMintMsg
		if err := barter.LoadMsg(tx, &msg); err != nil {
			return nil, errors.Wrap(err, "load msg")
		}
		return msg.Mint, s.CreateMint(ctx, db, msg.Payer, msg.Mint, msg.Authority, msg.Decimals)
	}})
	r.Handle(pathMintTo, operationHandler{fn: func(ctx barter.Context, db barter.KVStore, tx barter.Tx) ([]byte, error) {
		var msg MintToMsg
		if err := barter.LoadMsg(tx, &msg); err != nil {
			return nil, errors.Wrap(err, "load msg")
		}
		return nil, s.MintTo(ctx, db, msg.Mint, msg.Account, msg.Amount)
	}})
	r.Handle(pathCreateAccount, operationHandler{fn: func(ctx barter.Context, db barter.KVStore, tx barter.Tx) ([]byte, error) {
		var msg CreateAccountMsg
		if err := barter.LoadMsg(tx, &msg); err != nil {
			return nil, errors.Wrap(err, "load msg")
		}
		return s.CreateCanonical(ctx, db, msg.Payer, msg.Owner, msg.Mint)
	}})
	r.Handle(pathTransfer, operationHandler{fn: func(ctx barter.Context, db barter.KVStore, tx barter.Tx) ([]byte, error) {
		var msg TransferMsg
		if err := barter.LoadMsg(tx, &msg); err != nil {
			return nil, errors.Wrap(err, "load msg")
		}
		return nil, s.Transfer(ctx, db, msg.Source, msg.Destination, msg.Owner, msg.Amount)
	}})
}

// operationHandler executes a single service operation. Check runs the
// operation on a cache that is always discarded.
type operationHandler struct {
	fn func(barter.Context, barter.KVStore, barter.Tx) ([]byte, error)
}

var _ barter.Handler = operationHandler{}

func (h operationHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	cstore, ok := db.(barter.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrDatabase, "store cannot be cache wrapped")
	}
	cache := cstore.CacheWrap()
	defer cache.Discard()

	data, err := h.fn(ctx, cache, tx)
	if err != nil {
		return nil, err
	}
	return &barter.CheckResult{Data: data}, nil
}

func (h operationHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	data, err := h.fn(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &barter.DeliverResult{Data: data}, nil
}
