package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x"
	"github.com/iov-one/barter/x/cash"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r barter.Registry, auth x.Authenticator, assets AssetService, bank cash.Controller) {
	en := NewEngine(auth, assets, bank)
	r.Handle(pathInitiate, InitiateHandler{en: en})
	r.Handle(pathExchange, transitionHandler{fn: func(ctx barter.Context, db barter.KVStore, tx barter.Tx) ([]byte, error) {
		var msg ExchangeMsg
		if err := barter.LoadMsg(tx, &msg); err != nil {
			return nil, errors.Wrap(err, "load msg")
		}
		return msg.EscrowID, en.Exchange(ctx, db, &msg)
	}})
	r.Handle(pathCancelByInitiator, transitionHandler{fn: func(ctx barter.Context, db barter.KVStore, tx barter.Tx) ([]byte, error) {
		var msg CancelByInitiatorMsg
		if err := barter.LoadMsg(tx, &msg); err != nil {
			return nil, errors.Wrap(err, "load msg")
		}
		return msg.EscrowID, en.CancelByInitiator(ctx, db, &msg)
	}})
	r.Handle(pathCancelByCounterparty, transitionHandler{fn: func(ctx barter.Context, db barter.KVStore, tx barter.Tx) ([]byte, error) {
		var msg CancelByCounterpartyMsg
		if err := barter.LoadMsg(tx, &msg); err != nil {
			return nil, errors.Wrap(err, "load msg")
		}
		return msg.EscrowID, en.CancelByCounterparty(ctx, db, &msg)
	}})
}

// InitiateHandler opens escrows.
type InitiateHandler struct {
	en *Engine
}

var _ barter.Handler = InitiateHandler{}

// Check runs all validations without writing anything.
func (h InitiateHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	cache, err := cacheWrap(db)
	if err != nil {
		return nil, err
	}
	defer cache.Discard()

	if _, err := h.initiate(ctx, cache, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{}, nil
}

// Deliver opens the escrow and returns its ID.
func (h InitiateHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	id, err := h.initiate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &barter.DeliverResult{Data: id}, nil
}

func (h InitiateHandler) initiate(ctx barter.Context, db barter.KVStore, tx barter.Tx) ([]byte, error) {
	var msg InitiateMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return h.en.Initiate(ctx, db, &msg)
}

// transitionHandler moves an open escrow into a final state. Check runs the
// transition on a cache that is always discarded.
type transitionHandler struct {
	fn func(barter.Context, barter.KVStore, barter.Tx) ([]byte, error)
}

var _ barter.Handler = transitionHandler{}

func (h transitionHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	cache, err := cacheWrap(db)
	if err != nil {
		return nil, err
	}
	defer cache.Discard()

	if _, err := h.fn(ctx, cache, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{}, nil
}

func (h transitionHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	id, err := h.fn(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &barter.DeliverResult{Data: id}, nil
}

func cacheWrap(db barter.KVStore) (barter.KVCacheWrap, error) {
	cstore, ok := db.(barter.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrDatabase, "store cannot be cache wrapped")
	}
	return cstore.CacheWrap(), nil
}
