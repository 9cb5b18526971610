package escrow

import (
	"math"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
	"github.com/iov-one/barter/x"
	"github.com/iov-one/barter/x/cash"
)

// State of an escrow as observed in the store.
type State int

const (
	// Uninitiated is reported for an ID that has no record. A settled or
	// cancelled escrow is reported as uninitiated too, because its record
	// no longer exists.
	Uninitiated State = iota
	// Open escrows hold the initiator assets and pledge.
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "uninitiated"
}

// Engine executes escrow transitions. It never moves assets itself, all
// asset movement is delegated to the asset service. Every operation checks
// all its preconditions before the first write, but relies on the caller to
// discard the store when an error is returned mid way.
type Engine struct {
	bucket orm.ModelBucket
	auth   x.Authenticator
	assets AssetService
	bank   cash.Controller
}

// NewEngine returns an engine that authenticates callers with auth, moves
// assets with the asset service and native currency with bank.
func NewEngine(auth x.Authenticator, assets AssetService, bank cash.Controller) *Engine {
	return &Engine{
		bucket: NewBucket(),
		auth:   auth,
		assets: assets,
		bank:   bank,
	}
}

// Escrow returns the open escrow with given ID. ErrNotFound is returned if
// it does not exist.
func (en *Engine) Escrow(db barter.ReadOnlyKVStore, id []byte) (*Escrow, error) {
	var e Escrow
	if err := en.bucket.One(db, id, &e); err != nil {
		return nil, errors.Wrapf(err, "escrow %X", id)
	}
	return &e, nil
}

// State returns the state of the escrow with given ID.
func (en *Engine) State(db barter.ReadOnlyKVStore, id []byte) (State, error) {
	switch err := en.bucket.Has(db, id); {
	case err == nil:
		return Open, nil
	case errors.ErrNotFound.Is(err):
		return Uninitiated, nil
	default:
		return Uninitiated, err
	}
}

// Initiate locks the initiator assets in vaults, escrows the initiator
// pledge and stores the record. It returns the ID of the new escrow.
func (en *Engine) Initiate(ctx barter.Context, db barter.KVStore, msg *InitiateMsg) ([]byte, error) {
	if err := msg.checkShape(); err != nil {
		return nil, err
	}
	if !en.auth.HasAddress(ctx, msg.Initiator) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "initiator signature missing")
	}
	conf, err := en.loadConf(db)
	if err != nil {
		return nil, err
	}
	funds := msg.InitiatorPledge + conf.RecordRent
	if funds < msg.InitiatorPledge {
		return nil, errors.Wrap(errors.ErrOverflow, "initiator pledge")
	}
	// Every vault is paid for by the initiator as well.
	rent, err := en.assets.AccountRent(db)
	if err != nil {
		return nil, errors.Wrap(err, "vault rent")
	}
	vaults := uint64(msg.InitiatorAssetCount)
	if vaults != 0 && rent > math.MaxUint64/vaults {
		return nil, errors.Wrap(errors.ErrOverflow, "vault rent")
	}
	required := funds + vaults*rent
	if required < funds {
		return nil, errors.Wrap(errors.ErrOverflow, "vault rent")
	}
	if err := en.requireFunds(db, msg.Initiator, required, ErrInitiatorInsufficientFunds); err != nil {
		return nil, err
	}

	c, err := newCustodian(en.assets, msg.Initiator, msg.Counterparty)
	if err != nil {
		return nil, err
	}
	v := validator{db: db, assets: en.assets, program: conf.AssetProgram, authority: c.authority}
	vs, ps, err := v.initiate(msg)
	if err != nil {
		return nil, err
	}

	e := Escrow{
		Initiator:          msg.Initiator,
		InitiatorPledge:    msg.InitiatorPledge,
		InitiatorAssets:    make([]barter.Address, len(vs)),
		Counterparty:       msg.Counterparty,
		CounterpartyPledge: msg.CounterpartyPledge,
		CounterpartyAssets: make([]barter.Address, len(ps)),
		VaultSalts:         msg.VaultSalts,
	}
	for i, a := range vs {
		e.InitiatorAssets[i] = a.source
	}
	for i, a := range ps {
		e.CounterpartyAssets[i] = a.source
	}
	if err := e.Validate(); err != nil {
		return nil, errors.Wrap(err, "escrow")
	}

	for _, a := range vs {
		if err := c.lockAsset(ctx, db, a); err != nil {
			return nil, err
		}
	}
	id, err := en.bucket.Put(db, nil, &e)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	if funds > 0 {
		record, err := RecordAddress(id)
		if err != nil {
			return nil, err
		}
		if err := en.bank.MoveCoins(db, msg.Initiator, record, funds); err != nil {
			return nil, errors.Wrap(err, "cannot escrow pledge")
		}
	}

	barter.GetLogger(ctx).Info("escrow initiated",
		"id", id,
		"initiator", e.Initiator,
		"counterparty", e.Counterparty)
	return id, nil
}

// Exchange delivers the counterparty assets and pledge to the initiator and
// the vaulted assets and the initiator pledge to the counterparty. The record
// and all vaults are removed.
func (en *Engine) Exchange(ctx barter.Context, db barter.KVStore, msg *ExchangeMsg) error {
	e, err := en.Escrow(db, msg.EscrowID)
	if err != nil {
		return err
	}
	if !msg.Initiator.Equals(e.Initiator) {
		return errors.Wrap(ErrInitiatorMismatch, "initiator")
	}
	if !msg.Counterparty.Equals(e.Counterparty) {
		return errors.Wrap(ErrCounterpartyMismatch, "counterparty")
	}
	if !en.auth.HasAddress(ctx, e.Counterparty) {
		return errors.Wrap(errors.ErrUnauthorized, "counterparty signature missing")
	}
	if msg.InitiatorPledge != e.InitiatorPledge {
		return errors.Wrapf(ErrInitiatorPledgeMismatch, "recorded %d, declared %d", e.InitiatorPledge, msg.InitiatorPledge)
	}
	if msg.CounterpartyPledge != e.CounterpartyPledge {
		return errors.Wrapf(ErrCounterpartyPledgeMismatch, "recorded %d, declared %d", e.CounterpartyPledge, msg.CounterpartyPledge)
	}
	if err := en.requireFunds(db, e.Counterparty, e.CounterpartyPledge, ErrCounterpartyInsufficientFunds); err != nil {
		return err
	}

	conf, err := en.loadConf(db)
	if err != nil {
		return err
	}
	c, err := newCustodian(en.assets, e.Initiator, e.Counterparty)
	if err != nil {
		return err
	}
	v := validator{db: db, assets: en.assets, program: conf.AssetProgram, authority: c.authority}
	vs, ps, err := v.exchange(e, msg.Assets)
	if err != nil {
		return err
	}
	record, err := RecordAddress(msg.EscrowID)
	if err != nil {
		return err
	}

	for _, a := range ps {
		if err := en.assets.Transfer(ctx, db, a.source, a.dest, e.Counterparty, 1); err != nil {
			return errors.Wrapf(err, "deliver counterparty asset %s", a.source)
		}
	}
	if e.CounterpartyPledge > 0 {
		if err := en.bank.MoveCoins(db, e.Counterparty, e.Initiator, e.CounterpartyPledge); err != nil {
			return errors.Wrap(err, "deliver counterparty pledge")
		}
	}
	// Every vault is closed before the record balance is touched.
	if err := c.release(ctx, db, vs); err != nil {
		return err
	}
	if e.InitiatorPledge > 0 {
		if err := en.bank.MoveCoins(db, record, e.Counterparty, e.InitiatorPledge); err != nil {
			return errors.Wrap(err, "deliver initiator pledge")
		}
	}
	if err := en.remove(db, msg.EscrowID, record, e.Initiator); err != nil {
		return err
	}

	barter.GetLogger(ctx).Info("escrow exchanged",
		"id", msg.EscrowID,
		"initiator", e.Initiator,
		"counterparty", e.Counterparty)
	return nil
}

// CancelByInitiator returns the vaulted assets and the pledge to the
// initiator and removes the escrow. Only the initiator can call it.
func (en *Engine) CancelByInitiator(ctx barter.Context, db barter.KVStore, msg *CancelByInitiatorMsg) error {
	e, err := en.Escrow(db, msg.EscrowID)
	if err != nil {
		return err
	}
	if !msg.Initiator.Equals(e.Initiator) {
		return errors.Wrap(ErrInitiatorMismatch, "initiator")
	}
	if !en.auth.HasAddress(ctx, e.Initiator) {
		return errors.Wrap(errors.ErrUnauthorized, "initiator signature missing")
	}
	return en.cancel(ctx, db, msg.EscrowID, e, msg.Assets)
}

// CancelByCounterparty returns the vaulted assets and the pledge to the
// initiator and removes the escrow. Only the counterparty can call it.
func (en *Engine) CancelByCounterparty(ctx barter.Context, db barter.KVStore, msg *CancelByCounterpartyMsg) error {
	e, err := en.Escrow(db, msg.EscrowID)
	if err != nil {
		return err
	}
	if !msg.Initiator.Equals(e.Initiator) {
		return errors.Wrap(ErrInitiatorMismatch, "initiator")
	}
	if !msg.Counterparty.Equals(e.Counterparty) {
		return errors.Wrap(ErrCounterpartyMismatch, "counterparty")
	}
	if !en.auth.HasAddress(ctx, e.Counterparty) {
		return errors.Wrap(errors.ErrUnauthorized, "counterparty signature missing")
	}
	return en.cancel(ctx, db, msg.EscrowID, e, msg.Assets)
}

func (en *Engine) cancel(ctx barter.Context, db barter.KVStore, id []byte, e *Escrow, refs []barter.Address) error {
	conf, err := en.loadConf(db)
	if err != nil {
		return err
	}
	c, err := newCustodian(en.assets, e.Initiator, e.Counterparty)
	if err != nil {
		return err
	}
	v := validator{db: db, assets: en.assets, program: conf.AssetProgram, authority: c.authority}
	vs, err := v.cancel(e, refs)
	if err != nil {
		return err
	}
	record, err := RecordAddress(id)
	if err != nil {
		return err
	}

	if err := c.release(ctx, db, vs); err != nil {
		return err
	}
	if err := en.remove(db, id, record, e.Initiator); err != nil {
		return err
	}

	barter.GetLogger(ctx).Info("escrow cancelled",
		"id", id,
		"initiator", e.Initiator,
		"counterparty", e.Counterparty)
	return nil
}

// remove deletes the record and reclaims everything left on the record
// address to the initiator.
func (en *Engine) remove(db barter.KVStore, id []byte, record, initiator barter.Address) error {
	if err := en.bucket.Delete(db, id); err != nil {
		return errors.Wrap(err, "cannot delete escrow")
	}
	if _, err := en.bank.MoveAll(db, record, initiator); err != nil {
		return errors.Wrap(err, "cannot reclaim escrow balance")
	}
	return nil
}

// loadConf returns the configuration, ensuring the asset service is the one
// trusted by this extension.
func (en *Engine) loadConf(db barter.ReadOnlyKVStore) (*Configuration, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !en.assets.ProgramID().Equals(conf.AssetProgram) {
		return nil, errors.Wrapf(ErrIncorrectProgram, "asset service %s is not trusted", en.assets.ProgramID())
	}
	return conf, nil
}

func (en *Engine) requireFunds(db barter.ReadOnlyKVStore, addr barter.Address, amount uint64, kind *errors.Error) error {
	if amount == 0 {
		return nil
	}
	have, err := en.bank.Balance(db, addr)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(kind, "have %d, need %d", have, amount)
	}
	return nil
}
