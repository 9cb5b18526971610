package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

const (
	pathInitiate             = "escrow/initiate"
	pathExchange             = "escrow/exchange"
	pathCancelByInitiator    = "escrow/cancel_initiator"
	pathCancelByCounterparty = "escrow/cancel_counterparty"
)

var (
	_ barter.Msg = (*InitiateMsg)(nil)
	_ barter.Msg = (*ExchangeMsg)(nil)
	_ barter.Msg = (*CancelByInitiatorMsg)(nil)
	_ barter.Msg = (*CancelByCounterpartyMsg)(nil)
)

// InitiateMsg opens a new escrow. The initiator must sign.
//
// Assets lists, for each initiator asset, its source account, the vault it
// is moved to and its mint. They are followed, for each counterparty asset,
// by the canonical account of the counterparty the asset is expected in and
// its mint.
type InitiateMsg struct {
	Initiator              barter.Address
	Counterparty           barter.Address
	InitiatorPledge        uint64
	CounterpartyPledge     uint64
	InitiatorAssetCount    uint32
	CounterpartyAssetCount uint32
	VaultSalts             []byte
	Assets                 []barter.Address
}

func (InitiateMsg) Path() string { return pathInitiate }

func (m *InitiateMsg) Marshal() ([]byte, error)   { return barter.Marshal(m) }
func (m *InitiateMsg) Unmarshal(raw []byte) error { return barter.Unmarshal(raw, m) }

func (m *InitiateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Initiator", m.Initiator.Validate())
	errs = errors.AppendField(errs, "Counterparty", m.Counterparty.Validate())
	if m.Initiator.Equals(m.Counterparty) {
		errs = errors.AppendField(errs, "Counterparty", errors.Wrap(errors.ErrInput, "same as initiator"))
	}
	errs = errors.Append(errs, m.checkShape())
	errs = errors.Append(errs, validateRefs(m.Assets))
	return errs
}

// checkShape returns the first violated precondition on the pledges and
// the number of references. It does not access the storage.
func (m *InitiateMsg) checkShape() error {
	if m.InitiatorPledge == 0 && m.InitiatorAssetCount == 0 {
		return ErrNoInitiatorPledge
	}
	if m.CounterpartyPledge == 0 && m.CounterpartyAssetCount == 0 {
		return ErrNoCounterpartyPledge
	}
	if uint64(len(m.VaultSalts)) != uint64(m.InitiatorAssetCount) {
		return errors.Wrapf(ErrSaltCountMismatch, "want %d salts, got %d", m.InitiatorAssetCount, len(m.VaultSalts))
	}
	if want := m.refCount(); uint64(len(m.Assets)) != want {
		return errors.Wrapf(ErrAssetCountMismatch, "want %d references, got %d", want, len(m.Assets))
	}
	return nil
}

func (m *InitiateMsg) refCount() uint64 {
	return initiateRefCount(uint64(m.InitiatorAssetCount), uint64(m.CounterpartyAssetCount))
}

// ExchangeMsg settles an open escrow. The counterparty must sign. Both
// pledges must be declared as they were recorded.
type ExchangeMsg struct {
	EscrowID           []byte
	Initiator          barter.Address
	Counterparty       barter.Address
	InitiatorPledge    uint64
	CounterpartyPledge uint64
	Assets             []barter.Address
}

func (ExchangeMsg) Path() string { return pathExchange }

func (m *ExchangeMsg) Marshal() ([]byte, error)   { return barter.Marshal(m) }
func (m *ExchangeMsg) Unmarshal(raw []byte) error { return barter.Unmarshal(raw, m) }

func (m *ExchangeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "EscrowID", validateID(m.EscrowID))
	errs = errors.AppendField(errs, "Initiator", m.Initiator.Validate())
	errs = errors.AppendField(errs, "Counterparty", m.Counterparty.Validate())
	errs = errors.Append(errs, validateRefs(m.Assets))
	return errs
}

// CancelByInitiatorMsg returns all pledged assets to the initiator. The
// initiator must sign.
type CancelByInitiatorMsg struct {
	EscrowID  []byte
	Initiator barter.Address
	Assets    []barter.Address
}

func (CancelByInitiatorMsg) Path() string { return pathCancelByInitiator }

func (m *CancelByInitiatorMsg) Marshal() ([]byte, error)   { return barter.Marshal(m) }
func (m *CancelByInitiatorMsg) Unmarshal(raw []byte) error { return barter.Unmarshal(raw, m) }

func (m *CancelByInitiatorMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "EscrowID", validateID(m.EscrowID))
	errs = errors.AppendField(errs, "Initiator", m.Initiator.Validate())
	errs = errors.Append(errs, validateCancelRefs(m.Assets))
	return errs
}

// CancelByCounterpartyMsg returns all pledged assets to the initiator. The
// counterparty must sign.
type CancelByCounterpartyMsg struct {
	EscrowID     []byte
	Initiator    barter.Address
	Counterparty barter.Address
	Assets       []barter.Address
}

func (CancelByCounterpartyMsg) Path() string { return pathCancelByCounterparty }

func (m *CancelByCounterpartyMsg) Marshal() ([]byte, error)   { return barter.Marshal(m) }
func (m *CancelByCounterpartyMsg) Unmarshal(raw []byte) error { return barter.Unmarshal(raw, m) }

func (m *CancelByCounterpartyMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "EscrowID", validateID(m.EscrowID))
	errs = errors.AppendField(errs, "Initiator", m.Initiator.Validate())
	errs = errors.AppendField(errs, "Counterparty", m.Counterparty.Validate())
	errs = errors.Append(errs, validateCancelRefs(m.Assets))
	return errs
}

func validateID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInput, "want 8 bytes, got %d", len(id))
	}
	return nil
}

func validateRefs(refs []barter.Address) error {
	var errs error
	for i, r := range refs {
		errs = errors.AppendField(errs, errors.Index("Assets", i), r.Validate())
	}
	return errs
}

func validateCancelRefs(refs []barter.Address) error {
	if len(refs)%3 != 0 {
		return errors.Wrapf(ErrAssetCountMismatch, "%d references is not a multiple of 3", len(refs))
	}
	return validateRefs(refs)
}
