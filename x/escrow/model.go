package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// Escrow is the record of an open swap. It is written once by Initiate and
// deleted by Exchange or a cancellation. It is never updated.
type Escrow struct {
	Initiator barter.Address
	// InitiatorPledge is the amount of native currency the initiator
	// pays. It is held by the record address while the escrow is open.
	InitiatorPledge uint64
	// InitiatorAssets are the canonical accounts the pledged initiator
	// assets were taken from.
	InitiatorAssets []barter.Address
	Counterparty    barter.Address
	// CounterpartyPledge is the amount of native currency the
	// counterparty pays on Exchange.
	CounterpartyPledge uint64
	// CounterpartyAssets are the canonical accounts the counterparty
	// must hold the pledged assets in on Exchange.
	CounterpartyAssets []barter.Address
	// VaultSalts contains one salt for each initiator asset, used to
	// derive the vault address from the source account address.
	VaultSalts []byte
}

var _ orm.Model = (*Escrow)(nil)

func (e *Escrow) Marshal() ([]byte, error) {
	return barter.Marshal(e)
}

func (e *Escrow) Unmarshal(raw []byte) error {
	return barter.Unmarshal(raw, e)
}

// Validate ensures the escrow is valid
func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Initiator", e.Initiator.Validate())
	errs = errors.AppendField(errs, "Counterparty", e.Counterparty.Validate())
	if e.Initiator.Equals(e.Counterparty) {
		errs = errors.AppendField(errs, "Counterparty", errors.Wrap(errors.ErrInput, "same as initiator"))
	}
	if e.InitiatorPledge == 0 && len(e.InitiatorAssets) == 0 {
		errs = errors.AppendField(errs, "InitiatorPledge", ErrNoInitiatorPledge)
	}
	if e.CounterpartyPledge == 0 && len(e.CounterpartyAssets) == 0 {
		errs = errors.AppendField(errs, "CounterpartyPledge", ErrNoCounterpartyPledge)
	}
	if len(e.VaultSalts) != len(e.InitiatorAssets) {
		errs = errors.AppendField(errs, "VaultSalts", ErrSaltCountMismatch)
	}
	for i, a := range e.InitiatorAssets {
		errs = errors.AppendField(errs, errors.Index("InitiatorAssets", i), a.Validate())
	}
	for i, a := range e.CounterpartyAssets {
		errs = errors.AppendField(errs, errors.Index("CounterpartyAssets", i), a.Validate())
	}
	return errs
}

// Summary returns the number of pledged assets of both parties.
func (e *Escrow) Summary() (initiatorAssets, counterpartyAssets int) {
	return len(e.InitiatorAssets), len(e.CounterpartyAssets)
}

// NewBucket returns a bucket storing escrow records under sequential IDs.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("escrow", &Escrow{},
		orm.WithIDSequence(escrowSeq))
}

var escrowSeq = orm.NewSequence("escrow", "id")

// RecordAddress returns the address holding the rent and the currency
// pledge of the escrow with given ID.
func RecordAddress(id []byte) (barter.Address, error) {
	addr, _, err := barter.FindDerivedAddress(programID, []byte(recordSeed), id)
	if err != nil {
		return nil, errors.Wrap(err, "escrow record address")
	}
	return addr, nil
}
