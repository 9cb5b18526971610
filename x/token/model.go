package token

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// AccountState describes the lifecycle of an account.
type AccountState uint32

const (
	// Uninitialized accounts have storage allocated but are not bound
	// to a mint or an owner yet.
	Uninitialized AccountState = iota
	// Initialized accounts can hold and transfer units.
	Initialized
)

func (s AccountState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	default:
		return "unknown"
	}
}

// Mint defines an asset type.
type Mint struct {
	// Authority is the only address allowed to issue new units.
	Authority barter.Address
	Decimals  uint32
	Supply    uint64
}

var _ orm.Model = (*Mint)(nil)

func (m *Mint) Marshal() ([]byte, error) {
	return barter.Marshal(m)
}

func (m *Mint) Unmarshal(raw []byte) error {
	return barter.Unmarshal(raw, m)
}

func (m *Mint) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Authority", m.Authority.Validate())
	if m.Decimals > maxDecimals {
		errs = errors.AppendField(errs, "Decimals", errors.ErrInput)
	}
	return errs
}

const maxDecimals = 18

// Account holds units of a single mint.
type Account struct {
	// Program is the ID of the service instance that controls this
	// account.
	Program barter.Address
	Mint    barter.Address
	Owner   barter.Address
	Amount  uint64
	State   AccountState
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Marshal() ([]byte, error) {
	return barter.Marshal(a)
}

func (a *Account) Unmarshal(raw []byte) error {
	return barter.Unmarshal(raw, a)
}

func (a *Account) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Program", a.Program.Validate())
	switch a.State {
	case Uninitialized:
		if len(a.Mint) != 0 || len(a.Owner) != 0 || a.Amount != 0 {
			errs = errors.AppendField(errs, "State", errors.Wrap(errors.ErrState, "uninitialized account in use"))
		}
	case Initialized:
		errs = errors.AppendField(errs, "Mint", a.Mint.Validate())
		errs = errors.AppendField(errs, "Owner", a.Owner.Validate())
	default:
		errs = errors.AppendField(errs, "State", errors.ErrState)
	}
	return errs
}

// IsInitialized returns true if the account can hold units.
func (a *Account) IsInitialized() bool {
	return a.State == Initialized
}

func newMintBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokmint", &Mint{})
}

// Accounts of all programs share the same bucket, in the same way all
// addresses share the same ledger.
func newAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokacct", &Account{})
}

// CanonicalAddress returns the address of the canonical account of the owner
// for the given mint, as created by the given program.
func CanonicalAddress(program, owner, mint barter.Address) (barter.Address, error) {
	addr, _, err := barter.FindDerivedAddress(associatedProgram, owner, program, mint)
	if err != nil {
		return nil, errors.Wrap(err, "canonical address")
	}
	return addr, nil
}

var associatedProgram = barter.ProgramAddress("token/associated")
