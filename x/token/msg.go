package token

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

const (
	pathCreateMint    = "token/create_mint"
	pathMintTo        = "token/mint_to"
	pathCreateAccount = "token/create_account"
	pathTransfer      = "token/transfer"
)

var (
	_ barter.Msg = (*CreateMintMsg)(nil)
	_ barter.Msg = (*MintToMsg)(nil)
	_ barter.Msg = (*CreateAccountMsg)(nil)
	_ barter.Msg = (*TransferMsg)(nil)
)

// CreateMintMsg registers a new mint. Both the payer and the mint must sign.
type CreateMintMsg struct {
	Payer     barter.Address
	Mint      barter.Address
	Authority barter.Address
	Decimals  uint32
}

func (CreateMintMsg) Path() string { return pathCreateMint }

func (m *CreateMintMsg) Marshal() ([]byte, error)   { return barter.Marshal(m) }
func (m *CreateMintMsg) Unmarshal(raw []byte) error { return barter.Unmarshal(raw, m) }

func (m *CreateMintMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Payer", m.Payer.Validate())
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	errs = errors.AppendField(errs, "Authority", m.Authority.Validate())
	if m.Decimals > maxDecimals {
		errs = errors.AppendField(errs, "Decimals", errors.ErrInput)
	}
	return errs
}

// MintToMsg issues new units. The mint authority must sign.
type MintToMsg struct {
	Mint    barter.Address
	Account barter.Address
	Amount  uint64
}

func (MintToMsg) Path() string { return pathMintTo }

func (m *MintToMsg) Marshal() ([]byte, error)   { return barter.Marshal(m) }
func (m *MintToMsg) Unmarshal(raw []byte) error { return barter.Unmarshal(raw, m) }

func (m *MintToMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	errs = errors.AppendField(errs, "Account", m.Account.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

// CreateAccountMsg creates the canonical account of the owner for a mint.
type CreateAccountMsg struct {
	Payer barter.Address
	Owner barter.Address
	Mint  barter.Address
}

func (CreateAccountMsg) Path() string { return pathCreateAccount }

func (m *CreateAccountMsg) Marshal() ([]byte, error)   { return barter.Marshal(m) }
func (m *CreateAccountMsg) Unmarshal(raw []byte) error { return barter.Unmarshal(raw, m) }

func (m *CreateAccountMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Payer", m.Payer.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	return errs
}

// TransferMsg moves units between accounts. The owner of the source account
// must sign.
type TransferMsg struct {
	Source      barter.Address
	Destination barter.Address
	Owner       barter.Address
	Amount      uint64
}

func (TransferMsg) Path() string { return pathTransfer }

func (m *TransferMsg) Marshal() ([]byte, error)   { return barter.Marshal(m) }
func (m *TransferMsg) Unmarshal(raw []byte) error { return barter.Unmarshal(raw, m) }

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}
