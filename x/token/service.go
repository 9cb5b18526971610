package token

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
	"github.com/iov-one/barter/x"
	"github.com/iov-one/barter/x/cash"
)

// Service is a single asset program. Every operation checks all its
// preconditions before the first write.
type Service struct {
	program  barter.Address
	auth     x.Authenticator
	bank     cash.Controller
	mints    orm.ModelBucket
	accounts orm.ModelBucket
}

// NewService returns an asset program with the given name. Accounts created
// by different programs cannot be used interchangeably.
//
// The authenticator decides who authorized an operation. Include the
// authenticators of all programs that can derive addresses, so that
// accounts at derived addresses can be created on their behalf.
func NewService(name string, auth x.Authenticator, bank cash.Controller) *Service {
	return &Service{
		program:  barter.ProgramAddress(name),
		auth:     auth,
		bank:     bank,
		mints:    newMintBucket(),
		accounts: newAccountBucket(),
	}
}

// ProgramID returns the address identifying this program.
func (s *Service) ProgramID() barter.Address {
	return s.program
}

// CanonicalAddress returns the address of the canonical account of the owner
// for the given mint, as created by this program.
func (s *Service) CanonicalAddress(owner, mint barter.Address) (barter.Address, error) {
	return CanonicalAddress(s.program, owner, mint)
}

// Account returns the account stored under given address, regardless of the
// program that controls it. ErrNotFound is returned if it does not exist.
func (s *Service) Account(db barter.ReadOnlyKVStore, addr barter.Address) (*Account, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "account address")
	}
	var acc Account
	if err := s.accounts.One(db, addr, &acc); err != nil {
		return nil, errors.Wrapf(err, "account %s", addr)
	}
	return &acc, nil
}

// Mint returns the mint stored under given address. ErrNotFound is returned
// if it does not exist.
func (s *Service) Mint(db barter.ReadOnlyKVStore, addr barter.Address) (*Mint, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "mint address")
	}
	var m Mint
	if err := s.mints.One(db, addr, &m); err != nil {
		return nil, errors.Wrapf(err, "mint %s", addr)
	}
	return &m, nil
}

// CreateMint registers a new asset type. Both the payer and the mint address
// must authorize it.
func (s *Service) CreateMint(ctx barter.Context, db barter.KVStore, payer, mint, authority barter.Address, decimals uint32) error {
	if err := s.requireSigners(ctx, payer, mint); err != nil {
		return err
	}
	if err := s.mints.Has(db, mint); !errors.ErrNotFound.Is(err) {
		return errors.Wrapf(errors.ErrDuplicate, "mint %s", mint)
	}
	m := Mint{Authority: authority, Decimals: decimals}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := s.payRent(db, payer, mint); err != nil {
		return err
	}
	if _, err := s.mints.Put(db, mint, &m); err != nil {
		return errors.Wrap(err, "cannot store mint")
	}
	return nil
}

// MintTo issues new units of the mint into given account. The mint authority
// must authorize it.
func (s *Service) MintTo(ctx barter.Context, db barter.KVStore, mint, account barter.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	m, err := s.Mint(db, mint)
	if err != nil {
		return err
	}
	if !s.auth.HasAddress(ctx, m.Authority) {
		return errors.Wrap(errors.ErrUnauthorized, "mint authority signature missing")
	}
	acc, err := s.ownAccount(db, account)
	if err != nil {
		return err
	}
	if !acc.Mint.Equals(mint) {
		return errors.Wrapf(errors.ErrInput, "account holds %s units", acc.Mint)
	}
	if m.Supply+amount < m.Supply || acc.Amount+amount < acc.Amount {
		return errors.Wrap(errors.ErrOverflow, "mint supply")
	}
	m.Supply += amount
	acc.Amount += amount
	if _, err := s.mints.Put(db, mint, m); err != nil {
		return errors.Wrap(err, "cannot store mint")
	}
	return s.save(db, account, acc)
}

// CreateAndInitialize creates an account at the given address, able to hold
// units of the given mint, controlled by the owner. Both the payer and the
// account address must authorize it. The payer funds the account rent.
func (s *Service) CreateAndInitialize(ctx barter.Context, db barter.KVStore, payer, account, mint, owner barter.Address) error {
	if err := s.requireSigners(ctx, payer, account); err != nil {
		return err
	}
	return s.create(db, payer, account, mint, owner)
}

// CreateCanonical creates the canonical account of the owner for given mint
// and returns its address. Only the payer must authorize it, because nobody
// can hold the key of a canonical account.
func (s *Service) CreateCanonical(ctx barter.Context, db barter.KVStore, payer, owner, mint barter.Address) (barter.Address, error) {
	if err := s.requireSigners(ctx, payer); err != nil {
		return nil, err
	}
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	addr, err := s.CanonicalAddress(owner, mint)
	if err != nil {
		return nil, err
	}
	if err := s.create(db, payer, addr, mint, owner); err != nil {
		return nil, err
	}
	return addr, nil
}

// Allocate reserves storage for an account without initializing it. The
// account cannot hold any units until it is initialized.
func (s *Service) Allocate(ctx barter.Context, db barter.KVStore, payer, account barter.Address) error {
	if err := s.requireSigners(ctx, payer, account); err != nil {
		return err
	}
	if err := s.accounts.Has(db, account); !errors.ErrNotFound.Is(err) {
		return errors.Wrapf(errors.ErrDuplicate, "account %s", account)
	}
	if err := s.payRent(db, payer, account); err != nil {
		return err
	}
	return s.save(db, account, &Account{Program: s.program, State: Uninitialized})
}

func (s *Service) create(db barter.KVStore, payer, account, mint, owner barter.Address) error {
	if err := s.accounts.Has(db, account); !errors.ErrNotFound.Is(err) {
		return errors.Wrapf(errors.ErrDuplicate, "account %s", account)
	}
	if _, err := s.Mint(db, mint); err != nil {
		return err
	}
	acc := Account{
		Program: s.program,
		Mint:    mint,
		Owner:   owner,
		State:   Initialized,
	}
	if err := acc.Validate(); err != nil {
		return errors.Wrap(err, "account")
	}
	if err := s.payRent(db, payer, account); err != nil {
		return err
	}
	return s.save(db, account, &acc)
}

// Transfer moves units between two accounts of the same mint. The authority
// must be the owner of the source account and must authorize it.
func (s *Service) Transfer(ctx barter.Context, db barter.KVStore, src, dest, authority barter.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same account")
	}
	from, err := s.ownAccount(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	to, err := s.ownAccount(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := s.requireOwner(ctx, from, authority); err != nil {
		return err
	}
	if !from.Mint.Equals(to.Mint) {
		return errors.Wrap(errors.ErrInput, "mint mismatch")
	}
	if from.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "have %d, need %d", from.Amount, amount)
	}
	if to.Amount+amount < to.Amount {
		return errors.Wrap(errors.ErrOverflow, "destination")
	}
	from.Amount -= amount
	to.Amount += amount
	if err := s.save(db, src, from); err != nil {
		return err
	}
	return s.save(db, dest, to)
}

// SetOwner hands the control of an account to the next owner. The current
// owner must authorize it.
func (s *Service) SetOwner(ctx barter.Context, db barter.KVStore, account, current, next barter.Address) error {
	if err := next.Validate(); err != nil {
		return errors.Wrap(err, "next owner")
	}
	acc, err := s.ownAccount(db, account)
	if err != nil {
		return err
	}
	if err := s.requireOwner(ctx, acc, current); err != nil {
		return err
	}
	acc.Owner = next
	return s.save(db, account, acc)
}

// Close removes an empty account. The native balance of the account, which
// is at least its rent, is moved to the rent destination. The owner must
// authorize it.
func (s *Service) Close(ctx barter.Context, db barter.KVStore, account, authority, rentDest barter.Address) error {
	if err := rentDest.Validate(); err != nil {
		return errors.Wrap(err, "rent destination")
	}
	acc, err := s.ownAccount(db, account)
	if err != nil {
		return err
	}
	if err := s.requireOwner(ctx, acc, authority); err != nil {
		return err
	}
	if acc.Amount != 0 {
		return errors.Wrapf(errors.ErrState, "account holds %d units", acc.Amount)
	}
	if err := s.accounts.Delete(db, account); err != nil {
		return errors.Wrap(err, "cannot delete account")
	}
	if _, err := s.bank.MoveAll(db, account, rentDest); err != nil {
		return errors.Wrap(err, "cannot reclaim rent")
	}
	return nil
}

// ownAccount loads an initialized account controlled by this program.
func (s *Service) ownAccount(db barter.ReadOnlyKVStore, addr barter.Address) (*Account, error) {
	acc, err := s.Account(db, addr)
	if err != nil {
		return nil, err
	}
	if !acc.Program.Equals(s.program) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "account %s controlled by another program", addr)
	}
	if !acc.IsInitialized() {
		return nil, errors.Wrapf(errors.ErrState, "account %s not initialized", addr)
	}
	return acc, nil
}

func (s *Service) requireOwner(ctx barter.Context, acc *Account, authority barter.Address) error {
	if !acc.Owner.Equals(authority) {
		return errors.Wrap(errors.ErrUnauthorized, "authority is not the account owner")
	}
	if !s.auth.HasAddress(ctx, authority) {
		return errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return nil
}

func (s *Service) requireSigners(ctx barter.Context, signers ...barter.Address) error {
	for _, a := range signers {
		if err := a.Validate(); err != nil {
			return errors.Wrap(err, "signer")
		}
		if !s.auth.HasAddress(ctx, a) {
			return errors.Wrapf(errors.ErrUnauthorized, "signature of %s missing", a)
		}
	}
	return nil
}

// AccountRent returns the amount charged to the payer of every created
// account.
func (s *Service) AccountRent(db barter.ReadOnlyKVStore) (uint64, error) {
	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	return conf.AccountRent, nil
}

func (s *Service) payRent(db barter.KVStore, payer, dest barter.Address) error {
	rent, err := s.AccountRent(db)
	if err != nil {
		return err
	}
	if rent == 0 {
		return nil
	}
	if err := s.bank.MoveCoins(db, payer, dest, rent); err != nil {
		return errors.Wrap(err, "cannot pay rent")
	}
	return nil
}

func (s *Service) save(db barter.KVStore, addr barter.Address, acc *Account) error {
	if _, err := s.accounts.Put(db, addr, acc); err != nil {
		return errors.Wrap(err, "cannot store account")
	}
	return nil
}
