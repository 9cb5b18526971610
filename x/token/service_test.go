package token

import (
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/weavetest"
	"github.com/iov-one/barter/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRent = 7

type fixture struct {
	ctx     barter.Context
	db      barter.CacheableKVStore
	auth    *weavetest.CtxAuth
	bank    cash.Controller
	service *Service

	payer barter.Address
	owner barter.Address
	mint  barter.Address
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	f := &fixture{
		ctx:   context.Background(),
		db:    store.MemStore(),
		auth:  &weavetest.CtxAuth{Key: "auth"},
		bank:  cash.NewController(),
		payer: weavetest.NewIdentity(),
		owner: weavetest.NewIdentity(),
		mint:  weavetest.NewIdentity(),
	}
	f.service = NewService("token", f.auth, f.bank)
	require.NoError(t, SaveConf(f.db, &Configuration{AccountRent: testRent}))
	require.NoError(t, f.bank.IssueCoins(f.db, f.payer, 1000))

	ctx := f.auth.SetAddresses(f.ctx, f.payer, f.mint)
	require.NoError(t, f.service.CreateMint(ctx, f.db, f.payer, f.mint, f.payer, 0))
	return f
}

func (f *fixture) signed(signers ...barter.Address) barter.Context {
	return f.auth.SetAddresses(f.ctx, signers...)
}

func (f *fixture) balance(t testing.TB, addr barter.Address) uint64 {
	t.Helper()
	b, err := f.bank.Balance(f.db, addr)
	require.NoError(t, err)
	return b
}

func TestCanonicalAccountLifecycle(t *testing.T) {
	f := newFixture(t)
	s := f.service

	addr, err := s.CreateCanonical(f.signed(f.payer), f.db, f.payer, f.owner, f.mint)
	require.NoError(t, err)
	want, err := CanonicalAddress(s.ProgramID(), f.owner, f.mint)
	require.NoError(t, err)
	assert.Equal(t, want, addr)
	assert.False(t, barter.IsOnCurve(addr))
	assert.Equal(t, uint64(testRent), f.balance(t, addr))

	_, err = s.CreateCanonical(f.signed(f.payer), f.db, f.payer, f.owner, f.mint)
	assert.True(t, errors.ErrDuplicate.Is(err))

	// only the mint authority can issue
	err = s.MintTo(f.signed(f.owner), f.db, f.mint, addr, 1)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	require.NoError(t, s.MintTo(f.signed(f.payer), f.db, f.mint, addr, 1))

	acc, err := s.Account(f.db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), acc.Amount)
	assert.Equal(t, f.owner, acc.Owner)
	assert.True(t, acc.IsInitialized())

	m, err := s.Mint(f.db, f.mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), m.Supply)

	// a non empty account cannot be closed
	err = s.Close(f.signed(f.owner), f.db, addr, f.owner, f.owner)
	assert.True(t, errors.ErrState.Is(err))

	other, err := s.CreateCanonical(f.signed(f.payer), f.db, f.payer, f.payer, f.mint)
	require.NoError(t, err)
	require.NoError(t, s.Transfer(f.signed(f.owner), f.db, addr, other, f.owner, 1))

	require.NoError(t, s.Close(f.signed(f.owner), f.db, addr, f.owner, f.owner))
	_, err = s.Account(f.db, addr)
	assert.True(t, errors.ErrNotFound.Is(err))
	assert.Equal(t, uint64(0), f.balance(t, addr))
	assert.Equal(t, uint64(testRent), f.balance(t, f.owner))
}

func TestTransfer(t *testing.T) {
	cases := map[string]struct {
		signer    barter.Address
		authority func(f *fixture) barter.Address
		amount    uint64
		otherMint bool
		wantErr   *errors.Error
	}{
		"owner transfers": {
			amount: 1,
		},
		"owner signature missing": {
			signer:  weavetest.NewIdentity(),
			amount:  1,
			wantErr: errors.ErrUnauthorized,
		},
		"authority is not the owner": {
			authority: func(f *fixture) barter.Address { return f.payer },
			amount:    1,
			wantErr:   errors.ErrUnauthorized,
		},
		"insufficient amount": {
			amount:  2,
			wantErr: errors.ErrInsufficientAmount,
		},
		"zero amount": {
			amount:  0,
			wantErr: errors.ErrAmount,
		},
		"different mints": {
			amount:    1,
			otherMint: true,
			wantErr:   errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			s := f.service
			src, err := s.CreateCanonical(f.signed(f.payer), f.db, f.payer, f.owner, f.mint)
			require.NoError(t, err)
			require.NoError(t, s.MintTo(f.signed(f.payer), f.db, f.mint, src, 1))

			destMint := f.mint
			if tc.otherMint {
				destMint = weavetest.NewIdentity()
				require.NoError(t, s.CreateMint(f.signed(f.payer, destMint), f.db, f.payer, destMint, f.payer, 0))
			}
			dest, err := s.CreateCanonical(f.signed(f.payer), f.db, f.payer, f.payer, destMint)
			require.NoError(t, err)

			signer := f.owner
			if tc.signer != nil {
				signer = tc.signer
			}
			authority := f.owner
			if tc.authority != nil {
				authority = tc.authority(f)
			}

			err = s.Transfer(f.signed(signer, f.payer), f.db, src, dest, authority, tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			from, err := s.Account(f.db, src)
			require.NoError(t, err)
			to, err := s.Account(f.db, dest)
			require.NoError(t, err)
			if tc.wantErr == nil {
				assert.Equal(t, uint64(0), from.Amount)
				assert.Equal(t, uint64(1), to.Amount)
			} else {
				assert.Equal(t, uint64(1), from.Amount)
				assert.Equal(t, uint64(0), to.Amount)
			}
		})
	}
}

func TestSetOwner(t *testing.T) {
	f := newFixture(t)
	s := f.service
	next := weavetest.NewIdentity()

	addr, err := s.CreateCanonical(f.signed(f.payer), f.db, f.payer, f.owner, f.mint)
	require.NoError(t, err)

	err = s.SetOwner(f.signed(next), f.db, addr, f.owner, next)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	require.NoError(t, s.SetOwner(f.signed(f.owner), f.db, addr, f.owner, next))
	acc, err := s.Account(f.db, addr)
	require.NoError(t, err)
	assert.Equal(t, next, acc.Owner)

	// previous owner lost control
	err = s.SetOwner(f.signed(f.owner), f.db, addr, f.owner, f.owner)
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestCreateAndInitialize(t *testing.T) {
	f := newFixture(t)
	s := f.service
	account := weavetest.NewIdentity()

	// the account must authorize its creation
	err := s.CreateAndInitialize(f.signed(f.payer), f.db, f.payer, account, f.mint, f.owner)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// unknown mint
	err = s.CreateAndInitialize(f.signed(f.payer, account), f.db, f.payer, account, weavetest.NewIdentity(), f.owner)
	assert.True(t, errors.ErrNotFound.Is(err))

	require.NoError(t, s.CreateAndInitialize(f.signed(f.payer, account), f.db, f.payer, account, f.mint, f.owner))
	acc, err := s.Account(f.db, account)
	require.NoError(t, err)
	assert.Equal(t, s.ProgramID(), acc.Program)
	assert.Equal(t, uint64(testRent), f.balance(t, account))
}

func TestAccountsOfOtherPrograms(t *testing.T) {
	f := newFixture(t)
	other := NewService("other", f.auth, f.bank)
	require.NotEqual(t, f.service.ProgramID(), other.ProgramID())

	addr, err := other.CreateCanonical(f.signed(f.payer), f.db, f.payer, f.owner, f.mint)
	require.NoError(t, err)

	// The account is visible, but cannot be used.
	acc, err := f.service.Account(f.db, addr)
	require.NoError(t, err)
	assert.Equal(t, other.ProgramID(), acc.Program)

	err = f.service.Close(f.signed(f.owner), f.db, addr, f.owner, f.owner)
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestAllocate(t *testing.T) {
	f := newFixture(t)
	account := weavetest.NewIdentity()
	require.NoError(t, f.service.Allocate(f.signed(f.payer, account), f.db, f.payer, account))

	acc, err := f.service.Account(f.db, account)
	require.NoError(t, err)
	assert.False(t, acc.IsInitialized())

	dest, err := f.service.CreateCanonical(f.signed(f.payer), f.db, f.payer, f.owner, f.mint)
	require.NoError(t, err)
	err = f.service.Transfer(f.signed(f.owner), f.db, account, dest, f.owner, 1)
	assert.True(t, errors.ErrState.Is(err))
}

func TestRentRequiresFunds(t *testing.T) {
	f := newFixture(t)
	poor := weavetest.NewIdentity()
	_, err := f.service.CreateCanonical(f.signed(poor), f.db, poor, f.owner, f.mint)
	assert.True(t, errors.ErrInsufficientAmount.Is(err))
}
