package escrow

import (
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/weavetest"
	"github.com/iov-one/barter/x"
	"github.com/iov-one/barter/x/cash"
	"github.com/iov-one/barter/x/token"
	"github.com/stretchr/testify/require"
)

const (
	vaultRent  = 3
	recordRent = 11
	funds      = 1000
)

type fixture struct {
	ctx    barter.Context
	db     barter.CacheableKVStore
	auth   *weavetest.CtxAuth
	bank   cash.Controller
	tokens *token.Service
	engine *Engine

	initiator    barter.Address
	counterparty barter.Address
	// minter creates all mints and pays for accounts the parties do not
	// create themselves.
	minter barter.Address
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	f := &fixture{
		ctx:          context.Background(),
		db:           store.MemStore(),
		auth:         &weavetest.CtxAuth{Key: "auth"},
		bank:         cash.NewController(),
		initiator:    weavetest.NewIdentity(),
		counterparty: weavetest.NewIdentity(),
		minter:       weavetest.NewIdentity(),
	}
	f.tokens = token.NewService("token", x.ChainAuth(f.auth, Authenticate{}), f.bank)
	f.engine = NewEngine(f.auth, f.tokens, f.bank)

	require.NoError(t, token.SaveConf(f.db, &token.Configuration{AccountRent: vaultRent}))
	require.NoError(t, SaveConf(f.db, &Configuration{AssetProgram: f.tokens.ProgramID(), RecordRent: recordRent}))
	for _, a := range []barter.Address{f.initiator, f.counterparty, f.minter} {
		require.NoError(t, f.bank.IssueCoins(f.db, a, funds))
	}
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

// spendDownTo moves native currency away from addr until exactly want is
// left.
func (f *fixture) spendDownTo(t testing.TB, addr barter.Address, want uint64) {
	t.Helper()
	have := f.balance(t, addr)
	require.True(t, have > want, "balance %d not above %d", have, want)
	require.NoError(t, f.bank.MoveCoins(f.db, addr, f.minter, have-want))
}

// amount returns the number of units held by the account, or -1 if the
// account does not exist.
func (f *fixture) amount(t testing.TB, addr barter.Address) int64 {
	t.Helper()
	acc, err := f.tokens.Account(f.db, addr)
	if errors.ErrNotFound.Is(err) {
		return -1
	}
	require.NoError(t, err)
	return int64(acc.Amount)
}

// newMint registers a mint with no supply.
func (f *fixture) newMint(t testing.TB) barter.Address {
	t.Helper()
	mint := weavetest.NewIdentity()
	require.NoError(t, f.tokens.CreateMint(f.signed(f.minter, mint), f.db, f.minter, mint, f.minter, 0))
	return mint
}

// canonical creates an empty canonical account of the owner.
func (f *fixture) canonical(t testing.TB, owner, mint barter.Address) barter.Address {
	t.Helper()
	addr, err := f.tokens.CreateCanonical(f.signed(f.minter), f.db, f.minter, owner, mint)
	require.NoError(t, err)
	return addr
}

func (f *fixture) mintTo(t testing.TB, mint, account barter.Address) {
	t.Helper()
	require.NoError(t, f.tokens.MintTo(f.signed(f.minter), f.db, mint, account, 1))
}

// swap holds all accounts taking part in a single trade.
type swap struct {
	// initiator assets
	mints   []barter.Address
	sources []barter.Address
	vaults  []barter.Address
	salts   []byte
	// destinations of initiator assets, owned by the counterparty
	dests []barter.Address

	// counterparty assets
	cpMints   []barter.Address
	cpSources []barter.Address
	// destinations of counterparty assets, owned by the initiator
	cpDests []barter.Address

	initiatorPledge    uint64
	counterpartyPledge uint64
}

// newSwap creates ni assets held by the initiator and empty counterparty
// accounts for nc assets. All destination accounts are created empty.
func (f *fixture) newSwap(t testing.TB, ni, nc int, initiatorPledge, counterpartyPledge uint64) *swap {
	t.Helper()
	s := &swap{initiatorPledge: initiatorPledge, counterpartyPledge: counterpartyPledge}
	for i := 0; i < ni; i++ {
		mint := f.newMint(t)
		src := f.canonical(t, f.initiator, mint)
		f.mintTo(t, mint, src)
		vault, salt, err := FindVaultAddress(src)
		require.NoError(t, err)

		s.mints = append(s.mints, mint)
		s.sources = append(s.sources, src)
		s.vaults = append(s.vaults, vault)
		s.salts = append(s.salts, salt)
		s.dests = append(s.dests, f.canonical(t, f.counterparty, mint))
	}
	for i := 0; i < nc; i++ {
		mint := f.newMint(t)
		s.cpMints = append(s.cpMints, mint)
		s.cpSources = append(s.cpSources, f.canonical(t, f.counterparty, mint))
		s.cpDests = append(s.cpDests, f.canonical(t, f.initiator, mint))
	}
	return s
}

// fund issues every counterparty asset into its source account.
func (f *fixture) fund(t testing.TB, s *swap) {
	t.Helper()
	for i, mint := range s.cpMints {
		f.mintTo(t, mint, s.cpSources[i])
	}
}

func (s *swap) initiateMsg(f *fixture) *InitiateMsg {
	var refs []barter.Address
	for i := range s.sources {
		refs = append(refs, s.sources[i], s.vaults[i], s.mints[i])
	}
	for i := range s.cpSources {
		refs = append(refs, s.cpSources[i], s.cpMints[i])
	}
	return &InitiateMsg{
		Initiator:              f.initiator,
		Counterparty:           f.counterparty,
		InitiatorPledge:        s.initiatorPledge,
		CounterpartyPledge:     s.counterpartyPledge,
		InitiatorAssetCount:    uint32(len(s.sources)),
		CounterpartyAssetCount: uint32(len(s.cpSources)),
		VaultSalts:             s.salts,
		Assets:                 refs,
	}
}

func (s *swap) cancelRefs() []barter.Address {
	var refs []barter.Address
	for i := range s.sources {
		refs = append(refs, s.sources[i], s.vaults[i], s.mints[i])
	}
	return refs
}

func (s *swap) exchangeMsg(f *fixture, id []byte) *ExchangeMsg {
	refs := s.cancelRefs()
	for i := range s.cpSources {
		refs = append(refs, s.cpSources[i], s.cpMints[i])
	}
	for i := range s.dests {
		refs = append(refs, s.dests[i], s.mints[i])
	}
	for i := range s.cpDests {
		refs = append(refs, s.cpDests[i], s.cpMints[i])
	}
	return &ExchangeMsg{
		EscrowID:           id,
		Initiator:          f.initiator,
		Counterparty:       f.counterparty,
		InitiatorPledge:    s.initiatorPledge,
		CounterpartyPledge: s.counterpartyPledge,
		Assets:             refs,
	}
}

// initiate opens the escrow of the swap and returns its ID.
func (f *fixture) initiate(t testing.TB, s *swap) []byte {
	t.Helper()
	id, err := f.engine.Initiate(f.signed(f.initiator), f.db, s.initiateMsg(f))
	require.NoError(t, err)
	return id
}

// snapshot captures every balance and account the swap can change.
func (f *fixture) snapshot(t testing.TB, s *swap, id []byte) map[string]int64 {
	t.Helper()
	record, err := RecordAddress(id)
	require.NoError(t, err)

	state := map[string]int64{
		"initiator":    int64(f.balance(t, f.initiator)),
		"counterparty": int64(f.balance(t, f.counterparty)),
		"record":       int64(f.balance(t, record)),
	}
	groups := map[string][]barter.Address{
		"source":    s.sources,
		"vault":     s.vaults,
		"dest":      s.dests,
		"cp source": s.cpSources,
		"cp dest":   s.cpDests,
	}
	for name, addrs := range groups {
		for _, a := range addrs {
			state[name+" "+a.String()] = f.amount(t, a)
			state[name+" rent "+a.String()] = int64(f.balance(t, a))
		}
	}
	st, err := f.engine.State(f.db, id)
	require.NoError(t, err)
	state["state"] = int64(st)
	return state
}
