package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x/token"
)

// assetList consumes a flat list of account references positionally. The
// length of the list is checked once, when the list is created, against the
// count expected by the operation.
type assetList struct {
	refs []barter.Address
	pos  int
}

func newAssetList(refs []barter.Address, want uint64) (*assetList, error) {
	if uint64(len(refs)) != want {
		return nil, errors.Wrapf(ErrAssetCountMismatch, "want %d references, got %d", want, len(refs))
	}
	for i, r := range refs {
		if err := r.Validate(); err != nil {
			return nil, errors.Field(errors.Index("Assets", i), err, "invalid reference")
		}
	}
	return &assetList{refs: refs}, nil
}

func (l *assetList) next() barter.Address {
	r := l.refs[l.pos]
	l.pos++
	return r
}

// Expected reference list lengths of each operation. Counts are at most
// 32 bit wide, so the results cannot overflow.

func initiateRefCount(initiatorAssets, counterpartyAssets uint64) uint64 {
	return 3*initiatorAssets + 2*counterpartyAssets
}

func exchangeRefCount(initiatorAssets, counterpartyAssets uint64) uint64 {
	return initiateRefCount(initiatorAssets, counterpartyAssets) + 2*(initiatorAssets+counterpartyAssets)
}

func cancelRefCount(initiatorAssets uint64) uint64 {
	return 3 * initiatorAssets
}

// vaulted describes a single initiator asset held in a vault.
type vaulted struct {
	source barter.Address
	vault  barter.Address
	mint   barter.Address
	salt   uint8
	// dest is where the asset goes on Exchange.
	dest barter.Address
}

// pledged describes a single counterparty asset.
type pledged struct {
	source barter.Address
	mint   barter.Address
	// dest is where the asset goes on Exchange.
	dest barter.Address
}

// validator checks accounts referenced by an operation. It never writes.
type validator struct {
	db        barter.ReadOnlyKVStore
	assets    AssetService
	program   barter.Address
	authority barter.Address
}

// initiate validates the list given to Initiate:
//
//	initiator assets × (source, vault, mint)
//	counterparty assets × (source, mint)
//
// Initiator sources must hold the asset, vaults must not exist yet and
// counterparty sources must be empty.
func (v *validator) initiate(msg *InitiateMsg) ([]vaulted, []pledged, error) {
	l, err := newAssetList(msg.Assets, msg.refCount())
	if err != nil {
		return nil, nil, err
	}
	// The list length matched, so both counts fit in an int.
	ni, nc := int(msg.InitiatorAssetCount), int(msg.CounterpartyAssetCount)

	vs := make([]vaulted, ni)
	for i := range vs {
		vs[i] = vaulted{source: l.next(), vault: l.next(), mint: l.next(), salt: msg.VaultSalts[i]}
		if err := v.checkHolding(vs[i].source, msg.Initiator, vs[i].mint, 1); err != nil {
			return nil, nil, errors.Wrapf(err, "initiator asset %d", i)
		}
		if err := v.checkNewVault(vs[i].vault, vs[i].source, vs[i].salt); err != nil {
			return nil, nil, errors.Wrapf(err, "initiator asset %d", i)
		}
	}
	ps := make([]pledged, nc)
	for i := range ps {
		ps[i] = pledged{source: l.next(), mint: l.next()}
		if err := v.checkHolding(ps[i].source, msg.Counterparty, ps[i].mint, 0); err != nil {
			return nil, nil, errors.Wrapf(err, "counterparty asset %d", i)
		}
	}
	if err := distinct(vs, ps); err != nil {
		return nil, nil, err
	}
	return vs, ps, nil
}

// exchange validates the list given to Exchange. The first block re-validates
// the escrowed state:
//
//	initiator assets × (source, vault, mint)
//	counterparty assets × (source, mint)
//
// The second block lists the destinations:
//
//	initiator assets × (counterparty destination, mint)
//	counterparty assets × (initiator destination, mint)
func (v *validator) exchange(e *Escrow, refs []barter.Address) ([]vaulted, []pledged, error) {
	ni, nc := e.Summary()
	l, err := newAssetList(refs, exchangeRefCount(uint64(ni), uint64(nc)))
	if err != nil {
		return nil, nil, err
	}

	vs, err := v.vaults(e, l)
	if err != nil {
		return nil, nil, err
	}
	ps := make([]pledged, nc)
	for i := range ps {
		ps[i] = pledged{source: l.next(), mint: l.next()}
		if !ps[i].source.Equals(e.CounterpartyAssets[i]) {
			return nil, nil, errors.Wrapf(ErrRecordedAccountMismatch, "counterparty asset %d", i)
		}
		if err := v.checkHolding(ps[i].source, e.Counterparty, ps[i].mint, 1); err != nil {
			return nil, nil, errors.Wrapf(err, "counterparty asset %d", i)
		}
	}

	for i := range vs {
		dest, mint := l.next(), l.next()
		if !mint.Equals(vs[i].mint) {
			return nil, nil, errors.Wrapf(ErrMintMismatch, "counterparty destination %d", i)
		}
		if err := v.checkHolding(dest, e.Counterparty, mint, 0); err != nil {
			return nil, nil, errors.Wrapf(err, "counterparty destination %d", i)
		}
		vs[i].dest = dest
	}
	for i := range ps {
		dest, mint := l.next(), l.next()
		if !mint.Equals(ps[i].mint) {
			return nil, nil, errors.Wrapf(ErrMintMismatch, "initiator destination %d", i)
		}
		if err := v.checkHolding(dest, e.Initiator, mint, 0); err != nil {
			return nil, nil, errors.Wrapf(err, "initiator destination %d", i)
		}
		ps[i].dest = dest
	}
	if err := distinct(vs, ps); err != nil {
		return nil, nil, err
	}
	return vs, ps, nil
}

// cancel validates the list given to both cancellations:
//
//	initiator assets × (source, vault, mint)
//
// Assets return to their source accounts.
func (v *validator) cancel(e *Escrow, refs []barter.Address) ([]vaulted, error) {
	ni, _ := e.Summary()
	l, err := newAssetList(refs, cancelRefCount(uint64(ni)))
	if err != nil {
		return nil, err
	}
	vs, err := v.vaults(e, l)
	if err != nil {
		return nil, err
	}
	for i := range vs {
		vs[i].dest = vs[i].source
	}
	return vs, nil
}

// vaults reads and validates the initiator (source, vault, mint) triples of
// an open escrow.
func (v *validator) vaults(e *Escrow, l *assetList) ([]vaulted, error) {
	vs := make([]vaulted, len(e.InitiatorAssets))
	for i := range vs {
		vs[i] = vaulted{source: l.next(), vault: l.next(), mint: l.next(), salt: e.VaultSalts[i]}
		if !vs[i].source.Equals(e.InitiatorAssets[i]) {
			return nil, errors.Wrapf(ErrRecordedAccountMismatch, "initiator asset %d", i)
		}
		if err := v.checkHolding(vs[i].source, e.Initiator, vs[i].mint, 0); err != nil {
			return nil, errors.Wrapf(err, "initiator asset %d", i)
		}
		if err := v.checkVault(vs[i].vault, vs[i].source, vs[i].salt, vs[i].mint); err != nil {
			return nil, errors.Wrapf(err, "initiator asset %d", i)
		}
	}
	return vs, nil
}

// checkHolding validates the canonical account of the owner for the mint,
// holding exactly want units.
func (v *validator) checkHolding(addr, owner, mint barter.Address, want uint64) error {
	acc, err := v.account(addr)
	if err != nil {
		return err
	}
	if !acc.Owner.Equals(owner) {
		return errors.Wrapf(ErrHolderMismatch, "account %s", addr)
	}
	if !acc.Mint.Equals(mint) {
		return errors.Wrapf(ErrMintMismatch, "account %s", addr)
	}
	canonical, err := token.CanonicalAddress(v.program, owner, mint)
	if err != nil {
		return err
	}
	if !addr.Equals(canonical) {
		return errors.Wrapf(ErrCanonicalAccountMismatch, "account %s", addr)
	}
	return checkAmount(addr, acc.Amount, want)
}

// checkVault validates a vault derived from the source and salt, held by the
// vault authority, holding exactly one unit of the mint.
func (v *validator) checkVault(vault, source barter.Address, salt uint8, mint barter.Address) error {
	if err := checkVaultAddress(vault, source, salt); err != nil {
		return err
	}
	acc, err := v.account(vault)
	if err != nil {
		return err
	}
	if !acc.Owner.Equals(v.authority) {
		return errors.Wrapf(ErrHolderMismatch, "vault %s", vault)
	}
	if !acc.Mint.Equals(mint) {
		return errors.Wrapf(ErrMintMismatch, "vault %s", vault)
	}
	return checkAmount(vault, acc.Amount, 1)
}

// checkNewVault validates the address of a vault that is about to be
// created.
func (v *validator) checkNewVault(vault, source barter.Address, salt uint8) error {
	if err := checkVaultAddress(vault, source, salt); err != nil {
		return err
	}
	switch _, err := v.assets.Account(v.db, vault); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "vault %s already exists", vault)
	case errors.ErrNotFound.Is(err):
		return nil
	default:
		return err
	}
}

func checkVaultAddress(vault, source barter.Address, salt uint8) error {
	want, err := VaultAddress(source, salt)
	if err != nil {
		return errors.Wrapf(ErrVaultMismatch, "salt %d: %s", salt, err)
	}
	if !vault.Equals(want) {
		return errors.Wrapf(ErrVaultMismatch, "vault %s", vault)
	}
	return nil
}

// account loads an initialized account of the trusted asset program.
func (v *validator) account(addr barter.Address) (*token.Account, error) {
	acc, err := v.assets.Account(v.db, addr)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrUninitializedAccount, "account %s does not exist", addr)
	case err != nil:
		return nil, err
	}
	if !acc.Program.Equals(v.program) {
		return nil, errors.Wrapf(ErrIncorrectProgram, "account %s", addr)
	}
	if !acc.IsInitialized() {
		return nil, errors.Wrapf(ErrUninitializedAccount, "account %s", addr)
	}
	return acc, nil
}

func checkAmount(addr barter.Address, have, want uint64) error {
	switch {
	case have == want:
		return nil
	case have < want:
		return errors.Wrapf(ErrAssetNotFound, "account %s holds %d, want %d", addr, have, want)
	default:
		return errors.Wrapf(ErrAssetFound, "account %s holds %d, want %d", addr, have, want)
	}
}

// distinct ensures no account is referenced twice in a role that moves an
// asset.
func distinct(vs []vaulted, ps []pledged) error {
	seen := make(map[string]struct{}, 2*len(vs)+2*len(ps))
	add := func(a barter.Address) error {
		if a == nil {
			return nil
		}
		k := string(a)
		if _, ok := seen[k]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "account %s referenced twice", a)
		}
		seen[k] = struct{}{}
		return nil
	}
	for _, v := range vs {
		if err := add(v.source); err != nil {
			return err
		}
		if err := add(v.vault); err != nil {
			return err
		}
		if err := add(v.dest); err != nil {
			return err
		}
	}
	for _, p := range ps {
		if err := add(p.source); err != nil {
			return err
		}
		if err := add(p.dest); err != nil {
			return err
		}
	}
	return nil
}
