package escrow

import (
	"context"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x"
)

const (
	authoritySeed = "vault-authority"
	vaultSeed     = "vault-account"
	recordSeed    = "escrow-record"
)

var programID = barter.ProgramAddress("escrow")

// ProgramID returns the address all escrow addresses are derived from.
func ProgramID() barter.Address {
	return programID
}

// VaultAuthority returns the owner of all vaults of the escrows between the
// two parties, together with the bump that proves the derivation.
func VaultAuthority(initiator, counterparty barter.Address) (barter.Address, uint8, error) {
	addr, bump, err := barter.FindDerivedAddress(programID, []byte(authoritySeed), initiator, counterparty)
	if err != nil {
		return nil, 0, errors.Wrap(err, "vault authority")
	}
	return addr, bump, nil
}

// VaultAddress returns the address of the vault holding the asset taken from
// the source account. ErrDerivation is returned if the salt does not produce
// a valid address.
func VaultAddress(source barter.Address, salt uint8) (barter.Address, error) {
	return barter.CreateDerivedAddress(programID, []byte(vaultSeed), source, []byte{salt})
}

// FindVaultAddress returns the canonical vault address and salt for the asset
// taken from the source account. Clients use it to build Initiate requests.
func FindVaultAddress(source barter.Address) (barter.Address, uint8, error) {
	return barter.FindDerivedAddress(programID, []byte(vaultSeed), source)
}

type contextKey int

const contextKeySigners contextKey = iota

// withSigner returns a context in which given derived addresses are
// authenticated. Only addresses derived by this package may be passed.
func withSigner(ctx barter.Context, addrs ...barter.Address) barter.Context {
	prev := Authenticate{}.GetAddresses(ctx)
	signers := make([]barter.Address, 0, len(prev)+len(addrs))
	signers = append(signers, prev...)
	signers = append(signers, addrs...)
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate exposes the addresses this package signs for. Add it to the
// authenticator of the asset service, so that the escrow can act on behalf of
// vaults and vault authorities.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetAddresses returns all derived addresses that authorized the current
// operation.
func (Authenticate) GetAddresses(ctx barter.Context) []barter.Address {
	val, _ := ctx.Value(contextKeySigners).([]barter.Address)
	return val
}

// HasAddress returns true if the escrow authorized the current operation
// on behalf of given address.
func (a Authenticate) HasAddress(ctx barter.Context, addr barter.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
