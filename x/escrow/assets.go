package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/x/token"
)

// AssetService moves assets between accounts. Every call either succeeds or
// fails without a visible change. The escrow never changes asset accounts
// directly.
//
// *token.Service implements this interface.
type AssetService interface {
	ProgramID() barter.Address
	Account(db barter.ReadOnlyKVStore, addr barter.Address) (*token.Account, error)
	// AccountRent is charged to the payer of CreateAndInitialize.
	AccountRent(db barter.ReadOnlyKVStore) (uint64, error)
	CreateAndInitialize(ctx barter.Context, db barter.KVStore, payer, account, mint, owner barter.Address) error
	Transfer(ctx barter.Context, db barter.KVStore, src, dest, authority barter.Address, amount uint64) error
	SetOwner(ctx barter.Context, db barter.KVStore, account, current, next barter.Address) error
	Close(ctx barter.Context, db barter.KVStore, account, authority, rentDest barter.Address) error
}

var _ AssetService = (*token.Service)(nil)
