package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// custodian acts on vaults on behalf of the vault authority of a single
// pair of parties. Every vault operation of the engine goes through it.
type custodian struct {
	assets    AssetService
	initiator barter.Address
	authority barter.Address
}

func newCustodian(assets AssetService, initiator, counterparty barter.Address) (*custodian, error) {
	authority, _, err := VaultAuthority(initiator, counterparty)
	if err != nil {
		return nil, err
	}
	return &custodian{assets: assets, initiator: initiator, authority: authority}, nil
}

// lockAsset creates the vault, hands it to the vault authority and moves
// the asset from its source into it. The initiator pays the vault rent.
func (c *custodian) lockAsset(ctx barter.Context, db barter.KVStore, v vaulted) error {
	if err := c.assets.CreateAndInitialize(withSigner(ctx, v.vault), db, c.initiator, v.vault, v.mint, c.initiator); err != nil {
		return errors.Wrapf(err, "create vault %s", v.vault)
	}
	if err := c.assets.SetOwner(ctx, db, v.vault, c.initiator, c.authority); err != nil {
		return errors.Wrapf(err, "hand over vault %s", v.vault)
	}
	if err := c.assets.Transfer(ctx, db, v.source, v.vault, c.initiator, 1); err != nil {
		return errors.Wrapf(err, "lock asset in vault %s", v.vault)
	}
	return nil
}

// returnVaultedAsset moves the single unit held by the vault to dest.
func (c *custodian) returnVaultedAsset(ctx barter.Context, db barter.KVStore, vault, dest barter.Address) error {
	if err := c.assets.Transfer(withSigner(ctx, c.authority), db, vault, dest, c.authority, 1); err != nil {
		return errors.Wrapf(err, "release vault %s", vault)
	}
	return nil
}

// closeVault removes an empty vault. Its rent goes back to the initiator.
func (c *custodian) closeVault(ctx barter.Context, db barter.KVStore, vault barter.Address) error {
	if err := c.assets.Close(withSigner(ctx, c.authority), db, vault, c.authority, c.initiator); err != nil {
		return errors.Wrapf(err, "close vault %s", vault)
	}
	return nil
}

// release empties and closes every vault, sending each asset to its
// destination.
func (c *custodian) release(ctx barter.Context, db barter.KVStore, vs []vaulted) error {
	for _, v := range vs {
		if err := c.returnVaultedAsset(ctx, db, v.vault, v.dest); err != nil {
			return err
		}
		if err := c.closeVault(ctx, db, v.vault); err != nil {
			return err
		}
	}
	return nil
}
