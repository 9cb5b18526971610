/*
Package escrow implements a two party atomic swap of assets.

> An escrow is a financial arrangement where a third party holds and regulates
> payment of the funds required for two parties involved in a given transaction.

The initiator opens an escrow by pledging non-fungible assets and native
currency, and by declaring what the counterparty must pledge in exchange.
Initiator assets are moved into vaults: accounts at derived addresses,
controlled by a vault authority that is derived from both party identities.
Nobody holds a key for a vault or its authority. Only this extension can act
on their behalf, by re-deriving their addresses. Pledged currency is held by
the escrow record address, derived from the escrow ID.

The counterparty completes the swap with Exchange: in a single transaction its
pledged assets and currency go to the initiator, the vaulted assets and the
initiator currency go to the counterparty. Either party can cancel an open
escrow at any time, which returns everything to the initiator.

Every operation receives a flat list of account addresses. Its layout depends
on the escrow and is validated against the record before any asset is moved.
Each operation is a single transaction and must be executed behind a
savepoint, so that a failure at any step leaves no visible change.
*/
package escrow
