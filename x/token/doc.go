/*
Package token implements a simple non-fungible and fungible asset registry.

A mint defines an asset type. Units of a mint are held by accounts. Every
account belongs to the program (service instance) that created it, holds units
of a single mint and is controlled by its owner. Each (owner, mint) pair has
one canonical account, whose address is derived from the owner, the program
and the mint. Non-fungible assets are mints with a supply of one unit.

Creating an account or a mint requires a storage deposit (rent) in the native
currency, paid to the new address. The deposit is returned to a chosen
destination when the account is closed.
*/
package token
