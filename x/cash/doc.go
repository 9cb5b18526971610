/*
Package cash implements the native currency of the ledger.

Each address owns a single wallet holding an amount of the native currency.
Wallets are created when they first receive funds and removed once empty. Other
extensions move funds using the Controller, users can send funds with SendMsg.
*/
package cash
