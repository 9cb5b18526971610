/*

Package barter defines interfaces used throughout the app, such as: storage,
transactions, handlers, addresses and their deterministic derivation.
It also contains helpers to work with context and binary encoding.
Look into this package to get an brief overview of design decisions made
around interfaces and extension building blocks.

*/

package barter
