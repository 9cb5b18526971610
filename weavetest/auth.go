package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/barter"
)

// Auth is a mock authenticator that always authenticates the same set of
// addresses.
type Auth struct {
	// Signer represents an authentication of a single signer. This is a
	// convinience attribute when creating an authentication method for a
	// single signer.
	Signer barter.Address

	// Signers represents an authentication of multiple signers.
	Signers []barter.Address
}

func (a *Auth) GetAddresses(barter.Context) []barter.Address {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx barter.Context, addr barter.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock authenticator.
//
// This implementation is using context to store and retrieve signers.
type CtxAuth struct {
	// Key used to set and retrieve signers from the context. For
	// convinience only string type keys are allowed.
	Key string
}

// SetAddresses returns a context that authenticates given addresses. Any
// previously set addresses are replaced.
func (a *CtxAuth) SetAddresses(ctx barter.Context, signers ...barter.Address) barter.Context {
	return context.WithValue(ctx, a.Key, signers)
}

func (a *CtxAuth) GetAddresses(ctx barter.Context) []barter.Address {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	addrs, ok := val.([]barter.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []barter.Address got %T", val))
	}
	return addrs
}

func (a *CtxAuth) HasAddress(ctx barter.Context, addr barter.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
