package x

import (
	"github.com/iov-one/barter"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding signature checks for all extensions.
type Authenticator interface {
	// GetAddresses reveals all addresses that authorized the current
	// transaction.
	GetAddresses(barter.Context) []barter.Address
	// HasAddress checks if given address authorized the current
	// transaction.
	HasAddress(barter.Context, barter.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetAddresses combines all addresses from all Authenticators. Duplicates
// are removed, the order of the first appearance is kept.
func (m MultiAuth) GetAddresses(ctx barter.Context) []barter.Address {
	var res []barter.Address
	for _, impl := range m.impls {
		for _, a := range impl.GetAddresses(ctx) {
			if !contains(res, a) {
				res = append(res, a)
			}
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx barter.Context, addr barter.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

func contains(addrs []barter.Address, a barter.Address) bool {
	for _, x := range addrs {
		if x.Equals(a) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetAddresses method of any Authenticator
func GetAddresses(ctx barter.Context, auth Authenticator) []barter.Address {
	return auth.GetAddresses(ctx)
}

// MainSigner returns the first authenticated address if any, otherwise nil
func MainSigner(ctx barter.Context, auth Authenticator) barter.Address {
	signers := auth.GetAddresses(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx barter.Context, auth Authenticator, required []barter.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasNAddresses returns true if at least n elements in requested are
// also in context.
func HasNAddresses(ctx barter.Context, auth Authenticator, required []barter.Address, n int) bool {
	// Special case: is this an error???
	if n <= 0 {
		return true
	}

	for _, r := range required {
		if auth.HasAddress(ctx, r) {
			n--
			if n == 0 {
				return true
			}
		}
	}
	return false
}
