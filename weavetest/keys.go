package weavetest

import (
	"crypto/rand"
	"encoding/binary"
	"testing"

	"github.com/iov-one/barter"
	"golang.org/x/crypto/ed25519"
)

// NewIdentity returns the address of a freshly generated ed25519 key. Such
// an address can sign, unlike any derived address.
func NewIdentity() barter.Address {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return barter.Address(pub)
}

// SequenceID returns an ID encoded as if it was generated by the orm
// sequence.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// ParseAddress takes an address in a human readable format and returns
// its binary representation.
func ParseAddress(t testing.TB, encodedAddress string) barter.Address {
	t.Helper()

	addr, err := barter.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
