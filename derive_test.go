package barter

import (
	"bytes"
	"testing"

	"github.com/iov-one/barter/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"
)

func TestFindDerivedAddress(t *testing.T) {
	program := ProgramAddress("escrow")
	a := bytes.Repeat([]byte{1}, AddressLength)
	b := bytes.Repeat([]byte{2}, AddressLength)

	addr, bump, err := FindDerivedAddress(program, []byte("vault-authority"), a, b)
	require.NoError(t, err)
	require.NoError(t, addr.Validate())
	assert.False(t, IsOnCurve(addr))

	// The same inputs always give the same result.
	again, againBump, err := FindDerivedAddress(program, []byte("vault-authority"), a, b)
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	assert.Equal(t, bump, againBump)

	// The bump is a proof that allows to recreate the address directly.
	direct, err := CreateDerivedAddress(program, []byte("vault-authority"), a, b, []byte{bump})
	require.NoError(t, err)
	assert.Equal(t, addr, direct)

	// Seed order and program are part of the derivation.
	swapped, _, err := FindDerivedAddress(program, []byte("vault-authority"), b, a)
	require.NoError(t, err)
	assert.False(t, addr.Equals(swapped))

	other, _, err := FindDerivedAddress(ProgramAddress("token"), []byte("vault-authority"), a, b)
	require.NoError(t, err)
	assert.False(t, addr.Equals(other))
}

func TestCreateDerivedAddressRejectsOnCurve(t *testing.T) {
	program := ProgramAddress("escrow")
	seed := []byte("vault-account")

	// Roughly half of all digests are valid points. Among 256 bumps at
	// least one must be rejected and at least one accepted.
	var accepted, rejected int
	for bump := 0; bump < 256; bump++ {
		_, err := CreateDerivedAddress(program, seed, []byte{byte(bump)})
		switch {
		case err == nil:
			accepted++
		case errors.ErrDerivation.Is(err):
			rejected++
		default:
			t.Fatalf("unexpected error: %+v", err)
		}
	}
	assert.NotZero(t, accepted)
	assert.NotZero(t, rejected)
}

func TestDerivationSeedLimits(t *testing.T) {
	program := ProgramAddress("escrow")

	_, err := CreateDerivedAddress(program, make([]byte, MaxSeedLength+1))
	assert.True(t, errors.ErrDerivation.Is(err))

	_, _, err = FindDerivedAddress(program, make([]byte, MaxSeedLength+1))
	assert.True(t, errors.ErrDerivation.Is(err))

	seeds := make([][]byte, MaxSeeds)
	for i := range seeds {
		seeds[i] = []byte{byte(i)}
	}
	_, _, err = FindDerivedAddress(program, seeds...)
	assert.True(t, errors.ErrDerivation.Is(err))

	_, err = CreateDerivedAddress(program, append(seeds, []byte{1})...)
	assert.True(t, errors.ErrDerivation.Is(err))
}

func TestIdentityKeysAreOnCurve(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	assert.True(t, IsOnCurve(pub))
	assert.False(t, IsOnCurve(pub[:20]))
}
