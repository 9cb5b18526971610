package barter

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/iov-one/barter/errors"
)

const (
	// MaxSeeds is the maximum number of seeds a derived address can be
	// computed from, including the bump.
	MaxSeeds = 16

	// MaxSeedLength is the maximum length in bytes of a single seed.
	MaxSeedLength = 32

	derivedAddressMarker = "DerivedAddress"
)

// ProgramAddress returns the identifier of a program (extension) with the
// given name. It is the namespace all addresses derived by that program live
// in.
func ProgramAddress(name string) Address {
	sum := sha256.Sum256([]byte("program/" + name))
	return Address(sum[:])
}

// CreateDerivedAddress computes a deterministic address for the given
// program from the given seeds. The returned address is never a valid ed25519
// public key, so nobody can hold a private key for it. Only the program can
// authorize operations on behalf of such an address, by presenting the seeds.
//
// ErrDerivation is returned when the seeds produce a valid curve point. Use
// FindDerivedAddress to search for a bump seed that avoids it.
func CreateDerivedAddress(program Address, seeds ...[]byte) (Address, error) {
	if len(seeds) > MaxSeeds {
		return nil, errors.Wrapf(errors.ErrDerivation, "too many seeds: %d", len(seeds))
	}
	if err := program.Validate(); err != nil {
		return nil, errors.Wrap(err, "program")
	}

	h := sha256.New()
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return nil, errors.Wrapf(errors.ErrDerivation, "seed %d too long: %d", i, len(s))
		}
		_, _ = h.Write(s)
	}
	_, _ = h.Write(program)
	_, _ = h.Write([]byte(derivedAddressMarker))
	sum := h.Sum(nil)

	if IsOnCurve(sum) {
		return nil, errors.Wrap(errors.ErrDerivation, "address on curve")
	}
	return Address(sum), nil
}

// FindDerivedAddress returns the first valid derived address for the given
// seeds, together with the bump that was appended to the seeds to produce it.
// Bumps are tried from 255 down to 0.
func FindDerivedAddress(program Address, seeds ...[]byte) (Address, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return nil, 0, errors.Wrapf(errors.ErrDerivation, "too many seeds: %d", len(seeds))
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return nil, 0, errors.Wrapf(errors.ErrDerivation, "seed %d too long: %d", i, len(s))
		}
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		// With validated seeds the only possible failure is an on
		// curve digest.
		if addr, err := CreateDerivedAddress(program, withBump...); err == nil {
			return addr, uint8(bump), nil
		}
	}
	return nil, 0, errors.Wrap(errors.ErrDerivation, "no viable bump")
}

// IsOnCurve returns true if given 32 bytes decode to a valid ed25519 point.
func IsOnCurve(raw []byte) bool {
	if len(raw) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(raw)
	return err == nil
}
