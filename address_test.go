package barter

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iov-one/barter/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressValidate(t *testing.T) {
	cases := map[string]struct {
		addr    Address
		wantErr *errors.Error
	}{
		"valid":     {addr: make(Address, AddressLength), wantErr: nil},
		"empty":     {addr: nil, wantErr: errors.ErrEmpty},
		"too short": {addr: make(Address, 20), wantErr: errors.ErrInput},
		"too long":  {addr: make(Address, 33), wantErr: errors.ErrInput},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if err := tc.addr.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestParseAddress(t *testing.T) {
	raw := make(Address, AddressLength)
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	b32, err := raw.Bech32("bart")
	require.NoError(t, err)

	cases := map[string]struct {
		enc     string
		want    Address
		wantErr *errors.Error
	}{
		"base58 without prefix": {
			enc:  raw.String(),
			want: raw,
		},
		"hex with prefix": {
			enc:  "hex:" + hex.EncodeToString(raw),
			want: raw,
		},
		"bech32 with prefix": {
			enc:  "bech32:" + b32,
			want: raw,
		},
		"unknown prefix": {
			enc:     "base64:AAAA",
			wantErr: errors.ErrType,
		},
		"invalid hex": {
			enc:     "hex:xyz",
			wantErr: errors.ErrInput,
		},
		"wrong length": {
			enc:     "hex:0102",
			wantErr: errors.ErrInput,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseAddress(tc.enc)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %+v", tc.wantErr, err)
			}
			if tc.wantErr == nil {
				assert.True(t, tc.want.Equals(got))
			}
		})
	}
}

func TestAddressJSON(t *testing.T) {
	addr := ProgramAddress("escrow")

	raw, err := json.Marshal(struct{ Owner Address }{Owner: addr})
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), addr.String()))

	var back struct{ Owner Address }
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, addr, back.Owner)

	var empty struct{ Owner Address }
	require.NoError(t, json.Unmarshal([]byte(`{"Owner": ""}`), &empty))
	assert.Nil(t, empty.Owner)
}

func TestAddressClone(t *testing.T) {
	addr := ProgramAddress("token")
	cpy := addr.Clone()
	cpy[0]++
	assert.False(t, addr.Equals(cpy))
	assert.Nil(t, Address(nil).Clone())
}
