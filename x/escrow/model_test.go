package escrow

import (
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/weavetest"
	"github.com/iov-one/barter/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestEscrowValidate(t *testing.T) {
	alice := weavetest.NewIdentity()
	bob := weavetest.NewIdentity()
	asset := weavetest.NewIdentity()

	cases := map[string]struct {
		model    *Escrow
		wantErrs map[string]*errors.Error
	}{
		"valid assets for currency": {
			model: &Escrow{
				Initiator:          alice,
				InitiatorAssets:    []barter.Address{asset},
				VaultSalts:         []byte{254},
				Counterparty:       bob,
				CounterpartyPledge: 5,
			},
			wantErrs: map[string]*errors.Error{
				"Initiator":       nil,
				"InitiatorPledge": nil,
				"VaultSalts":      nil,
			},
		},
		"nothing pledged": {
			model: &Escrow{
				Initiator:    alice,
				Counterparty: bob,
			},
			wantErrs: map[string]*errors.Error{
				"InitiatorPledge":    ErrNoInitiatorPledge,
				"CounterpartyPledge": ErrNoCounterpartyPledge,
			},
		},
		"salt missing": {
			model: &Escrow{
				Initiator:          alice,
				InitiatorAssets:    []barter.Address{asset, asset},
				VaultSalts:         []byte{1},
				Counterparty:       bob,
				CounterpartyAssets: []barter.Address{asset},
			},
			wantErrs: map[string]*errors.Error{
				"VaultSalts": ErrSaltCountMismatch,
			},
		},
		"invalid addresses": {
			model: &Escrow{
				Initiator:          barter.Address("short"),
				InitiatorPledge:    1,
				Counterparty:       bob,
				CounterpartyAssets: []barter.Address{asset, nil},
			},
			wantErrs: map[string]*errors.Error{
				"Initiator":            errors.ErrInput,
				"CounterpartyAssets.0": nil,
				"CounterpartyAssets.1": errors.ErrEmpty,
			},
		},
		"trade with oneself": {
			model: &Escrow{
				Initiator:          alice,
				InitiatorPledge:    1,
				Counterparty:       alice,
				CounterpartyPledge: 1,
			},
			wantErrs: map[string]*errors.Error{
				"Counterparty": errors.ErrInput,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.model.Validate()
			for field, want := range tc.wantErrs {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestEscrowBucket(t *testing.T) {
	db := store.MemStore()
	b := NewBucket()

	e := Escrow{
		Initiator:          weavetest.NewIdentity(),
		InitiatorPledge:    3,
		Counterparty:       weavetest.NewIdentity(),
		CounterpartyAssets: []barter.Address{weavetest.NewIdentity()},
	}
	id, err := b.Put(db, nil, &e)
	require.NoError(t, err)
	assert.Equal(t, weavetest.SequenceID(1), id)

	var got Escrow
	require.NoError(t, b.One(db, id, &got))
	assert.Equal(t, e.Initiator, got.Initiator)
	assert.Equal(t, e.CounterpartyAssets, got.CounterpartyAssets)
	assert.Equal(t, uint64(3), got.InitiatorPledge)

	invalid := Escrow{Initiator: e.Initiator, Counterparty: e.Counterparty}
	_, err = b.Put(db, nil, &invalid)
	assert.IsErr(t, ErrNoInitiatorPledge, err)
}

func TestRecordAddress(t *testing.T) {
	a, err := RecordAddress(weavetest.SequenceID(1))
	require.NoError(t, err)
	b, err := RecordAddress(weavetest.SequenceID(2))
	require.NoError(t, err)

	assert.Nil(t, a.Validate())
	assert.Equal(t, false, barter.IsOnCurve(a))
	assert.Equal(t, false, a.Equals(b))
}
