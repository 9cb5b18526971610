package cash

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	alice := weavetest.NewIdentity()
	bob := weavetest.NewIdentity()

	genesis := map[string][]GenesisAccount{
		"cash": {
			{Address: alice, Amount: 10},
			{Address: bob, Amount: 20},
		},
	}
	raw, err := json.Marshal(genesis)
	require.NoError(t, err)
	var opts barter.Options
	require.NoError(t, json.Unmarshal(raw, &opts))

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	control := NewController()
	assertBalance(t, db, control, alice, 10)
	assertBalance(t, db, control, bob, 20)
}

func TestGenesisInvalidAccount(t *testing.T) {
	opts := barter.Options{
		"cash": json.RawMessage(`[{"address": "", "amount": 10}]`),
	}
	err := Initializer{}.FromGenesis(opts, store.MemStore())
	assert.True(t, errors.ErrEmpty.Is(err))
}
