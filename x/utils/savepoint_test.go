package utils

import (
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	key := []byte("handler-key")

	cases := map[string]struct {
		savepoint   Savepoint
		handlerErr  error
		check       bool
		wantWritten bool
	}{
		"disabled savepoint keeps writes of a failed check": {
			savepoint:   NewSavepoint(),
			handlerErr:  errors.ErrState,
			check:       true,
			wantWritten: true,
		},
		"check savepoint discards writes of a failed check": {
			savepoint:   NewSavepoint().OnCheck(),
			handlerErr:  errors.ErrState,
			check:       true,
			wantWritten: false,
		},
		"deliver savepoint discards writes of a failed deliver": {
			savepoint:   NewSavepoint().OnDeliver(),
			handlerErr:  errors.ErrState,
			wantWritten: false,
		},
		"double activation maintains both behaviors": {
			savepoint:   NewSavepoint().OnDeliver().OnCheck(),
			handlerErr:  errors.ErrState,
			wantWritten: false,
		},
		"check savepoint does not affect deliver": {
			savepoint:   NewSavepoint().OnCheck(),
			handlerErr:  errors.ErrState,
			wantWritten: true,
		},
		"successful deliver is written": {
			savepoint:   NewSavepoint().OnCheck().OnDeliver(),
			wantWritten: true,
		},
		"successful check is written": {
			savepoint:   NewSavepoint().OnCheck().OnDeliver(),
			check:       true,
			wantWritten: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			require.NoError(t, db.Set([]byte("before"), []byte("value")))

			h := &weavetest.Handler{
				WriteKey:   key,
				CheckErr:   tc.handlerErr,
				DeliverErr: tc.handlerErr,
			}
			handler := weavetest.Decorate(h, tc.savepoint)
			tx := &weavetest.Tx{}

			var err error
			if tc.check {
				_, err = handler.Check(context.Background(), db, tx)
			} else {
				_, err = handler.Deliver(context.Background(), db, tx)
			}
			if tc.handlerErr != nil {
				assert.True(t, errors.ErrState.Is(err))
			} else {
				require.NoError(t, err)
			}

			has, err := db.Has(key)
			require.NoError(t, err)
			assert.Equal(t, tc.wantWritten, has)

			// Data from before the call is never lost.
			has, err = db.Has([]byte("before"))
			require.NoError(t, err)
			assert.True(t, has)
		})
	}
}

// nonCacheable hides the CacheWrap method of the store.
type nonCacheable struct {
	barter.KVStore
}

func TestSavepointWithoutCacheableStore(t *testing.T) {
	db := nonCacheable{store.MemStore()}
	h := &weavetest.Handler{WriteKey: []byte("k"), DeliverErr: errors.ErrState}
	handler := weavetest.Decorate(h, NewSavepoint().OnDeliver())

	_, err := handler.Deliver(context.Background(), db, &weavetest.Tx{})
	assert.True(t, errors.ErrState.Is(err))

	has, err := db.Has([]byte("k"))
	require.NoError(t, err)
	assert.True(t, has)
}
