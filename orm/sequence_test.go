package orm

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	cases := []struct {
		bucket     string
		init       uint64
		increments uint64
	}{
		0: {"a", 0, 22},
		1: {"b", 0, 11},
		2: {"a", 22, 18},
		3: {"c", 0, 77},
		4: {"b", 11, 248},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			s := NewSequence(tc.bucket, "id")
			_, orig, err := s.Latest(db)
			require.NoError(t, err)

			var val uint64
			for i := uint64(0); i < tc.increments; i++ {
				val, err = s.NextInt(db)
				require.NoError(t, err)
			}
			// expect the final value to be this
			expect := tc.init + tc.increments
			assert.Equal(t, expect, val)

			// make sure final value is bigger than original value
			// if we use the raw bytes to index stuff
			_, last, err := s.Latest(db)
			require.NoError(t, err)
			assert.Equal(t, 1, bytes.Compare(last, orig))
		})
	}
}

func TestDecodeSequence(t *testing.T) {
	val, err := DecodeSequence(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), val)

	val, err = DecodeSequence(EncodeSequence(1234))
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), val)

	_, err = DecodeSequence([]byte{1, 2})
	assert.True(t, errors.ErrInput.Is(err))
}
