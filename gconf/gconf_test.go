package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/weavetest"
	"github.com/iov-one/barter/weavetest/assert"
)

type myConfig struct {
	Number int64
	Text   string
	Addr   barter.Address
}

func (c *myConfig) Marshal() ([]byte, error)   { return barter.Marshal(c) }
func (c *myConfig) Unmarshal(raw []byte) error { return barter.Unmarshal(raw, c) }

func (c *myConfig) Validate() error {
	if c.Number < 0 {
		return errors.Wrap(errors.ErrInput, "negative number")
	}
	if err := c.Addr.Validate(); err != nil {
		return errors.Field("Addr", err, "invalid address")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	addr := weavetest.NewIdentity()

	cases := map[string]struct {
		Conf        *myConfig
		WantSaveErr *errors.Error
	}{
		"valid configuration": {
			Conf: &myConfig{Number: 852151421, Text: "foobar", Addr: addr},
		},
		"invalid address cannot be saved": {
			Conf:        &myConfig{Addr: barter.Address("too short")},
			WantSaveErr: errors.ErrInput,
		},
		"invalid number cannot be saved": {
			Conf:        &myConfig{Number: -1, Addr: addr},
			WantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			var got myConfig
			err := Load(db, "mypkg", &got)
			if tc.WantSaveErr != nil {
				assert.IsErr(t, errors.ErrNotFound, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.Conf, &got)
		})
	}
}

func TestInitConfig(t *testing.T) {
	addr := weavetest.NewIdentity()
	rawAddr, err := json.Marshal(addr)
	assert.Nil(t, err)

	cases := map[string]struct {
		Genesis string
		WantErr *errors.Error
		Want    *myConfig
	}{
		"configuration is loaded": {
			Genesis: `{"conf": {"mypkg": {"Number": 4, "Text": "x", "Addr": ` + string(rawAddr) + `}}}`,
			Want:    &myConfig{Number: 4, Text: "x", Addr: addr},
		},
		"missing package configuration": {
			Genesis: `{"conf": {"other": {}}}`,
			WantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			Genesis: `{"conf": {"mypkg": {"Number": -4, "Addr": ` + string(rawAddr) + `}}}`,
			WantErr: errors.ErrInput,
		},
		"malformed configuration": {
			Genesis: `{"conf": {"mypkg": {"Number": "four"}}}`,
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts barter.Options
			if err := json.Unmarshal([]byte(tc.Genesis), &opts); err != nil {
				t.Fatalf("cannot unmarshal genesis: %s", err)
			}
			db := store.MemStore()
			var conf myConfig
			if err := InitConfig(db, opts, "mypkg", &conf); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.WantErr != nil {
				return
			}
			var got myConfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Want, &got)
		})
	}
}
