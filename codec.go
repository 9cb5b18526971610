package barter

import (
	"github.com/iov-one/barter/errors"
	amino "github.com/tendermint/go-amino"
)

// Marshaller is anything that can be represented in binary
//
// Marshal may validate the data before serializing it and
// unless you previously validated the struct,
// errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal
//
// This is separated from Marshal, as this almost always requires
// a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// cdc encodes all models, messages and configurations. Only concrete
// structures are encoded so nothing has to be registered.
var cdc = amino.NewCodec()

// Marshal serializes given structure into its binary representation. It is
// meant to be used to implement Persistent.
func Marshal(o interface{}) ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrType, "cannot marshal %T: %s", o, err)
	}
	return raw, nil
}

// Unmarshal loads binary representation created with Marshal into given
// pointer to a structure.
func Unmarshal(raw []byte, o interface{}) error {
	if err := cdc.UnmarshalBinaryBare(raw, o); err != nil {
		return errors.Wrapf(errors.ErrType, "cannot unmarshal %T: %s", o, err)
	}
	return nil
}

// MustMarshal will succeed or panic
func MustMarshal(obj Marshaller) []byte {
	bz, err := obj.Marshal()
	if err != nil {
		panic(err)
	}
	return bz
}
