package cash

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Ensure we implement the Msg interface
var _ barter.Msg = (*SendMsg)(nil)

const maxMemoSize int = 128

// SendMsg requests a transfer of funds between two addresses. The source
// must authorize the transfer.
type SendMsg struct {
	Source      barter.Address
	Destination barter.Address
	Amount      uint64
	Memo        string
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return barter.Marshal(m)
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return barter.Unmarshal(raw, m)
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var err error
	if m.Amount == 0 {
		err = errors.AppendField(err, "Amount", errors.ErrAmount)
	}
	err = errors.AppendField(err, "Source", m.Source.Validate())
	err = errors.AppendField(err, "Destination", m.Destination.Validate())
	if len(m.Memo) > maxMemoSize {
		err = errors.AppendField(err, "Memo", errors.ErrInput)
	}
	return err
}
