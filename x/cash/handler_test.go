package cash

import (
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/weavetest"
	"github.com/stretchr/testify/require"
)

func TestSendHandler(t *testing.T) {
	alice := weavetest.NewIdentity()
	bob := weavetest.NewIdentity()

	cases := map[string]struct {
		signer    barter.Address
		msg       *SendMsg
		wantCheck *errors.Error
		wantErr   *errors.Error
		wantAlice uint64
		wantBob   uint64
	}{
		"successful send": {
			signer:    alice,
			msg:       &SendMsg{Source: alice, Destination: bob, Amount: 40, Memo: "rent"},
			wantAlice: 60,
			wantBob:   40,
		},
		"missing signature": {
			signer:    bob,
			msg:       &SendMsg{Source: alice, Destination: bob, Amount: 40},
			wantCheck: errors.ErrUnauthorized,
			wantErr:   errors.ErrUnauthorized,
			wantAlice: 100,
		},
		"insufficient funds": {
			signer:    alice,
			msg:       &SendMsg{Source: alice, Destination: bob, Amount: 101},
			wantCheck: errors.ErrInsufficientAmount,
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: 100,
		},
		"invalid message": {
			signer:    alice,
			msg:       &SendMsg{Source: alice, Amount: 1},
			wantCheck: errors.ErrEmpty,
			wantErr:   errors.ErrEmpty,
			wantAlice: 100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			control := NewController()
			require.NoError(t, control.IssueCoins(db, alice, 100))

			auth := &weavetest.CtxAuth{Key: "auth"}
			ctx := auth.SetAddresses(context.Background(), tc.signer)
			h := NewSendHandler(auth, control)
			tx := &weavetest.Tx{Msg: tc.msg}

			if _, err := h.Check(ctx, db, tx); !tc.wantCheck.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			if _, err := h.Deliver(ctx, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			assertBalance(t, db, control, alice, tc.wantAlice)
			assertBalance(t, db, control, bob, tc.wantBob)
		})
	}
}
