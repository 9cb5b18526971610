package escrow

import (
	"github.com/iov-one/barter/errors"
)

// Escrow reserves 6000~6099 error codes
var (
	ErrAssetCountMismatch            = errors.Register(6000, "asset reference count mismatch")
	ErrNoInitiatorPledge             = errors.Register(6001, "initiator pledges nothing")
	ErrNoCounterpartyPledge          = errors.Register(6002, "counterparty pledges nothing")
	ErrUninitializedAccount          = errors.Register(6003, "account not initialized")
	ErrIncorrectProgram              = errors.Register(6004, "account controlled by an unexpected program")
	ErrCanonicalAccountMismatch      = errors.Register(6005, "not the canonical account")
	ErrAssetNotFound                 = errors.Register(6006, "account does not hold the asset")
	ErrSaltCountMismatch             = errors.Register(6007, "vault salt count mismatch")
	ErrVaultMismatch                 = errors.Register(6008, "vault derivation mismatch")
	ErrHolderMismatch                = errors.Register(6009, "account held by an unexpected owner")
	ErrInitiatorPledgeMismatch       = errors.Register(6010, "initiator pledge mismatch")
	ErrCounterpartyPledgeMismatch    = errors.Register(6011, "counterparty pledge mismatch")
	ErrAssetFound                    = errors.Register(6012, "account already holds the asset")
	ErrMintMismatch                  = errors.Register(6013, "mint mismatch")
	ErrInitiatorInsufficientFunds    = errors.Register(6014, "initiator has insufficient funds")
	ErrCounterpartyInsufficientFunds = errors.Register(6015, "counterparty has insufficient funds")
	ErrInitiatorMismatch             = errors.Register(6016, "initiator mismatch")
	ErrCounterpartyMismatch          = errors.Register(6017, "counterparty mismatch")
	ErrRecordedAccountMismatch       = errors.Register(6018, "account differs from the recorded one")
)

// Class groups escrow errors by the kind of violation.
type Class int

const (
	// ClassOther is any error that is not an escrow validation failure,
	// for example a failure of the asset service or the database.
	ClassOther Class = iota
	// ClassPrecondition covers zero pledges, mismatched pledges and
	// insufficient funds.
	ClassPrecondition
	// ClassOwnership covers accounts held or controlled by the wrong
	// party, and non canonical accounts.
	ClassOwnership
	// ClassDerivation covers vaults that do not match their derivation.
	ClassDerivation
	// ClassAssetState covers accounts holding the wrong amount of units.
	ClassAssetState
	// ClassStructural covers asset reference lists of the wrong shape.
	ClassStructural
)

func (c Class) String() string {
	switch c {
	case ClassPrecondition:
		return "precondition"
	case ClassOwnership:
		return "ownership"
	case ClassDerivation:
		return "derivation"
	case ClassAssetState:
		return "asset state"
	case ClassStructural:
		return "structural"
	default:
		return "other"
	}
}

var classes = map[*errors.Error]Class{
	ErrAssetCountMismatch:            ClassStructural,
	ErrSaltCountMismatch:             ClassStructural,
	ErrNoInitiatorPledge:             ClassPrecondition,
	ErrNoCounterpartyPledge:          ClassPrecondition,
	ErrInitiatorPledgeMismatch:       ClassPrecondition,
	ErrCounterpartyPledgeMismatch:    ClassPrecondition,
	ErrInitiatorInsufficientFunds:    ClassPrecondition,
	ErrCounterpartyInsufficientFunds: ClassPrecondition,
	ErrUninitializedAccount:          ClassOwnership,
	ErrIncorrectProgram:              ClassOwnership,
	ErrCanonicalAccountMismatch:      ClassOwnership,
	ErrHolderMismatch:                ClassOwnership,
	ErrMintMismatch:                  ClassOwnership,
	ErrInitiatorMismatch:             ClassOwnership,
	ErrCounterpartyMismatch:          ClassOwnership,
	ErrRecordedAccountMismatch:       ClassOwnership,
	ErrVaultMismatch:                 ClassDerivation,
	ErrAssetNotFound:                 ClassAssetState,
	ErrAssetFound:                    ClassAssetState,
}

// ErrorClass returns the class of given error. Errors not registered by this
// package belong to ClassOther.
func ErrorClass(err error) Class {
	for e, c := range classes {
		if e.Is(err) {
			return c
		}
	}
	return ClassOther
}
