package orm

import (
	"github.com/iov-one/barter"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	barter.Persistent
	Validate() error
}
