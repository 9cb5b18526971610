package errors

import (
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If given error implements unpacker interface, it is flattened. All
// represented errors are extracted and added to the result.
//
// Returned error Cause is the first non nil error, so that root error testing
// with Is works in a fail-fast fashion.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if u, ok := e.(unpacker); ok {
			res = append(res, u.Unpack()...)
		} else {
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	}
	return res
}

type unpacker interface {
	Unpack() []error
}

// multiErr represents a cluster of errors.
type multiErr []error

func (errs multiErr) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unpack implements unpacker interface.
func (errs multiErr) Unpack() []error {
	return errs
}

// Cause implements causer interface.
func (errs multiErr) Cause() error {
	return errs[0]
}
