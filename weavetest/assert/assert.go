/*
Package assert provides the few assertions shared by barter tests. It is
built around the errors package, so that failures report the registered error
codes.
*/
package assert

import (
	"reflect"
	"testing"

	"github.com/iov-one/barter/errors"
)

// Tester is the minimal subset of testing.TB needed to run most assert commands
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test if given value is not nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of errors that carry one.
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Equal fails the test if two values are not equal. Byte slices, for example
// addresses, are printed in hex.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if reflect.DeepEqual(want, got) {
		return
	}
	if isBytes(want) && isBytes(got) {
		t.Fatalf("values not equal\nwant %T %X\n got %T %X", want, want, got, got)
	}
	t.Fatalf("values not equal\nwant %T %v\n got %T %v", want, want, got, got)
}

func isBytes(v interface{}) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8
}

// Panics will run given function and recover any panic. It will fail the test
// if given function call did not panic.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// FieldError ensures that the error contains exactly one error for given
// field and that it is of the wanted kind. Use nil as want to ensure that no
// error was reported for the field.
func FieldError(t testing.TB, err error, fieldName string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, fieldName)
	if want == nil {
		if len(errs) != 0 {
			logErrors(t, errs)
			t.Fatalf("want no error for field %q, got %d", fieldName, len(errs))
		}
		return
	}

	switch len(errs) {
	case 0:
		t.Fatalf("want %q error for field %q, got none", want, fieldName)
	case 1:
		if !want.Is(errs[0]) {
			t.Fatalf("want %q error (code %d) for field %q, got %q (code %d)",
				want, want.Code(), fieldName, errs[0], errors.Code(errs[0]))
		}
	default:
		// A single error per field is expected even if all are of
		// the wanted kind.
		logErrors(t, errs)
		t.Fatalf("want one error for field %q, got %d", fieldName, len(errs))
	}
}

func logErrors(t testing.TB, errs []error) {
	t.Helper()
	for i, e := range errs {
		t.Logf("\terror %d: %q", i+1, e)
	}
}

// IsErr fails the test unless got is of the same kind as want. Two nil
// errors are of the same kind.
func IsErr(t testing.TB, want, got error) {
	t.Helper()

	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	t.Fatalf("want %q (code %d), got %+v (code %d)", want, errors.Code(want), got, errors.Code(got))
}
