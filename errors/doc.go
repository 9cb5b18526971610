/*
Package errors implements custom error interfaces for barter.

The idea is to reuse as many errors from this package as possible and define
custom package errors when absolutely necessary. Extensions register their own
root errors with Register(code, description). Each code must be unique; a
second registration of the same code panics at start up.

For reusing errors use ErrXyz.New and ErrXyz.Newf, or errors.Wrap(ErrXyz, ...).
Code allows to distinguish types of errors on the client side and act
accordingly.

There is also support for stacktraces. Create the error with ErrXyz.New("...")
or errors.Wrap(err, "...") at the point of creation to attach a stacktrace.
If you wrap multiple times, only the first wrap records the stacktrace.

Once you have an error, you can use fmt.Printf/Sprintf to get more context

	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
