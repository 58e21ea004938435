package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound = ErrorKind("Not Found")

	// InvalidArgument is returned when an argument is invalid.
	InvalidArgument = ErrorKind("Invalid Argument")

	// Unsupported is returned when a feature or driver is not supported.
	Unsupported = ErrorKind("Unsupported")

	// Conflict is returned when an item already exists.
	Conflict = ErrorKind("Conflict")

	// Mismatch is returned when two values that must be equal are not.
	Mismatch = ErrorKind("Mismatch")

	OverflowUint64 = ErrorKind("overflow uint64")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
