package paramstr

import "errors"

// Error kinds reported by the compiler. Failures are wrapped with the byte
// offset of the escape that caused them; match with errors.Is. Directive
// errors from the printf package surface the same way, offset included.
var (
	// ErrUnexpectedEOF reports input that ends mid-escape or mid-conditional
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrInvalidArgument reports a %p escape not followed by a digit 1-9
	ErrInvalidArgument = errors.New("invalid argument identifier")

	// ErrInvalidNumber reports a malformed or unterminated %{n} literal
	ErrInvalidNumber = errors.New("invalid integer literal")

	// ErrInvalidChar reports a %'c' literal not holding exactly one byte
	ErrInvalidChar = errors.New("invalid character literal")
)
