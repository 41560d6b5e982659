package paramstr

import (
	"fmt"
	"strconv"
)

// ArgKind discriminates the two literal forms a capability string can push
type ArgKind uint8

const (
	ArgInt  ArgKind = iota // %{n} decimal integer literal
	ArgChar                // %'c' character literal
)

// Argument is a literal stack-machine operand: a signed integer or a single
// character byte. The zero value is the integer 0.
type Argument struct {
	Kind ArgKind
	Int  int64 // valid when Kind == ArgInt
	Char byte  // valid when Kind == ArgChar
}

// IntArg returns an integer literal argument
func IntArg(n int64) Argument { return Argument{Kind: ArgInt, Int: n} }

// CharArg returns a character literal argument
func CharArg(c byte) Argument { return Argument{Kind: ArgChar, Char: c} }

func (a Argument) String() string {
	if a.Kind == ArgChar {
		return fmt.Sprintf("%q", a.Char)
	}
	return strconv.FormatInt(a.Int, 10)
}
