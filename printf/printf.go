// Package printf parses the %-style format directives embedded in terminfo
// parameterized strings: %[:][-+# ]*[width][.precision]{d,o,x,X,s,c}. The
// compiler in the parent package delimits a directive's span and hands its
// bytes here; this package owns the internal flag/width/precision syntax.
package printf

import (
	"errors"
	"fmt"
	"strconv"
)

// Directive parse failures
var (
	// ErrNoVerb reports a directive with no conversion verb before the input ends
	ErrNoVerb = errors.New("format directive missing conversion verb")

	// ErrBadDirective reports a byte that fits no part of the directive grammar
	ErrBadDirective = errors.New("malformed format directive")
)

// Directive is one parsed printf-style conversion. Width and Precision are
// -1 when absent. Text is the raw directive span, from the byte after the
// escape marker through the verb, viewed zero-copy from the source buffer.
type Directive struct {
	Colon bool // ':' introducer, shields -/+ flags from operator escapes
	Minus bool // '-' left-justify
	Plus  bool // '+' always print the sign
	Sharp bool // '#' alternate form
	Space bool // ' ' blank in the sign column

	Width     int
	Precision int
	Verb      byte // one of d o x X s c

	Text []byte
}

// Parse reads one directive from data, which starts immediately after the
// escape marker. Bytes past the verb are ignored.
func Parse(data []byte) (*Directive, error) {
	d := &Directive{Width: -1, Precision: -1}
	i := 0

	if i < len(data) && data[i] == ':' {
		d.Colon = true
		i++
	}

flags:
	for i < len(data) {
		switch data[i] {
		case '-':
			d.Minus = true
		case '+':
			d.Plus = true
		case '#':
			d.Sharp = true
		case ' ':
			d.Space = true
		default:
			break flags
		}
		i++
	}

	var err error
	if d.Width, i, err = number(data, i, -1); err != nil {
		return nil, err
	}
	if i < len(data) && data[i] == '.' {
		i++
		// a bare dot means precision zero, as in C
		if d.Precision, i, err = number(data, i, 0); err != nil {
			return nil, err
		}
	}

	if i >= len(data) {
		return nil, ErrNoVerb
	}
	switch data[i] {
	case 'd', 'o', 'x', 'X', 's', 'c':
		d.Verb = data[i]
	default:
		return nil, fmt.Errorf("unexpected byte %q: %w", data[i], ErrBadDirective)
	}
	i++

	d.Text = data[:i]
	return d, nil
}

// number parses an optional decimal run at data[i], returning absent when no
// digits are present
func number(data []byte, i, absent int) (int, int, error) {
	start := i
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		i++
	}
	if i == start {
		return absent, i, nil
	}
	n, err := strconv.Atoi(string(data[start:i]))
	if err != nil {
		return 0, i, fmt.Errorf("number %q: %w", data[start:i], ErrBadDirective)
	}
	return n, i, nil
}

// String renders the directive back in capability-string form
func (d *Directive) String() string {
	return "%" + string(d.Text)
}
