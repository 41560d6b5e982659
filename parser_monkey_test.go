package paramstr

import (
	"errors"
	"strings"
	"testing"

	"github.com/lixenwraith/paramstr/printf"
)

// knownError reports whether err is one of the declared failure kinds
func knownError(err error) bool {
	return errors.Is(err, ErrUnexpectedEOF) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrInvalidNumber) ||
		errors.Is(err, ErrInvalidChar) ||
		errors.Is(err, printf.ErrNoVerb) ||
		errors.Is(err, printf.ErrBadDirective)
}

// TestPanic_EscapeSweep feeds every possible selector byte after the marker.
// Nothing may panic, and every failure must be a declared error kind.
func TestPanic_EscapeSweep(t *testing.T) {
	suffixes := []string{"", "1", "{2}", "x'd", "%;", "tail%d"}
	for b := 0; b < 256; b++ {
		for _, suffix := range suffixes {
			src := append([]byte{'%', byte(b)}, suffix...)
			_, err := Compile(src)
			if err != nil && !knownError(err) {
				t.Errorf("Compile(%q) unknown error kind: %v", src, err)
			}
		}
	}
}

// TestPanic_TruncationSweep compiles every prefix of a valid capability
// string, cutting escapes mid-way at every possible point.
func TestPanic_TruncationSweep(t *testing.T) {
	src := "\x1b[%i%p1%{8}%+%'c'%?%p2%{16}%<%t%:-3.1d%e%p3%d%;%%end"
	if _, err := Compile([]byte(src)); err != nil {
		t.Fatalf("Full input must compile, got: %v", err)
	}
	for i := 0; i < len(src); i++ {
		_, err := Compile([]byte(src[:i]))
		if err != nil && !knownError(err) {
			t.Errorf("Prefix %q unknown error kind: %v", src[:i], err)
		}
	}
}

func TestPanic_BinaryGarbage(t *testing.T) {
	inputs := []string{
		"\x00%\xff%p\x00",
		"%{\xff}%'\x00%?%t\xff%;%%\x00",
		"%\x00%\xff%\x7f",
		strings.Repeat("\xff%", 64),
	}
	for _, src := range inputs {
		_, err := Compile([]byte(src))
		if err != nil && !knownError(err) {
			t.Errorf("Compile(%q) unknown error kind: %v", src, err)
		}
	}
}

// TestPanic_DeepNesting compiles heavily nested conditionals
func TestPanic_DeepNesting(t *testing.T) {
	depth := 200
	src := strings.Repeat("%?%{1}%t", depth) + "%{0}" + strings.Repeat("%;", depth)

	ops, err := Compile([]byte(src))
	if err != nil {
		t.Fatalf("Nested compile failed: %v", err)
	}
	for i, op := range ops {
		switch op.Code {
		case OpNoop:
			t.Fatalf("Placeholder survived at %d", i)
		case OpBranchTrue, OpBranchFalse, OpJump:
			if op.N < 0 || i+1+op.N > len(ops) {
				t.Fatalf("Instruction %d target escapes the sequence", i)
			}
		}
	}
}

func TestPanic_UnterminatedFlood(t *testing.T) {
	if _, err := Compile([]byte(strings.Repeat("%?", 100))); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("Unterminated flood error = %v, want ErrUnexpectedEOF", err)
	}
}

// TestPanic_IteratorProgress bounds the number of Next calls a hostile input
// can absorb before finishing.
func TestPanic_IteratorProgress(t *testing.T) {
	inputs := []string{
		"%%" + strings.Repeat("%%", 100),
		strings.Repeat("a%p1", 100),
		"%?%p1%t" + strings.Repeat("%{1}", 100) + "%;",
	}
	for _, src := range inputs {
		p := NewParser([]byte(src))
		limit := len(src) + 16
		done := false
		for i := 0; i < limit; i++ {
			if _, err := p.Next(); err != nil {
				done = true
				break
			}
		}
		if !done {
			t.Errorf("Parser likely stuck: %d calls did not drain %q", limit, src[:16])
		}
	}
}

// TestBreak_Determinism compiles the same input twice and expects identical
// results, instruction for instruction.
func TestBreak_Determinism(t *testing.T) {
	src := []byte("%?%p1%{255}%=%t%{0}%e%p1%;%:+2d done")
	first, err1 := Compile(src)
	second, err2 := Compile(src)
	if (err1 == nil) != (err2 == nil) {
		t.Fatalf("Verdict changed between runs: %v then %v", err1, err2)
	}
	if len(first) != len(second) {
		t.Fatalf("Length changed between runs: %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i].String() != second[i].String() {
			t.Errorf("Instruction %d changed between runs: %v then %v", i, first[i], second[i])
		}
	}
}
