package paramstr

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lixenwraith/paramstr/printf"
)

// marker introduces every escape in a capability string
const marker = '%'

// verbs are the printf conversion bytes that terminate a directive span
const verbs = "xXcdos"

// Parser compiles one capability string into stack-machine instructions.
// It owns a cursor into the unconsumed input and a queue of instructions
// compiled but not yet handed out. A parser serves a single input buffer
// and is not safe for concurrent use.
type Parser struct {
	src  []byte // unconsumed input
	off  int    // bytes consumed so far, for error context
	ops  []Op   // compiled, undelivered instructions
	head int    // next queue slot to deliver
	err  error  // sticky failure, the queue is void once set
}

// NewParser returns a parser over src. Compiled literal spans alias src, so
// the buffer must outlive the instructions.
func NewParser(src []byte) *Parser {
	return &Parser{src: src, ops: make([]Op, 0, 4)}
}

// Compile compiles an entire capability string in one call
func Compile(src []byte) ([]Op, error) {
	return NewParser(src).Compile()
}

// Next returns the next instruction, compiling more input as needed, and
// io.EOF once the input is exhausted. Any other error is fatal: the pending
// queue is discarded and every later call reports the same failure.
func (p *Parser) Next() (Op, error) {
	if p.err != nil {
		return Op{}, p.err
	}
	if p.head < len(p.ops) {
		return p.pop(), nil
	}
	if len(p.src) == 0 {
		return Op{}, io.EOF
	}
	if err := p.step(); err != nil {
		p.err = err
		p.ops = nil
		p.head = 0
		return Op{}, err
	}
	if p.head < len(p.ops) {
		return p.pop(), nil
	}
	return Op{}, io.EOF
}

// Compile drains the parser, collecting every remaining instruction
func (p *Parser) Compile() ([]Op, error) {
	var ops []Op
	for {
		op, err := p.Next()
		if err == io.EOF {
			return ops, nil
		}
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
}

func (p *Parser) pop() Op {
	op := p.ops[p.head]
	p.head++
	if p.head == len(p.ops) {
		p.head = 0
		p.ops = p.ops[:0]
	}
	return op
}

func (p *Parser) push(op Op) {
	p.ops = append(p.ops, op)
}

// advance consumes n input bytes
func (p *Parser) advance(n int) {
	p.src = p.src[n:]
	p.off += n
}

// fail wraps an error kind with the current input position
func (p *Parser) fail(err error) error {
	return fmt.Errorf("offset %d: %w", p.off, err)
}

// step performs one compilation unit: a literal run, a simple escape, a
// format directive, or one whole conditional construct. It appends at least
// one instruction unless the input is already empty, and advances the cursor
// by exactly the bytes it consumed.
func (p *Parser) step() error {
	if len(p.src) == 0 {
		return nil
	}

	// Literal text runs unbroken to the next escape
	if p.src[0] != marker {
		n := bytes.IndexByte(p.src, marker)
		if n < 0 {
			n = len(p.src)
		}
		p.push(Op{Code: OpPrintText, Text: p.src[:n]})
		p.advance(n)
		return nil
	}

	if len(p.src) == 1 {
		return p.fail(ErrUnexpectedEOF)
	}

	read := 2 // marker plus selector; the longer escapes add to it
	switch p.src[1] {
	case marker:
		p.push(Op{Code: OpPrintText, Text: p.src[:1]})

	case 'p':
		if len(p.src) < 3 || p.src[2] < '1' || p.src[2] > '9' {
			return p.fail(ErrInvalidArgument)
		}
		p.push(Op{Code: OpPushArg, N: int(p.src[2] - '1')})
		read = 3

	case '{':
		end := bytes.IndexByte(p.src[2:], '}')
		if end < 0 {
			return p.fail(ErrInvalidNumber)
		}
		n, err := strconv.ParseInt(string(p.src[2:2+end]), 10, 64)
		if err != nil {
			return p.fail(ErrInvalidNumber)
		}
		p.push(Op{Code: OpPush, Lit: IntArg(n)})
		read = 3 + end

	case '\'':
		end := bytes.IndexByte(p.src[2:], '\'')
		if end != 1 {
			return p.fail(ErrInvalidChar)
		}
		p.push(Op{Code: OpPush, Lit: CharArg(p.src[2])})
		read = 4

	case 'i':
		p.push(Op{Code: OpIncArgs})
	case 'l':
		p.push(Op{Code: OpStrLen})
	case '+':
		p.push(Op{Code: OpAdd})
	case '-':
		p.push(Op{Code: OpSub})
	case '*':
		p.push(Op{Code: OpMul})
	case '/':
		p.push(Op{Code: OpDiv})
	case 'm':
		p.push(Op{Code: OpMod})
	case '&':
		p.push(Op{Code: OpAnd})
	case '^':
		p.push(Op{Code: OpXor})
	case '|':
		p.push(Op{Code: OpOr})
	case '=':
		p.push(Op{Code: OpEqual})
	case '<':
		p.push(Op{Code: OpLess})
	case '>':
		p.push(Op{Code: OpGreater})
	case '~':
		p.push(Op{Code: OpInvert})
	case '!':
		p.push(Op{Code: OpNot})

	case '?':
		p.advance(2)
		if err := p.conditional(); err != nil {
			return err
		}
		// the cursor now rests on the closing %; pair, which read consumes

	default:
		// Anything else opens a printf directive. Its span runs through the
		// first conversion verb; the printf package owns what is inside.
		end := bytes.IndexAny(p.src[1:], verbs)
		if end < 0 {
			return p.fail(ErrUnexpectedEOF)
		}
		dir, err := printf.Parse(p.src[1:])
		if err != nil {
			return p.fail(err)
		}
		p.push(Op{Code: OpPrintFmt, Fmt: dir})
		read = 2 + end
	}

	p.advance(read)
	return nil
}

// conditional compiles one %?…%t…%e…%; construct, chained else-ifs and all,
// atomically into the queue. Branch and jump placeholders emitted along the
// way are overwritten once their targets are known; stored offsets are
// relative instruction counts, never byte distances. The %? is consumed by
// the caller before entry and the closing %; after return.
func (p *Parser) conditional() error {
	if err := p.stepUntil("t"); err != nil {
		return err
	}

	var endJumps []int
	for len(p.src) > 1 && p.src[1] == 't' {
		p.advance(2) // %t

		branch := len(p.ops)
		p.push(Op{Code: OpNoop})
		if err := p.stepUntil("e;"); err != nil {
			return err
		}

		if p.src[1] == 'e' {
			// An else or else-if follows: reserve a jump to the end of the
			// construct, then point the branch past it for a false condition.
			endJumps = append(endJumps, len(p.ops))
			p.push(Op{Code: OpNoop})
			p.ops[branch] = Op{Code: OpBranchFalse, N: len(p.ops) - 1 - branch}

			p.advance(2) // %e
			if err := p.stepUntil(";t"); err != nil {
				return err
			}
		} else {
			// Construct ends here: a false condition skips the whole branch
			p.ops[branch] = Op{Code: OpBranchFalse, N: len(p.ops) - 1 - branch}
		}
	}

	// Every branch that ran a body jumps to the first instruction after the
	// construct
	for _, j := range endJumps {
		p.ops[j] = Op{Code: OpJump, N: len(p.ops) - j - 1}
	}
	return nil
}

// stepUntil compiles instructions until the upcoming two bytes are the
// marker followed by one of stop, leaving that pair unconsumed. Exhausting
// the input first is an error.
func (p *Parser) stepUntil(stop string) error {
	for len(p.src) >= 2 {
		if p.src[0] == marker && strings.IndexByte(stop, p.src[1]) >= 0 {
			return nil
		}
		if err := p.step(); err != nil {
			return err
		}
	}
	return p.fail(ErrUnexpectedEOF)
}
