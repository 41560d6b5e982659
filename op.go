package paramstr

import (
	"fmt"

	"github.com/lixenwraith/paramstr/printf"
)

// OpCode identifies a compiled stack-machine instruction
type OpCode uint8

const (
	OpNoop    OpCode = iota // placeholder, overwritten during backpatching
	OpPushArg               // push caller-supplied argument N
	OpPush                  // push literal Argument

	// Binary operators: pop two operands, push the result
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAnd // bitwise and
	OpOr  // bitwise or
	OpXor // bitwise xor
	OpLess
	OpGreater
	OpEqual

	// Unary operators: pop one operand, push the result
	OpInvert // bitwise complement
	OpNot    // logical negation

	OpIncArgs // increment the first two caller arguments in place
	OpStrLen  // pop a string, push its length

	// Control flow. N is a relative instruction count: skip N instructions
	// forward from the one after this. The compiler emits OpBranchFalse and
	// OpJump; OpBranchTrue completes the executor-facing set.
	OpBranchTrue
	OpBranchFalse
	OpJump

	OpPrintFmt  // pop one operand, format per the attached directive
	OpPrintText // emit a literal byte span verbatim
)

var opNames = [...]string{
	OpNoop:        "noop",
	OpPushArg:     "pusharg",
	OpPush:        "push",
	OpAdd:         "add",
	OpSub:         "sub",
	OpMul:         "mul",
	OpDiv:         "div",
	OpMod:         "mod",
	OpAnd:         "and",
	OpOr:          "or",
	OpXor:         "xor",
	OpLess:        "less",
	OpGreater:     "greater",
	OpEqual:       "equal",
	OpInvert:      "invert",
	OpNot:         "not",
	OpIncArgs:     "incargs",
	OpStrLen:      "strlen",
	OpBranchTrue:  "btrue",
	OpBranchFalse: "bfalse",
	OpJump:        "jump",
	OpPrintFmt:    "printf",
	OpPrintText:   "print",
}

func (c OpCode) String() string {
	if int(c) < len(opNames) {
		return opNames[c]
	}
	return fmt.Sprintf("opcode(%d)", uint8(c))
}

// Op is one compiled instruction. Code selects which operand fields are
// meaningful: N carries the argument index for OpPushArg and the relative
// offset for branches and jumps, Lit the literal for OpPush, Text the byte
// span for OpPrintText, and Fmt the directive for OpPrintFmt.
//
// Text is a zero-copy view into the compiled input and stays valid only
// while that buffer does.
type Op struct {
	Code OpCode
	N    int
	Lit  Argument
	Text []byte
	Fmt  *printf.Directive
}

// String renders a compact single-instruction disassembly form
func (op Op) String() string {
	switch op.Code {
	case OpPushArg:
		return fmt.Sprintf("pusharg %d", op.N)
	case OpPush:
		return fmt.Sprintf("push %s", op.Lit)
	case OpBranchTrue, OpBranchFalse, OpJump:
		return fmt.Sprintf("%s +%d", op.Code, op.N)
	case OpPrintFmt:
		return fmt.Sprintf("printf %s", op.Fmt)
	case OpPrintText:
		return fmt.Sprintf("print %q", op.Text)
	}
	return op.Code.String()
}
