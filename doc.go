// Package paramstr compiles terminfo parameterized strings, the %-escape
// language capability databases use to describe control sequences, into
// flat sequences of stack-machine instructions.
//
// A capability string such as "\x1b[%i%p1%d;%p2%dH" mixes literal bytes with
// escapes that push arguments, do arithmetic, and branch. The compiler turns
// one string into instructions either lazily (Parser.Next) or in one shot
// (Compile); running them against caller arguments and an output buffer is
// the consumer's concern, as is loading capability databases.
//
// Features:
//   - Single-pass compilation, one instruction stream per input buffer
//   - %?…%t…%e…%; conditionals flattened to relative branch/jump offsets
//   - Zero-copy literal spans aliasing the input
//   - printf-style directives delimited here, parsed by the printf package
//
// Compiled conditionals use relative instruction counts ("skip N forward"),
// never byte offsets, so an executor needs no address translation.
package paramstr
