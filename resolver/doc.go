/*
Package resolver turns an AST into a resolved tree.

Resolution is a single top-down pass over a syntax tree. It builds a tree of
static frames, one per block, and replaces every identifier by the address of
the storage cell it denotes. Blocks of the resolved tree carry the ID of their
static frame, so the evaluator knows how many cells to allocate.

Functions are declared in the frame of the enclosing block before any
statement of the block is resolved. This makes recursive and mutually
recursive functions visible to their bodies. Once a body has been resolved,
the function's symbol is patched with the resolved function.

Variables declared outside of any function live as long as the program
(Process lifetime), parameters and variables of functions live as long as a
call (Call lifetime). A function cannot refer to Call-lifetime variables of an
enclosing function; such references are rejected as unresolved.

Errors abort resolution. They match one of the error categories of package
ohl with errors.Is and carry the span of the offending node.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resolver

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ohl.resolver'.
func tracer() tracing.Trace {
	return tracing.Select("ohl.resolver")
}
