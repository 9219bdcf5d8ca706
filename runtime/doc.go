/*
Package runtime implements the storage model of the interpreter: addresses,
static frames (scopes with symbol tables) and runtime frames (activation
records).

For a thorough discussion of an interpreter's runtime environment, refer to
"Language Implementation Patterns" by Terence Parr.

Addresses

Every storage cell is identified by an Address

    (lifetime, depth, slot)

The lifetime is either Process (one cell per program run) or Call (one cell
per activation). Depth counts the scopes to walk outward from the scope of
use, slot indexes the value array of the declaring scope for its lifetime.
Addresses are computed once, during resolution.

Static Frames and the Scope Tree

A StaticFrame holds the symbols declared in one lexical block. Static frames
live in an arena, the ScopeTree, and link to their parents by FrameID. During
analysis the scope tree is used like a stack.

Runtime Frames

A RuntimeFrame is created for every block entered at run time. It holds the
Call-lifetime cells of its static frame and links to its caller. Process
cells are kept apart, in a ProcessMemory, one value array per static frame.
Loads and stores of Process addresses walk the static frame chain, loads and
stores of Call addresses walk the caller chain.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package runtime

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ohl.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("ohl.runtime")
}
