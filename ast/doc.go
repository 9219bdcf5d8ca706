/*
Package ast defines the syntax trees consumed by the resolver.

Trees are homogenous: every node is an ast.Node, discriminated by its Kind.
Nodes carry an ordered list of children, and depending on their kind a name
(identifiers), a literal value, an operator or a cast target.

Each kind has a fixed arity, which Check validates before a tree is handed
to the resolver. An `if` always has three children; a missing else branch is
represented by an empty block.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ast

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ohl.ast'.
func tracer() tracing.Trace {
	return tracing.Select("ohl.ast")
}
