/*
Package ohl is a front end and tree-walking interpreter for a small imperative
language.

Programs arrive as abstract syntax trees. A resolver replaces every name by a
storage address, computed once from the nesting of lexical scopes, and an
evaluator runs the resolved tree on a chain of activation records. Package
structure is as follows:

■ value: Package value implements the dynamically typed values of the language,
together with numeric promotion, casts and operator application.

■ ast: Package ast defines the homogenous syntax tree consumed by the resolver.

■ runtime: Package runtime implements addresses, static frames (scopes with
symbol tables) and runtime frames (activation records).

■ resolver: Package resolver turns an AST into a resolved tree.

■ eval: Package eval walks a resolved tree.

■ sexpr: Package sexpr reads ASTs written as s-expressions.

■ interp: Package interp bundles resolution and evaluation for hosting
applications.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ohl
