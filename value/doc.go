/*
Package value implements the values of the language.

Values are dynamically typed. Each value carries a kind tag

    Unit | Bool | Char | Int | Float | Func

and operators switch on the kind tags of their operands at run time. Numeric
operands are promoted along a fixed lattice before an operator is applied:

    Char  ➞  Int  ➞  Float

Booleans never take part in promotion, they are operands of logical operators
only.

Values have value semantics: copying a Value copies its payload, with the
exception of function values, which share their (immutable) body.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package value

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ohl.value'.
func tracer() tracing.Trace {
	return tracing.Select("ohl.value")
}
