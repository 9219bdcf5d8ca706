/*
Package eval walks a resolved tree.

Every block entered at run time gets an activation record of its own, a
runtime.RuntimeFrame sized to the Call-lifetime symbols of the block's static
frame and linked to the frame of the enclosing block. A function call gets a
frame linked to the caller's caller, with the arguments stored in its first
slots.

Statements report a control signal together with their value:

    Next      continue with the next statement
    Return    leave the enclosing function
    Break     leave the innermost loop
    Continue  restart the innermost loop

A block stops at the first statement reporting anything but Next and passes
the signal on. Loops turn Break into Next.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package eval

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ohl.eval'.
func tracer() tracing.Trace {
	return tracing.Select("ohl.eval")
}
