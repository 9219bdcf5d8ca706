/*
Package sexpr reads syntax trees written as s-expressions.

A program is a sequence of forms. A single block form is the program's block,
any other sequence of forms is wrapped into a block.

    (block
      (func fac (n)
        (block
          (if (< n 2) (block (return 1)))
          (return (* n (call fac (- n 1))))))
      (write (call fac 5)))

Statements are

    (block STMT…)                 (func NAME (PARAM…) BLOCK)
    (if EXPR BLOCK [BLOCK])       (while EXPR BLOCK)
    (let NAME EXPR)               (var NAME EXPR)
    (set NAME EXPR)               (:= NAME EXPR)
    (read NAME)                   (write EXPR)
    (return [EXPR])               (break)      (continue)

and expressions are names, numbers, characters in single quotes, the
constants #t, #f and #u (unit), and

    (call EXPR EXPR…)   (cast TYPE EXPR)   (OP EXPR [EXPR])

with OP one of + - * / ^ < > <= >= == != and or not. Comments start with a
semicolon and extend to the end of the line.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sexpr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ohl.sexpr'.
func tracer() tracing.Trace {
	return tracing.Select("ohl.sexpr")
}
