/*
Command ohl runs programs given as s-expressions.

    ohl run FILE       resolves and evaluates a program
    ohl tree FILE      prints the resolved syntax tree with addresses
    ohl repl           reads programs interactively, one per line

Options may be given in a YAML file (--config) and are overridden by flags.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ohl.cli'
func tracer() tracing.Trace {
	return tracing.Select("ohl.cli")
}
