/*
Package interp bundles reading, resolution and evaluation of programs for
hosting applications.

An Interpreter runs any number of programs, one after the other. Every
program is resolved and evaluated on its own: an error aborts the program it
occurs in, but leaves the interpreter ready for the next one.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package interp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/npillmayer/ohl/ast"
	"github.com/npillmayer/ohl/eval"
	"github.com/npillmayer/ohl/resolver"
	"github.com/npillmayer/ohl/sexpr"
	"github.com/npillmayer/ohl/value"
	"github.com/npillmayer/schuko/tracing"
)

// TraceKeys are the tracer keys of the packages of this module.
var TraceKeys = []string{"ohl.value", "ohl.ast", "ohl.runtime", "ohl.resolver",
	"ohl.eval", "ohl.scanner", "ohl.sexpr"}

// Interpreter runs programs.
type Interpreter struct {
	logger *slog.Logger
	Config Config

	output io.Writer
	input  *bufio.Reader
}

// New creates an interpreter writing to stdout and reading from stdin.
func New(logger *slog.Logger, config Config) (*Interpreter, error) {
	if err := config.Validate(logger); err != nil {
		return nil, fmt.Errorf("failed to validate interpreter config: %w", err)
	}
	if config.TraceLevel != "" {
		level := tracing.TraceLevelFromString(config.TraceLevel)
		for _, key := range TraceKeys {
			tracing.Select(key).SetTraceLevel(level)
		}
	}
	return &Interpreter{
		logger: logger,
		Config: config,
		output: os.Stdout,
		input:  bufio.NewReader(os.Stdin),
	}, nil
}

// SetOutput redirects the output of write statements.
func (intp *Interpreter) SetOutput(w io.Writer) {
	intp.output = w
}

// SetInput sets the source for read statements. Input is shared between
// programs.
func (intp *Interpreter) SetInput(r io.Reader) {
	intp.input = bufio.NewReader(r)
}

// Parse reads a program in s-expression notation.
func (intp *Interpreter) Parse(source string) (*ast.Node, error) {
	root, err := sexpr.Parse(source)
	if err != nil {
		intp.logger.Debug("parsing failed", "error", err)
		return nil, err
	}
	return root, nil
}

// Resolve resolves a syntax tree.
func (intp *Interpreter) Resolve(root *ast.Node) (*resolver.Program, error) {
	prog, err := resolver.Resolve(root, resolver.Options{
		StrictDeclarations: intp.Config.StrictDeclarations,
	})
	if err != nil {
		intp.logger.Debug("resolution failed", "error", err)
		return nil, err
	}
	intp.logger.Debug("resolved program", "frames", prog.Scopes.Len())
	return prog, nil
}

// Run evaluates a resolved program and returns its value.
func (intp *Interpreter) Run(ctx context.Context, prog *resolver.Program) (value.Value, error) {
	e := eval.New(
		eval.WithOutput(intp.output),
		eval.WithInput(intp.input),
		eval.WithMaxCallDepth(intp.Config.MaxCallDepth),
		eval.WithIEEEDivision(intp.Config.IEEEDivision),
	)
	v, err := e.EvaluateProgram(ctx, prog)
	if err != nil {
		intp.logger.Debug("evaluation failed", "error", err)
		return v, err
	}
	return v, nil
}

// RunSource parses, resolves and evaluates a program.
func (intp *Interpreter) RunSource(ctx context.Context, source string) (value.Value, error) {
	root, err := intp.Parse(source)
	if err != nil {
		return value.Token(), err
	}
	prog, err := intp.Resolve(root)
	if err != nil {
		return value.Token(), err
	}
	return intp.Run(ctx, prog)
}
