/*
Package scanner defines an interface for scanners to be used by readers of
textual program representations.

A scanner implementation for lexmachine lives in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"text/scanner"

	"github.com/npillmayer/ohl"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ohl.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("ohl.scanner")
}

// Token types shared by all scanners of this module. They coincide with
// the token classes of text/scanner, so a scanner may hand out characters
// ('(', ')', …) as token types of their own without clashing.
const (
	EOF   = scanner.EOF
	Ident = scanner.Ident
	Int   = scanner.Int
	Float = scanner.Float
	Char  = scanner.Char
)

// Tokenizer is a scanner interface. Readers call NextToken until it returns
// a token of type EOF. Errors are handed to the error handler, and the
// tokenizer continues after the offending input.
type Tokenizer interface {
	NextToken() ohl.Token
	SetErrorHandler(func(error))
}

// LogError is the default error handler of scanners. It traces errors.
func LogError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is the token type of the scanners of this module. Tokens
// carry no value beyond their lexeme; readers convert lexemes themselves.
type DefaultToken struct {
	kind   ohl.TokType
	lexeme string
	span   ohl.Span
}

var _ ohl.Token = DefaultToken{}

// MakeDefaultToken creates a token covering span.
func MakeDefaultToken(typ ohl.TokType, lexeme string, span ohl.Span) DefaultToken {
	return DefaultToken{kind: typ, lexeme: lexeme, span: span}
}

func (t DefaultToken) TokType() ohl.TokType {
	return t.kind
}

// Value returns the lexeme.
func (t DefaultToken) Value() interface{} {
	return t.lexeme
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() ohl.Span {
	return t.span
}

func (t DefaultToken) String() string {
	if t.kind == EOF {
		return fmt.Sprintf("<EOF %s>", t.span)
	}
	return fmt.Sprintf("<%d %q %s>", t.kind, t.lexeme, t.span)
}
