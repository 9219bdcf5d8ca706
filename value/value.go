package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/ohl"
)

// TokenRune is the printed representation of the unit value.
const TokenRune = '●'

// Body is the executable part of a function value. Bodies are produced by
// the resolver and are never modified after resolution, therefore function
// values may share them freely.
type Body interface {
	Name() string
	Arity() int
}

// Value is a dynamically typed value.
//
// The zero value is the unit value.
type Value struct {
	kind Kind
	i    int64 // Bool (0|1), Char, Int
	f    float64
	fn   Body
}

// Token returns the unit value.
func Token() Value {
	return Value{}
}

func NewBool(b bool) Value {
	if b {
		return Value{kind: Bool, i: 1}
	}
	return Value{kind: Bool}
}

func NewChar(r rune) Value {
	return Value{kind: Char, i: int64(r)}
}

func NewInt(i int64) Value {
	return Value{kind: Int, i: i}
}

func NewFloat(f float64) Value {
	return Value{kind: Float, f: f}
}

// NewFunc wraps a resolved function body into a value.
func NewFunc(body Body) Value {
	return Value{kind: Func, fn: body}
}

// Kind returns the dynamic type of v.
func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsUnit() bool {
	return v.kind == Unit
}

func (v Value) AsBool() (bool, bool) {
	return v.i != 0, v.kind == Bool
}

func (v Value) AsChar() (rune, bool) {
	return rune(v.i), v.kind == Char
}

func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == Int
}

func (v Value) AsFloat() (float64, bool) {
	return v.f, v.kind == Float
}

func (v Value) AsFunc() (Body, bool) {
	return v.fn, v.kind == Func
}

// Equal is true if v and w have the same kind and payload. Function values
// are equal if they share a body.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case Unit:
		return true
	case Float:
		return v.f == w.f
	case Func:
		return v.fn == w.fn
	}
	return v.i == w.i
}

func (v Value) String() string {
	switch v.kind {
	case Unit:
		return string(TokenRune)
	case Bool:
		return strconv.FormatBool(v.i != 0)
	case Char:
		return string(rune(v.i))
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		switch {
		case math.IsInf(v.f, 1):
			return "inf"
		case math.IsInf(v.f, -1):
			return "-inf"
		}
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case Func:
		if v.fn == nil {
			return "<func>"
		}
		return fmt.Sprintf("<func %s/%d>", v.fn.Name(), v.fn.Arity())
	}
	return "<?>"
}

// GoString is a debug Stringer, showing the kind of a value.
func (v Value) GoString() string {
	return fmt.Sprintf("%s(%s)", v.kind, v.String())
}

// ParseLiteral interprets a line of input as a value. It recognizes
// "true" and "false", integers, floats and single characters (optionally
// enclosed in single quotes). An empty input or "●" yields the unit value.
func ParseLiteral(input string) (Value, error) {
	s := strings.TrimSpace(input)
	switch s {
	case "", string(TokenRune):
		return Token(), nil
	case "true":
		return NewBool(true), nil
	case "false":
		return NewBool(false), nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewInt(i), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return NewFloat(f), nil
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = s[1 : len(s)-1]
	}
	if r, size := utf8.DecodeRuneInString(s); r != utf8.RuneError && size == len(s) {
		return NewChar(r), nil
	}
	return Token(), ohl.Errorf(ohl.ErrTypeMismatch, "cannot read %q as a value", input)
}
