package value

import (
	"fmt"

	"github.com/npillmayer/ohl"
)

// Kind is the dynamic type tag of a value.
type Kind int8

const (
	Unit Kind = iota
	Bool
	Char
	Int
	Float
	Func
)

func (k Kind) String() string {
	switch k {
	case Unit:
		return "unit"
	case Bool:
		return "bool"
	case Char:
		return "char"
	case Int:
		return "int"
	case Float:
		return "float"
	case Func:
		return "func"
	default:
		return "<unknown>"
	}
}

// IsNumeric is true for kinds which take part in numeric promotion.
func (k Kind) IsNumeric() bool {
	return k == Char || k == Int || k == Float
}

// ParseKind returns the kind for a type name as printed by Kind.String.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "unit", "tok":
		return Unit, nil
	case "bool":
		return Bool, nil
	case "char":
		return Char, nil
	case "int":
		return Int, nil
	case "float":
		return Float, nil
	case "func":
		return Func, nil
	}
	return Unit, fmt.Errorf("unknown type name %q", name)
}

// Common returns the kind both operands of a binary operator are promoted to.
//
//    Char ∘ Char   ➞  Int
//    Char ∘ Int    ➞  Int
//    x    ∘ Float  ➞  Float   (x numeric)
//    Bool ∘ Bool   ➞  Bool
//
// Any other combination has no common kind.
func Common(a, b Kind) (Kind, bool) {
	if a == Bool || b == Bool {
		return Bool, a == b
	}
	if !a.IsNumeric() || !b.IsNumeric() {
		return Unit, false
	}
	if a == Float || b == Float {
		return Float, true
	}
	return Int, true
}

// Cast converts a value to a kind.
//
// Casts follow the conversion table of the language: booleans convert to
// characters (⊤/⊥) and numbers (1/0), characters to their code point, integers
// to floats and floats to integers (truncating). The unit value converts to the
// character ●. Every other conversion fails with ohl.ErrTypeMismatch.
func Cast(v Value, k Kind) (Value, error) {
	if v.kind == k {
		return v, nil
	}
	switch v.kind {
	case Unit:
		if k == Char {
			return NewChar(TokenRune), nil
		}
	case Bool:
		switch k {
		case Char:
			if v.i != 0 {
				return NewChar('⊤'), nil
			}
			return NewChar('⊥'), nil
		case Int:
			return NewInt(v.i), nil
		case Float:
			return NewFloat(float64(v.i)), nil
		}
	case Char:
		switch k {
		case Int:
			return NewInt(v.i), nil
		case Float:
			return NewFloat(float64(v.i)), nil
		}
	case Int:
		if k == Float {
			return NewFloat(float64(v.i)), nil
		}
	case Float:
		if k == Int {
			return floatToInt(v.f)
		}
	}
	return v, ohl.Errorf(ohl.ErrTypeMismatch, "cannot cast %s value %s to %s", v.kind, v, k)
}

// float64 cannot represent 2^63-1, so the upper bound is exclusive
const maxIntAsFloat = float64(1 << 63)

func floatToInt(f float64) (Value, error) {
	if f != f || f >= maxIntAsFloat || f < -maxIntAsFloat {
		return NewFloat(f), ohl.Errorf(ohl.ErrTypeMismatch, "float %s is out of int range", NewFloat(f))
	}
	return NewInt(int64(f)), nil
}
