package value

import (
	"math"

	"github.com/npillmayer/ohl"
	"github.com/npillmayer/ohl/operators"
	"golang.org/x/exp/constraints"
)

// Options control operator application.
type Options struct {
	// IEEEDivision lets float division by zero produce infinities or NaN.
	// Otherwise it fails with ohl.ErrDivisionByZero, as does integer division.
	IEEEDivision bool
}

type number interface {
	constraints.Integer | constraints.Float
}

// Unary applies a unary operator.
//
//    not  bool   ➞ bool
//    -    char | int | float   ➞ int | float
//    /    float  ➞ float        (reciprocal)
//
func Unary(op operators.Operator, v Value, opts Options) (Value, error) {
	switch op {
	case operators.Not:
		if b, ok := v.AsBool(); ok {
			return NewBool(!b), nil
		}
	case operators.Negate:
		switch v.kind {
		case Char, Int:
			return NewInt(-v.i), nil
		case Float:
			return NewFloat(-v.f), nil
		}
	case operators.Reciprocal:
		if f, ok := v.AsFloat(); ok {
			if f == 0 && !opts.IEEEDivision {
				return v, ohl.Errorf(ohl.ErrDivisionByZero, "reciprocal of %s", v)
			}
			return NewFloat(1 / f), nil
		}
	}
	return v, ohl.Errorf(ohl.ErrTypeMismatch, "operator %s is undefined on %s", op, v.kind)
}

// Binary applies a binary operator. Operands are promoted to their common
// kind first (see Common).
func Binary(op operators.Operator, l, r Value, opts Options) (Value, error) {
	switch {
	case op == operators.LogicalAnd || op == operators.LogicalOr:
		return logical(op, l, r)
	case op.IsArithmetic():
		return arithmetic(op, l, r, opts)
	case op.IsComparison():
		return relational(op, l, r)
	}
	return Token(), ohl.Errorf(ohl.ErrTypeMismatch, "binary operator %s is undefined on (%s, %s)",
		op, l.kind, r.kind)
}

// promote casts both operands to their common numeric kind.
func promote(op operators.Operator, l, r Value) (Value, Value, error) {
	k, ok := Common(l.kind, r.kind)
	if !ok || k == Bool {
		return l, r, ohl.Errorf(ohl.ErrTypeMismatch, "operator %s needs numeric operands, have (%s, %s)",
			op, l.kind, r.kind)
	}
	lp, err := Cast(l, k)
	if err != nil {
		return l, r, err
	}
	rp, err := Cast(r, k)
	if err != nil {
		return l, r, err
	}
	tracer().Debugf("promoted (%s, %s) to %s for %s", l.kind, r.kind, k, op)
	return lp, rp, nil
}

func arithmetic(op operators.Operator, l, r Value, opts Options) (Value, error) {
	l, r, err := promote(op, l, r)
	if err != nil {
		return Token(), err
	}
	if l.kind == Int {
		switch op {
		case operators.Division:
			if r.i == 0 {
				return Token(), ohl.Errorf(ohl.ErrDivisionByZero, "%s / %s", l, r)
			}
		case operators.Exponentiation:
			if r.i < 0 {
				return NewFloat(math.Pow(float64(l.i), float64(r.i))), nil
			}
			return NewInt(ipow(l.i, r.i)), nil
		}
		return NewInt(arith(op, l.i, r.i)), nil
	}
	switch op {
	case operators.Division:
		if r.f == 0 && !opts.IEEEDivision {
			return Token(), ohl.Errorf(ohl.ErrDivisionByZero, "%s / %s", l, r)
		}
	case operators.Exponentiation:
		return NewFloat(math.Pow(l.f, r.f)), nil
	}
	return NewFloat(arith(op, l.f, r.f)), nil
}

// arith applies +, -, * and /. Integer division truncates towards zero.
func arith[T number](op operators.Operator, l, r T) T {
	switch op {
	case operators.Addition:
		return l + r
	case operators.Subtraction:
		return l - r
	case operators.Multiplication:
		return l * r
	case operators.Division:
		return l / r
	}
	panic("arith called with non-arithmetic operator " + op.String())
}

// ipow computes base^exp for exp ≥ 0 by repeated squaring, wrapping on
// overflow like the other integer operators.
func ipow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func relational(op operators.Operator, l, r Value) (Value, error) {
	l, r, err := promote(op, l, r)
	if err != nil {
		return Token(), err
	}
	if l.kind == Int {
		return NewBool(compare(op, l.i, r.i)), nil
	}
	return NewBool(compare(op, l.f, r.f)), nil
}

func compare[T constraints.Ordered](op operators.Operator, l, r T) bool {
	switch op {
	case operators.LessThan:
		return l < r
	case operators.GreaterThan:
		return l > r
	case operators.LessThanOrEqual:
		return l <= r
	case operators.GreaterThanOrEqual:
		return l >= r
	case operators.Equal:
		return l == r
	case operators.NotEqual:
		return l != r
	}
	panic("compare called with non-relational operator " + op.String())
}

func logical(op operators.Operator, l, r Value) (Value, error) {
	lb, lok := l.AsBool()
	rb, rok := r.AsBool()
	if !lok || !rok {
		return Token(), ohl.Errorf(ohl.ErrTypeMismatch, "operator %s needs bool operands, have (%s, %s)",
			op, l.kind, r.kind)
	}
	if op == operators.LogicalAnd {
		return NewBool(lb && rb), nil
	}
	return NewBool(lb || rb), nil
}
