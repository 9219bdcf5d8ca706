package value

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/ohl"
	"github.com/npillmayer/ohl/operators"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestZeroValueIsUnit(t *testing.T) {
	var v Value
	if !v.IsUnit() {
		t.Errorf("expected zero value to be unit, is %#v", v)
	}
	if v.String() != "●" {
		t.Errorf("expected unit to print as ●, is %q", v.String())
	}
}

func TestPrintFloats(t *testing.T) {
	for _, x := range []struct {
		f    float64
		want string
	}{
		{1.0, "1"}, {2.5, "2.5"}, {-0.125, "-0.125"}, {math.Inf(1), "inf"}, {math.Inf(-1), "-inf"},
	} {
		if s := NewFloat(x.f).String(); s != x.want {
			t.Errorf("expected %v to print as %q, is %q", x.f, x.want, s)
		}
	}
}

func TestCommonKind(t *testing.T) {
	for _, x := range []struct {
		a, b Kind
		want Kind
		ok   bool
	}{
		{Char, Char, Int, true},
		{Char, Int, Int, true},
		{Int, Float, Float, true},
		{Char, Float, Float, true},
		{Bool, Bool, Bool, true},
		{Bool, Int, Bool, false},
		{Unit, Int, Unit, false},
		{Func, Func, Unit, false},
	} {
		k, ok := Common(x.a, x.b)
		if ok != x.ok || (ok && k != x.want) {
			t.Errorf("Common(%s, %s) = (%s, %v), expected (%s, %v)", x.a, x.b, k, ok, x.want, x.ok)
		}
	}
}

func TestCasts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ohl.value")
	defer teardown()
	//
	for _, x := range []struct {
		v    Value
		k    Kind
		want Value
	}{
		{NewBool(true), Char, NewChar('⊤')},
		{NewBool(false), Char, NewChar('⊥')},
		{NewBool(true), Int, NewInt(1)},
		{NewChar('A'), Int, NewInt(65)},
		{NewInt(3), Float, NewFloat(3)},
		{NewFloat(-3.9), Int, NewInt(-3)},
		{Token(), Char, NewChar('●')},
		{NewInt(7), Int, NewInt(7)},
	} {
		c, err := Cast(x.v, x.k)
		if err != nil {
			t.Errorf("cast of %#v to %s failed: %v", x.v, x.k, err)
		} else if !c.Equal(x.want) {
			t.Errorf("cast of %#v to %s: expected %#v, have %#v", x.v, x.k, x.want, c)
		}
	}
	if _, err := Cast(NewInt(1), Bool); !errors.Is(err, ohl.ErrTypeMismatch) {
		t.Errorf("expected int->bool to be a type mismatch, have %v", err)
	}
	if _, err := Cast(NewFloat(math.NaN()), Int); !errors.Is(err, ohl.ErrTypeMismatch) {
		t.Errorf("expected NaN->int to fail, have %v", err)
	}
}

func TestIntFloatRoundTrip(t *testing.T) {
	for _, i := range []int64{0, 1, -1, 42, -4096, 1 << 52} {
		f, _ := Cast(NewInt(i), Float)
		back, err := Cast(f, Int)
		if err != nil || !back.Equal(NewInt(i)) {
			t.Errorf("int %d did not survive a round trip through float: %v, %v", i, back, err)
		}
	}
}

func TestBinaryArithmetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ohl.value")
	defer teardown()
	//
	for _, x := range []struct {
		op   operators.Operator
		l, r Value
		want Value
	}{
		{operators.Addition, NewInt(2), NewInt(3), NewInt(5)},
		{operators.Subtraction, NewInt(2), NewInt(3), NewInt(-1)},
		{operators.Multiplication, NewInt(4), NewFloat(0.5), NewFloat(2)},
		{operators.Division, NewInt(7), NewInt(2), NewInt(3)},
		{operators.Division, NewInt(-7), NewInt(2), NewInt(-3)},
		{operators.Division, NewFloat(7), NewInt(2), NewFloat(3.5)},
		{operators.Addition, NewChar('a'), NewInt(1), NewInt(98)},
		{operators.Exponentiation, NewInt(2), NewInt(10), NewInt(1024)},
		{operators.Exponentiation, NewInt(2), NewInt(-1), NewFloat(0.5)},
		{operators.Exponentiation, NewFloat(4), NewFloat(0.5), NewFloat(2)},
	} {
		v, err := Binary(x.op, x.l, x.r, Options{})
		if err != nil {
			t.Errorf("%#v %s %#v failed: %v", x.l, x.op, x.r, err)
		} else if !v.Equal(x.want) {
			t.Errorf("%#v %s %#v: expected %#v, have %#v", x.l, x.op, x.r, x.want, v)
		}
	}
}

func TestBinaryComparison(t *testing.T) {
	for _, x := range []struct {
		op   operators.Operator
		l, r Value
		want bool
	}{
		{operators.LessThan, NewInt(2), NewInt(1), false},
		{operators.GreaterThan, NewInt(2), NewFloat(1.5), true},
		{operators.LessThanOrEqual, NewChar('a'), NewChar('a'), true},
		{operators.GreaterThanOrEqual, NewInt(1), NewInt(2), false},
		{operators.Equal, NewInt(1), NewFloat(1), true},
	} {
		v, err := Binary(x.op, x.l, x.r, Options{})
		if err != nil {
			t.Errorf("%#v %s %#v failed: %v", x.l, x.op, x.r, err)
		} else if !v.Equal(NewBool(x.want)) {
			t.Errorf("%#v %s %#v: expected %v, have %#v", x.l, x.op, x.r, x.want, v)
		}
	}
	for _, op := range []operators.Operator{operators.Equal, operators.NotEqual, operators.LessThan} {
		if _, err := Binary(op, NewBool(true), NewBool(false), Options{}); !errors.Is(err, ohl.ErrTypeMismatch) {
			t.Errorf("expected %s on booleans to fail with type mismatch, have %v", op, err)
		}
	}
	if _, err := Binary(operators.Equal, NewBool(true), NewInt(1), Options{}); !errors.Is(err, ohl.ErrTypeMismatch) {
		t.Errorf("expected == on (bool, int) to fail with type mismatch, have %v", err)
	}
}

func TestLogical(t *testing.T) {
	v, err := Binary(operators.LogicalAnd, NewBool(true), NewBool(false), Options{})
	if err != nil || !v.Equal(NewBool(false)) {
		t.Errorf("expected true and false = false, have %v, %v", v, err)
	}
	if _, err = Binary(operators.LogicalOr, NewBool(true), NewInt(0), Options{}); !errors.Is(err, ohl.ErrTypeMismatch) {
		t.Errorf("expected or on int to be a type mismatch, have %v", err)
	}
	if _, err = Binary(operators.Addition, NewBool(true), NewBool(true), Options{}); !errors.Is(err, ohl.ErrTypeMismatch) {
		t.Errorf("expected + on bools to be a type mismatch, have %v", err)
	}
}

func TestDivisionByZero(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ohl.value")
	defer teardown()
	//
	if _, err := Binary(operators.Division, NewInt(1), NewInt(0), Options{}); !errors.Is(err, ohl.ErrDivisionByZero) {
		t.Errorf("expected int division by zero to fail, have %v", err)
	}
	if _, err := Binary(operators.Division, NewFloat(1), NewFloat(0), Options{}); !errors.Is(err, ohl.ErrDivisionByZero) {
		t.Errorf("expected float division by zero to fail, have %v", err)
	}
	v, err := Binary(operators.Division, NewFloat(1), NewFloat(0), Options{IEEEDivision: true})
	if err != nil || v.String() != "inf" {
		t.Errorf("expected IEEE division to yield inf, have %v, %v", v, err)
	}
	if _, err := Binary(operators.Division, NewInt(1), NewInt(0), Options{IEEEDivision: true}); !errors.Is(err, ohl.ErrDivisionByZero) {
		t.Errorf("expected int division by zero to fail even with IEEE division, have %v", err)
	}
}

func TestUnary(t *testing.T) {
	for _, x := range []struct {
		op   operators.Operator
		v    Value
		want Value
	}{
		{operators.Not, NewBool(true), NewBool(false)},
		{operators.Negate, NewInt(3), NewInt(-3)},
		{operators.Negate, NewChar('A'), NewInt(-65)},
		{operators.Negate, NewFloat(1.5), NewFloat(-1.5)},
		{operators.Reciprocal, NewFloat(4), NewFloat(0.25)},
	} {
		v, err := Unary(x.op, x.v, Options{})
		if err != nil || !v.Equal(x.want) {
			t.Errorf("%s %#v: expected %#v, have %#v (%v)", x.op, x.v, x.want, v, err)
		}
	}
	if _, err := Unary(operators.Reciprocal, NewInt(4), Options{}); !errors.Is(err, ohl.ErrTypeMismatch) {
		t.Errorf("expected reciprocal of int to be a type mismatch, have %v", err)
	}
	if _, err := Unary(operators.Not, NewInt(4), Options{}); !errors.Is(err, ohl.ErrTypeMismatch) {
		t.Errorf("expected not of int to be a type mismatch, have %v", err)
	}
}

func TestParseLiteral(t *testing.T) {
	for _, x := range []struct {
		in   string
		want Value
	}{
		{"", Token()}, {"true", NewBool(true)}, {" 42 ", NewInt(42)}, {"-2.5", NewFloat(-2.5)},
		{"x", NewChar('x')}, {"'y'", NewChar('y')}, {"●", Token()},
	} {
		v, err := ParseLiteral(x.in)
		if err != nil || !v.Equal(x.want) {
			t.Errorf("ParseLiteral(%q): expected %#v, have %#v (%v)", x.in, x.want, v, err)
		}
	}
	if _, err := ParseLiteral("hello"); err == nil {
		t.Errorf("expected ParseLiteral(hello) to fail")
	}
}
