package operators

import "fmt"

// Operator identifies an operator. Unary and binary operators may share the
// same spelling; which one is meant depends on the number of operands.
type Operator string

const (
	Exponentiation Operator = "^"

	Multiplication Operator = "*"
	Division       Operator = "/"

	Addition    Operator = "+"
	Subtraction Operator = "-"

	Equal              Operator = "=="
	NotEqual           Operator = "!="
	LessThan           Operator = "<"
	GreaterThan        Operator = ">"
	LessThanOrEqual    Operator = "<="
	GreaterThanOrEqual Operator = ">="

	LogicalAnd Operator = "and"
	LogicalOr  Operator = "or"

	Not        Operator = "not"
	Negate     Operator = "-"
	Reciprocal Operator = "/"
)

func (o Operator) IsArithmetic() bool {
	switch o {
	case Addition,
		Subtraction,
		Multiplication,
		Division,
		Exponentiation:
		return true
	default:
		return false
	}
}

func (o Operator) IsComparison() bool {
	switch o {
	case Equal,
		NotEqual,
		LessThan,
		GreaterThan,
		LessThanOrEqual,
		GreaterThanOrEqual:
		return true
	default:
		return false
	}
}

func (o Operator) IsLogical() bool {
	switch o {
	case LogicalAnd, LogicalOr, Not:
		return true
	default:
		return false
	}
}

// IsUnary is true for operators which may be applied to a single operand.
func (o Operator) IsUnary() bool {
	switch o {
	case Not, Negate, Reciprocal:
		return true
	default:
		return false
	}
}

// IsBinary is true for operators which may be applied to two operands.
func (o Operator) IsBinary() bool {
	return o.IsArithmetic() || o.IsComparison() || o == LogicalAnd || o == LogicalOr
}

// Parse finds the operator for a lexeme. Besides the canonical spellings it
// accepts "&&", "||" and "!" for the logical operators.
func Parse(lexeme string) (Operator, error) {
	switch lexeme {
	case "&&":
		return LogicalAnd, nil
	case "||":
		return LogicalOr, nil
	case "!":
		return Not, nil
	}
	o := Operator(lexeme)
	if o.IsUnary() || o.IsBinary() {
		return o, nil
	}
	return "", fmt.Errorf("unknown operator %q", lexeme)
}

func (o Operator) String() string {
	return string(o)
}
