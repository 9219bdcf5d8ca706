package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/ohl"
	"github.com/npillmayer/ohl/operators"
	"github.com/npillmayer/ohl/value"
)

// Kind is the syntactic category of a node.
type Kind int8

const (
	NoKind Kind = iota
	Block
	Func
	Params
	If
	While
	Break
	Continue
	Return
	Assign
	Let // immutable declaration
	Var // mutable declaration
	Read
	Write
	Call
	Ident
	Literal
	Unary
	Binary
	Cast
	Ref // resolved identifier, created by the resolver only
)

var kindNames = [...]string{"?", "block", "func", "params", "if", "while", "break",
	"continue", "return", "set", "let", "var", "read", "write", "call", "ident", "literal",
	"unary", "binary", "cast", "ref"}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "?"
	}
	return kindNames[k]
}

// arity holds the minimum and maximum number of children for each kind.
// A maximum of -1 stands for 'any number'.
var arity = map[Kind][2]int{
	Block:    {0, -1},
	Func:     {3, 3},
	Params:   {0, -1},
	If:       {3, 3},
	While:    {2, 2},
	Break:    {0, 0},
	Continue: {0, 0},
	Return:   {0, 1},
	Assign:   {2, 2},
	Let:      {2, 2},
	Var:      {2, 2},
	Read:     {1, 1},
	Write:    {1, 1},
	Call:     {1, -1},
	Ident:    {0, 0},
	Literal:  {0, 0},
	Unary:    {1, 1},
	Binary:   {2, 2},
	Cast:     {1, 1},
	Ref:      {0, 0},
}

// Arity returns the minimum and maximum number of children a node of kind k
// may have. max is -1 for kinds with an open number of children.
func Arity(k Kind) (min, max int) {
	a, ok := arity[k]
	if !ok {
		return 0, 0
	}
	return a[0], a[1]
}

// Node is a node of a syntax tree.
type Node struct {
	Kind     Kind
	Op       operators.Operator // Unary, Binary
	Name     string             // Ident, Ref
	Value    value.Value        // Literal
	Type     value.Kind         // Cast target
	Children []*Node
	Span     ohl.Span
}

// --- Constructors ----------------------------------------------------------

func NewBlock(stmts ...*Node) *Node {
	return &Node{Kind: Block, Children: stmts}
}

// NewFunc creates a function declaration. The body has to be a block.
func NewFunc(name string, params []string, body *Node) *Node {
	p := &Node{Kind: Params}
	for _, param := range params {
		p.Children = append(p.Children, NewIdent(param))
	}
	return &Node{Kind: Func, Children: []*Node{NewIdent(name), p, body}}
}

// NewIf creates a conditional. A nil else branch is replaced by an empty
// block.
func NewIf(cond, then, els *Node) *Node {
	if els == nil {
		els = NewBlock()
	}
	return &Node{Kind: If, Children: []*Node{cond, then, els}}
}

func NewWhile(cond, body *Node) *Node {
	return &Node{Kind: While, Children: []*Node{cond, body}}
}

func NewBreak() *Node {
	return &Node{Kind: Break}
}

func NewContinue() *Node {
	return &Node{Kind: Continue}
}

// NewReturn creates a return statement. expr may be nil.
func NewReturn(expr *Node) *Node {
	n := &Node{Kind: Return}
	if expr != nil {
		n.Children = []*Node{expr}
	}
	return n
}

func NewAssign(name string, expr *Node) *Node {
	return &Node{Kind: Assign, Children: []*Node{NewIdent(name), expr}}
}

func NewLet(name string, expr *Node) *Node {
	return &Node{Kind: Let, Children: []*Node{NewIdent(name), expr}}
}

func NewVar(name string, expr *Node) *Node {
	return &Node{Kind: Var, Children: []*Node{NewIdent(name), expr}}
}

func NewRead(name string) *Node {
	return &Node{Kind: Read, Children: []*Node{NewIdent(name)}}
}

func NewWrite(expr *Node) *Node {
	return &Node{Kind: Write, Children: []*Node{expr}}
}

func NewCall(callee *Node, args ...*Node) *Node {
	return &Node{Kind: Call, Children: append([]*Node{callee}, args...)}
}

func NewIdent(name string) *Node {
	return &Node{Kind: Ident, Name: name}
}

func NewLiteral(v value.Value) *Node {
	return &Node{Kind: Literal, Value: v}
}

func NewUnary(op operators.Operator, x *Node) *Node {
	return &Node{Kind: Unary, Op: op, Children: []*Node{x}}
}

func NewBinary(op operators.Operator, l, r *Node) *Node {
	return &Node{Kind: Binary, Op: op, Children: []*Node{l, r}}
}

func NewCast(k value.Kind, x *Node) *Node {
	return &Node{Kind: Cast, Type: k, Children: []*Node{x}}
}

// At sets the span of a node. Returns the node (for chaining).
func (n *Node) At(span ohl.Span) *Node {
	n.Span = span
	return n
}

// --- Validation ------------------------------------------------------------

// Check validates the arity of every node of a tree, together with the
// shape constraints of declarations: names are identifiers, parameters are
// a list of identifiers and function bodies are blocks. Errors match
// ohl.ErrArityMismatch.
func Check(n *Node) error {
	if n == nil {
		return ohl.Errorf(ohl.ErrArityMismatch, "missing node")
	}
	min, max := Arity(n.Kind)
	if l := len(n.Children); l < min || (max >= 0 && l > max) {
		return ohl.WrapError(n.Span, ohl.Errorf(ohl.ErrArityMismatch,
			"%s node has %d children", n.Kind, l))
	}
	switch n.Kind {
	case NoKind:
		return ohl.WrapError(n.Span, ohl.Errorf(ohl.ErrArityMismatch, "node without kind"))
	case Func:
		if err := expect(n, 0, Ident); err != nil {
			return err
		}
		if err := expect(n, 1, Params); err != nil {
			return err
		}
		if err := expect(n, 2, Block); err != nil {
			return err
		}
		for i := range n.Children[1].Children {
			if err := expect(n.Children[1], i, Ident); err != nil {
				return err
			}
		}
	case Assign, Let, Var, Read:
		if err := expect(n, 0, Ident); err != nil {
			return err
		}
	case If:
		if err := expect(n, 1, Block); err != nil {
			return err
		}
		if err := expect(n, 2, Block); err != nil {
			return err
		}
	case While:
		if err := expect(n, 1, Block); err != nil {
			return err
		}
	}
	for _, ch := range n.Children {
		if err := Check(ch); err != nil {
			return err
		}
	}
	return nil
}

func expect(n *Node, i int, k Kind) error {
	if ch := n.Children[i]; ch == nil || ch.Kind != k {
		tracer().Debugf("child #%d of %s is not a %s", i, n.Kind, k)
		return ohl.WrapError(n.Span, ohl.Errorf(ohl.ErrArityMismatch,
			"child #%d of %s node must be a %s", i, n.Kind, k))
	}
	return nil
}

// --- Printing --------------------------------------------------------------

// String renders a tree as an s-expression, in the notation package sexpr
// reads.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	switch n.Kind {
	case Ident, Ref:
		b.WriteString(n.Name)
		return
	case Literal:
		b.WriteString(FormatLiteral(n.Value))
		return
	case Params:
		b.WriteByte('(')
		for i, ch := range n.Children {
			if i > 0 {
				b.WriteByte(' ')
			}
			ch.write(b)
		}
		b.WriteByte(')')
		return
	}
	b.WriteByte('(')
	switch n.Kind {
	case Unary, Binary:
		b.WriteString(n.Op.String())
	case Cast:
		b.WriteString("cast ")
		b.WriteString(n.Type.String())
	default:
		b.WriteString(n.Kind.String())
	}
	for _, ch := range n.Children {
		b.WriteByte(' ')
		ch.write(b)
	}
	b.WriteByte(')')
}

// FormatLiteral prints a value in literal notation, i.e. such that reading
// it back yields a value of the same kind.
func FormatLiteral(v value.Value) string {
	switch v.Kind() {
	case value.Unit:
		return "#u"
	case value.Bool:
		if b, _ := v.AsBool(); b {
			return "#t"
		}
		return "#f"
	case value.Char:
		r, _ := v.AsChar()
		return "'" + string(r) + "'"
	case value.Float:
		f, _ := v.AsFloat()
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	}
	return fmt.Sprint(v)
}
