package resolver

import (
	"fmt"
	"strings"

	"github.com/npillmayer/ohl"
	"github.com/npillmayer/ohl/ast"
	"github.com/npillmayer/ohl/operators"
	"github.com/npillmayer/ohl/runtime"
	"github.com/npillmayer/ohl/value"
)

// Node is a node of a resolved tree. Kinds are the same as for ast.Node,
// but identifiers are replaced:
//
//    Ident                 ➞  Ref with Address
//    Assign/Let/Var/Read   ➞  target address in Address, no identifier child
//    Func                  ➞  resolved function in Func, no children
//    Block                 ➞  static frame in Frame
//
type Node struct {
	Kind     ast.Kind
	Op       operators.Operator
	Name     string
	Value    value.Value
	Type     value.Kind
	Address  runtime.Address
	Frame    runtime.FrameID
	Func     *Function
	Children []*Node
	Span     ohl.Span
}

// Function is a resolved function. It is the body of function values.
type Function struct {
	name   string
	Params []string
	Frame  runtime.FrameID // frame of parameters and body
	Body   *Node           // a block with Frame == Frame
}

// Name returns the declared name of the function.
func (fn *Function) Name() string {
	return fn.name
}

// Arity returns the number of parameters.
func (fn *Function) Arity() int {
	return len(fn.Params)
}

func (fn *Function) String() string {
	return fmt.Sprintf("<func %s/%d>", fn.name, len(fn.Params))
}

var _ value.Body = (*Function)(nil)

// Program is the result of resolution.
type Program struct {
	Root   *Node // a block
	Scopes *runtime.ScopeTree
}

// Walk visits a resolved tree in depth-first order. Function bodies are
// visited as the only child of their declaration.
func Walk(n *Node, f func(n *Node, level int)) {
	walk(n, 0, f)
}

func walk(n *Node, level int, f func(*Node, int)) {
	if n == nil {
		return
	}
	f(n, level)
	if n.Kind == ast.Func && n.Func != nil {
		walk(n.Func.Body, level+1, f)
		return
	}
	for _, ch := range n.Children {
		walk(ch, level+1, f)
	}
}

// Label is a one-line description of a node, without its children.
func (n *Node) Label() string {
	switch n.Kind {
	case ast.Ref:
		return fmt.Sprintf("%s@%s", n.Name, n.Address)
	case ast.Literal:
		return ast.FormatLiteral(n.Value)
	case ast.Block:
		return fmt.Sprintf("block #%d", n.Frame)
	case ast.Func:
		return fmt.Sprintf("func %s(%s) @%s", n.Name, strings.Join(n.Func.Params, " "), n.Address)
	case ast.Assign, ast.Let, ast.Var, ast.Read:
		return fmt.Sprintf("%s %s@%s", n.Kind, n.Name, n.Address)
	case ast.Unary, ast.Binary:
		return n.Op.String()
	case ast.Cast:
		return "cast " + n.Type.String()
	}
	return n.Kind.String()
}

// String renders a resolved tree as an s-expression, annotating names with
// their addresses.
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
	case ast.Ref, ast.Literal:
		b.WriteString(n.Label())
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Label())
	if n.Kind == ast.Func {
		b.WriteByte(' ')
		n.Func.Body.write(b)
	}
	for _, ch := range n.Children {
		b.WriteByte(' ')
		ch.write(b)
	}
	b.WriteByte(')')
}
