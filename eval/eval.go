package eval

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/ohl"
	"github.com/npillmayer/ohl/ast"
	"github.com/npillmayer/ohl/operators"
	"github.com/npillmayer/ohl/resolver"
	"github.com/npillmayer/ohl/runtime"
	"github.com/npillmayer/ohl/value"
)

// Control is the control-flow signal of a statement.
type Control int8

const (
	Next Control = iota
	Return
	Break
	Continue
)

func (c Control) String() string {
	switch c {
	case Next:
		return "next"
	case Return:
		return "return"
	case Break:
		return "break"
	case Continue:
		return "continue"
	}
	return "?"
}

// DefaultMaxCallDepth limits the nesting of function calls.
const DefaultMaxCallDepth = 10000

// Evaluator executes resolved programs.
type Evaluator struct {
	out      io.Writer
	in       *bufio.Reader
	maxDepth int
	vopts    value.Options
	rt       *runtime.Runtime
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithOutput sets the destination of write statements. Default is stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Evaluator) {
		e.out = w
	}
}

// WithInput sets the source of read statements. Default is stdin.
func WithInput(r io.Reader) Option {
	return func(e *Evaluator) {
		e.in = bufio.NewReader(r)
	}
}

// WithMaxCallDepth limits the nesting of function calls. n ≤ 0 selects
// DefaultMaxCallDepth.
func WithMaxCallDepth(n int) Option {
	return func(e *Evaluator) {
		if n <= 0 {
			n = DefaultMaxCallDepth
		}
		e.maxDepth = n
	}
}

// WithIEEEDivision lets float division by zero yield infinities and NaN
// instead of failing.
func WithIEEEDivision(ieee bool) Option {
	return func(e *Evaluator) {
		e.vopts.IEEEDivision = ieee
	}
}

// New creates an evaluator.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		out:      os.Stdout,
		maxDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.in == nil {
		e.in = bufio.NewReader(os.Stdin)
	}
	return e
}

// EvaluateProgram runs a resolved program. It returns the value of a
// top-level return statement or, lacking one, the value of the last
// statement.
//
// Evaluation stops at the first error. Errors match one of the error
// categories of package ohl, or are errors of ctx.
func (e *Evaluator) EvaluateProgram(ctx context.Context, prog *resolver.Program) (value.Value, error) {
	e.rt = runtime.NewRuntimeEnvironment(prog.Scopes)
	_, v, err := e.block(ctx, prog.Root, nil)
	if err != nil {
		return value.Token(), err
	}
	tracer().Debugf("program evaluated to %#v", v)
	return v, nil
}

// block evaluates a block in a new runtime frame, linked to frame.
func (e *Evaluator) block(ctx context.Context, n *resolver.Node, frame *runtime.RuntimeFrame) (Control, value.Value, error) {
	sf := e.rt.ScopeTree.Frame(n.Frame)
	rf := runtime.NewRuntimeFrame(sf.Name, sf, frame)
	return e.statements(ctx, n.Children, rf)
}

// statements evaluates statements in order, stopping at the first one which
// does not report Next.
func (e *Evaluator) statements(ctx context.Context, stmts []*resolver.Node, frame *runtime.RuntimeFrame) (Control, value.Value, error) {
	result := value.Token()
	for _, stmt := range stmts {
		ctl, v, err := e.statement(ctx, stmt, frame)
		if err != nil {
			return Next, value.Token(), err
		}
		if ctl != Next {
			return ctl, v, nil
		}
		result = v
	}
	return Next, result, nil
}

func (e *Evaluator) statement(ctx context.Context, n *resolver.Node, frame *runtime.RuntimeFrame) (Control, value.Value, error) {
	var err error
	switch n.Kind {
	case ast.Block:
		return e.block(ctx, n, frame)
	case ast.If:
		return e.conditional(ctx, n, frame)
	case ast.While:
		return e.loop(ctx, n, frame)
	case ast.Break:
		return Break, value.Token(), nil
	case ast.Continue:
		return Continue, value.Token(), nil
	case ast.Return:
		v := value.Token()
		if len(n.Children) > 0 {
			if v, err = e.expr(ctx, n.Children[0], frame); err != nil {
				return Next, v, err
			}
		}
		return Return, v, nil
	case ast.Let, ast.Var, ast.Assign:
		var v value.Value
		if v, err = e.expr(ctx, n.Children[0], frame); err != nil {
			return Next, v, err
		}
		err = e.rt.Store(frame, n.Address, v, n.Kind != ast.Assign)
		if err == nil && n.Kind == ast.Assign { // an assignment yields the assigned value
			return Next, v, nil
		}
	case ast.Read:
		err = e.read(n, frame)
	case ast.Write:
		var v value.Value
		if v, err = e.expr(ctx, n.Children[0], frame); err != nil {
			return Next, v, err
		}
		_, err = fmt.Fprintln(e.out, v.String())
	case ast.Literal, ast.Ref, ast.Func, ast.Unary, ast.Binary, ast.Cast, ast.Call:
		v, err := e.expr(ctx, n, frame)
		return Next, v, err
	default:
		err = ohl.Errorf(ohl.ErrArityMismatch, "unexpected %s node", n.Kind)
	}
	return Next, value.Token(), ohl.WrapError(n.Span, err)
}

func (e *Evaluator) condition(ctx context.Context, n *resolver.Node, frame *runtime.RuntimeFrame) (bool, error) {
	v, err := e.expr(ctx, n, frame)
	if err != nil {
		return false, err
	}
	b, ok := v.AsBool()
	if !ok {
		return false, ohl.WrapError(n.Span, ohl.Errorf(ohl.ErrTypeMismatch,
			"condition must be a bool, is %s", v.Kind()))
	}
	return b, nil
}

func (e *Evaluator) conditional(ctx context.Context, n *resolver.Node, frame *runtime.RuntimeFrame) (Control, value.Value, error) {
	b, err := e.condition(ctx, n.Children[0], frame)
	if err != nil {
		return Next, value.Token(), err
	}
	if b {
		return e.statement(ctx, n.Children[1], frame)
	}
	return e.statement(ctx, n.Children[2], frame)
}

// loop evaluates a while statement. The condition is evaluated in the
// enclosing frame, the body gets a fresh frame per iteration.
func (e *Evaluator) loop(ctx context.Context, n *resolver.Node, frame *runtime.RuntimeFrame) (Control, value.Value, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Next, value.Token(), err
		}
		b, err := e.condition(ctx, n.Children[0], frame)
		if err != nil || !b {
			return Next, value.Token(), err
		}
		ctl, v, err := e.statement(ctx, n.Children[1], frame)
		if err != nil {
			return Next, value.Token(), err
		}
		switch ctl {
		case Break:
			return Next, value.Token(), nil
		case Return:
			return Return, v, nil
		}
	}
}

func (e *Evaluator) read(n *resolver.Node, frame *runtime.RuntimeFrame) error {
	line, err := e.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return fmt.Errorf("read %s: %w", n.Name, err)
	}
	v, err := value.ParseLiteral(strings.TrimRight(line, "\r\n"))
	if err != nil {
		return err
	}
	return e.rt.Store(frame, n.Address, v, false)
}

// expr evaluates an expression.
func (e *Evaluator) expr(ctx context.Context, n *resolver.Node, frame *runtime.RuntimeFrame) (value.Value, error) {
	var v value.Value
	var err error
	switch n.Kind {
	case ast.Literal:
		return n.Value, nil
	case ast.Ref, ast.Func:
		v, err = e.rt.Load(frame, n.Address)
	case ast.Unary:
		if v, err = e.expr(ctx, n.Children[0], frame); err == nil {
			v, err = value.Unary(n.Op, v, e.vopts)
		}
	case ast.Binary:
		v, err = e.binary(ctx, n, frame)
	case ast.Cast:
		if v, err = e.expr(ctx, n.Children[0], frame); err == nil {
			v, err = value.Cast(v, n.Type)
		}
	case ast.Call:
		v, err = e.call(ctx, n, frame)
	default:
		var ctl Control
		ctl, v, err = e.statement(ctx, n, frame)
		if err == nil && ctl != Next {
			err = ohl.Errorf(ohl.ErrMisplacedControl, "%s within expression", ctl)
		}
	}
	return v, ohl.WrapError(n.Span, err)
}

// binary evaluates a binary operator. 'and' and 'or' evaluate their right
// operand only if the left one does not determine the result.
func (e *Evaluator) binary(ctx context.Context, n *resolver.Node, frame *runtime.RuntimeFrame) (value.Value, error) {
	l, err := e.expr(ctx, n.Children[0], frame)
	if err != nil {
		return l, err
	}
	if n.Op == operators.LogicalAnd || n.Op == operators.LogicalOr {
		if b, ok := l.AsBool(); ok && b == (n.Op == operators.LogicalOr) {
			return l, nil
		}
	}
	r, err := e.expr(ctx, n.Children[1], frame)
	if err != nil {
		return r, err
	}
	return value.Binary(n.Op, l, r, e.vopts)
}

// call implements the call protocol: the callee's frame links to the
// caller's caller, arguments are evaluated in the caller's frame and stored
// in the first Call-lifetime slots of the callee's frame.
func (e *Evaluator) call(ctx context.Context, n *resolver.Node, frame *runtime.RuntimeFrame) (value.Value, error) {
	if err := ctx.Err(); err != nil {
		return value.Token(), err
	}
	callee, err := e.expr(ctx, n.Children[0], frame)
	if err != nil {
		return callee, err
	}
	body, ok := callee.AsFunc()
	fn, isResolved := body.(*resolver.Function)
	if !ok || !isResolved {
		return value.Token(), ohl.Errorf(ohl.ErrTypeMismatch, "cannot call %s value %s",
			callee.Kind(), callee)
	}
	args := n.Children[1:]
	if len(args) != fn.Arity() {
		return value.Token(), ohl.Errorf(ohl.ErrArityMismatch, "%s called with %d arguments",
			fn, len(args))
	}
	stack := e.rt.MemFrameStack
	if stack.Depth() >= e.maxDepth {
		return value.Token(), ohl.Errorf(ohl.ErrCallDepthExceeded, "calling %s at depth %d",
			fn, stack.Depth())
	}
	var caller *runtime.RuntimeFrame
	if frame != nil {
		caller = frame.Caller
	}
	rf := runtime.NewRuntimeFrame(fn.Name(), e.rt.ScopeTree.Frame(fn.Frame), caller)
	for i, arg := range args {
		v, err := e.expr(ctx, arg, frame)
		if err != nil {
			return v, err
		}
		addr := runtime.Address{Lifetime: runtime.Call, Slot: i}
		if err = e.rt.Store(rf, addr, v, true); err != nil {
			return v, err
		}
	}
	stack.PushMemoryFrame(rf)
	defer stack.PopMemoryFrame()
	ctl, v, err := e.statements(ctx, fn.Body.Children, rf)
	if err != nil {
		tracer().Debugf("call stack at error: %v", stack.Traceback())
		return value.Token(), err
	}
	if ctl == Return {
		return v, nil
	}
	return value.Token(), nil
}
