package resolver

import (
	"github.com/npillmayer/ohl"
	"github.com/npillmayer/ohl/ast"
	"github.com/npillmayer/ohl/runtime"
	"github.com/npillmayer/ohl/value"
)

// Options control resolution.
type Options struct {
	// StrictDeclarations rejects assignments to undeclared names. Otherwise
	// the first assignment to a name declares a mutable variable in the
	// current scope.
	StrictDeclarations bool
}

type resolver struct {
	opts    Options
	scopes  *runtime.ScopeTree
	hoisted map[*ast.Node]runtime.Address // function declarations of open blocks
	loops   []int                         // nesting depth of loops, per function
}

// Resolve resolves a syntax tree. The root node is treated as the block of
// the program; if it is not a block, it is wrapped into one.
//
// The tree is validated with ast.Check first.
func Resolve(root *ast.Node, opts Options) (*Program, error) {
	if err := ast.Check(root); err != nil {
		return nil, err
	}
	if root.Kind != ast.Block {
		root = ast.NewBlock(root).At(root.Span)
	}
	r := &resolver{
		opts:    opts,
		scopes:  runtime.NewScopeTree(),
		hoisted: make(map[*ast.Node]runtime.Address),
		loops:   []int{0},
	}
	block, err := r.block(root, "program", false)
	if err != nil {
		return nil, err
	}
	globals := r.scopes.Globals()
	tracer().Infof("resolved program into %d static frames, %d process cells in %s",
		r.scopes.Len(), globals.Size(runtime.Process), globals)
	return &Program{Root: block, Scopes: r.scopes}, nil
}

func (r *resolver) current() *runtime.StaticFrame {
	return r.scopes.Current()
}

// block resolves a block. A function body is resolved within the function's
// frame, every other block gets a frame of its own.
func (r *resolver) block(n *ast.Node, name string, functionBody bool) (*Node, error) {
	if !functionBody {
		r.scopes.PushNewScope(name, false)
		defer r.scopes.PopScope()
	}
	sf := r.current()
	for _, stmt := range n.Children {
		if stmt.Kind == ast.Func {
			fname := stmt.Children[0].Name
			r.hoisted[stmt] = sf.Declare(fname, runtime.Process, false)
			tracer().Debugf("declared function %s in %s", fname, sf)
		}
	}
	resolved := &Node{Kind: ast.Block, Frame: sf.ID, Span: n.Span}
	for _, stmt := range n.Children {
		rstmt, err := r.node(stmt)
		if err != nil {
			return nil, err
		}
		resolved.Children = append(resolved.Children, rstmt)
	}
	return resolved, nil
}

func (r *resolver) node(n *ast.Node) (*Node, error) {
	var rnode *Node
	var err error
	switch n.Kind {
	case ast.Block:
		rnode, err = r.block(n, "block", false)
	case ast.Func:
		rnode, err = r.function(n)
	case ast.If:
		rnode, err = r.conditional(n)
	case ast.While:
		rnode, err = r.loop(n)
	case ast.Break, ast.Continue:
		if r.loops[len(r.loops)-1] == 0 {
			err = ohl.Errorf(ohl.ErrMisplacedControl, "%s outside of loop", n.Kind)
		}
		rnode = &Node{Kind: n.Kind}
	case ast.Let, ast.Var:
		rnode, err = r.declaration(n)
	case ast.Assign, ast.Read:
		rnode, err = r.assignment(n)
	case ast.Ident:
		rnode, err = r.reference(n)
	case ast.Literal:
		rnode = &Node{Kind: ast.Literal, Value: n.Value}
	case ast.Return, ast.Write, ast.Call, ast.Unary, ast.Binary, ast.Cast:
		rnode = &Node{Kind: n.Kind, Op: n.Op, Type: n.Type}
		rnode.Children, err = r.nodes(n.Children)
	default:
		err = ohl.Errorf(ohl.ErrArityMismatch, "unexpected %s node", n.Kind)
	}
	if err != nil {
		return nil, ohl.WrapError(n.Span, err)
	}
	rnode.Span = n.Span
	return rnode, nil
}

func (r *resolver) nodes(children []*ast.Node) ([]*Node, error) {
	resolved := make([]*Node, len(children))
	for i, ch := range children {
		rch, err := r.node(ch)
		if err != nil {
			return nil, err
		}
		resolved[i] = rch
	}
	return resolved, nil
}

// function resolves a function declaration: name, parameters and body.
func (r *resolver) function(n *ast.Node) (*Node, error) {
	name := n.Children[0].Name
	outer := r.current()
	addr, ok := r.hoisted[n]
	if !ok { // declaration not directly within a block
		addr = outer.Declare(name, runtime.Process, false)
	}
	delete(r.hoisted, n)
	sf := r.scopes.PushNewScope(name, true)
	defer r.scopes.PopScope()
	fn := &Function{name: name, Frame: sf.ID}
	for _, p := range n.Children[1].Children {
		sf.Declare(p.Name, runtime.Call, true)
		fn.Params = append(fn.Params, p.Name)
	}
	r.loops = append(r.loops, 0)
	body, err := r.block(n.Children[2], name, true)
	r.loops = r.loops[:len(r.loops)-1]
	if err != nil {
		return nil, err
	}
	body.Span = n.Children[2].Span
	fn.Body = body
	if err := outer.PatchValue(addr, value.NewFunc(fn)); err != nil {
		return nil, err
	}
	tracer().Debugf("resolved function %s with frame #%d", fn, sf.ID)
	return &Node{Kind: ast.Func, Name: name, Address: addr, Func: fn}, nil
}

func (r *resolver) conditional(n *ast.Node) (*Node, error) {
	cond, err := r.node(n.Children[0])
	if err != nil {
		return nil, err
	}
	then, err := r.node(n.Children[1])
	if err != nil {
		return nil, err
	}
	els, err := r.node(n.Children[2])
	if err != nil {
		return nil, err
	}
	return &Node{Kind: ast.If, Children: []*Node{cond, then, els}}, nil
}

// loop resolves a while statement. The condition is resolved in the
// enclosing frame, the body gets a frame of its own.
func (r *resolver) loop(n *ast.Node) (*Node, error) {
	cond, err := r.node(n.Children[0])
	if err != nil {
		return nil, err
	}
	r.loops[len(r.loops)-1]++
	body, err := r.node(n.Children[1])
	r.loops[len(r.loops)-1]--
	if err != nil {
		return nil, err
	}
	return &Node{Kind: ast.While, Children: []*Node{cond, body}}, nil
}

// lifetime returns the lifetime of variables declared in the current frame.
func (r *resolver) lifetime() runtime.Lifetime {
	if r.current().InFunction() {
		return runtime.Call
	}
	return runtime.Process
}

// declaration resolves let and var. The initializer is resolved before the
// name is declared, so it refers to an outer variable of the same name, if
// any.
func (r *resolver) declaration(n *ast.Node) (*Node, error) {
	init, err := r.node(n.Children[1])
	if err != nil {
		return nil, err
	}
	name := n.Children[0].Name
	addr := r.current().Declare(name, r.lifetime(), n.Kind == ast.Var)
	return &Node{Kind: n.Kind, Name: name, Address: addr, Children: []*Node{init}}, nil
}

// assignment resolves the target of an assignment or read statement.
func (r *resolver) assignment(n *ast.Node) (*Node, error) {
	rnode := &Node{Kind: n.Kind, Name: n.Children[0].Name}
	if n.Kind == ast.Assign {
		expr, err := r.node(n.Children[1])
		if err != nil {
			return nil, err
		}
		rnode.Children = []*Node{expr}
	}
	addr, err := r.lookup(rnode.Name)
	if err == nil {
		rnode.Address = addr
		return rnode, nil
	}
	if r.opts.StrictDeclarations || !mayDeclare(err) {
		return nil, err
	}
	rnode.Address = r.current().Declare(rnode.Name, r.lifetime(), true)
	tracer().Debugf("implicitly declared %s at %s", rnode.Name, rnode.Address)
	return rnode, nil
}

func (r *resolver) reference(n *ast.Node) (*Node, error) {
	addr, err := r.lookup(n.Name)
	if err != nil {
		return nil, err
	}
	return &Node{Kind: ast.Ref, Name: n.Name, Address: addr}, nil
}

// lookup finds the address of a name, relative to the current frame.
func (r *resolver) lookup(name string) (runtime.Address, error) {
	res, ok := r.current().LookupFrom(name)
	if !ok {
		return runtime.Address{}, ohl.Errorf(ohl.ErrUnresolvedSymbol, "'%s' is not declared", name)
	}
	if res.Address.Lifetime == runtime.Call && res.CrossesFunction {
		return runtime.Address{}, &crossingError{name: name}
	}
	return res.Address, nil
}

// crossingError flags a reference to a local variable of an enclosing
// function. It is an unresolved symbol, but must not trigger an implicit
// declaration.
type crossingError struct {
	name string
}

func (e *crossingError) Error() string {
	return ohl.ErrUnresolvedSymbol.Error() + ": '" + e.name + "' is local to an enclosing function"
}

func (e *crossingError) Unwrap() error {
	return ohl.ErrUnresolvedSymbol
}

// mayDeclare is true if an unresolved target may be declared implicitly.
func mayDeclare(err error) bool {
	_, crossing := err.(*crossingError)
	return !crossing
}
