package resolver

import (
	"errors"
	"testing"

	"github.com/npillmayer/ohl"
	"github.com/npillmayer/ohl/ast"
	"github.com/npillmayer/ohl/operators"
	"github.com/npillmayer/ohl/runtime"
	"github.com/npillmayer/ohl/value"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func lit(i int64) *ast.Node {
	return ast.NewLiteral(value.NewInt(i))
}

func id(name string) *ast.Node {
	return ast.NewIdent(name)
}

func factorial() *ast.Node {
	return ast.NewBlock(
		ast.NewFunc("fac", []string{"n"}, ast.NewBlock(
			ast.NewIf(ast.NewBinary(operators.LessThan, id("n"), lit(2)),
				ast.NewBlock(ast.NewReturn(lit(1))),
				nil),
			ast.NewReturn(ast.NewBinary(operators.Multiplication, id("n"),
				ast.NewCall(id("fac"), ast.NewBinary(operators.Subtraction, id("n"), lit(1))))),
		)),
		ast.NewWrite(ast.NewCall(id("fac"), lit(5))),
	)
}

// refs collects the addresses of all references to name.
func refs(n *Node, name string) []runtime.Address {
	var addrs []runtime.Address
	Walk(n, func(n *Node, level int) {
		if n.Kind == ast.Ref && n.Name == name {
			addrs = append(addrs, n.Address)
		}
	})
	return addrs
}

func TestResolveFactorial(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ohl.resolver")
	defer teardown()
	//
	prog, err := Resolve(factorial(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("resolved: %s", prog.Root)
	Walk(prog.Root, func(n *Node, level int) {
		if n.Kind == ast.Ident {
			t.Errorf("unresolved identifier %s left in tree", n.Name)
		}
	})
	for _, addr := range refs(prog.Root, "n") {
		if addr != (runtime.Address{Lifetime: runtime.Call, Depth: 0, Slot: 0}) {
			t.Errorf("expected parameter n at C[0:0], have %s", addr)
		}
	}
	fac := refs(prog.Root, "fac")
	if len(fac) != 2 {
		t.Fatalf("expected 2 references to fac, have %d", len(fac))
	}
	if fac[0] != (runtime.Address{Lifetime: runtime.Process, Depth: 1, Slot: 0}) {
		t.Errorf("expected recursive reference to fac at P[1:0], have %s", fac[0])
	}
	if fac[1] != (runtime.Address{Lifetime: runtime.Process, Depth: 0, Slot: 0}) {
		t.Errorf("expected top-level reference to fac at P[0:0], have %s", fac[1])
	}
	program := prog.Scopes.Frame(prog.Root.Frame)
	sym, _ := program.Lookup("fac")
	if body, ok := sym.Value.AsFunc(); !ok || body.Name() != "fac" || body.Arity() != 1 {
		t.Errorf("expected fac to be patched with its body, have %v", sym.Value)
	}
}

func TestMutualRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ohl.resolver")
	defer teardown()
	//
	tree := ast.NewBlock(
		ast.NewFunc("even", []string{"n"}, ast.NewBlock(
			ast.NewReturn(ast.NewCall(id("odd"), id("n"))))),
		ast.NewFunc("odd", []string{"n"}, ast.NewBlock(
			ast.NewReturn(ast.NewCall(id("even"), id("n"))))),
	)
	if _, err := Resolve(tree, Options{}); err != nil {
		t.Errorf("expected forward reference to odd to resolve, got %v", err)
	}
}

func TestUnresolvedSymbol(t *testing.T) {
	w := ast.NewWrite(id("y")).At(ohl.Span{10, 19})
	_, err := Resolve(ast.NewBlock(w), Options{})
	if !errors.Is(err, ohl.ErrUnresolvedSymbol) {
		t.Fatalf("expected unresolved symbol, have %v", err)
	}
	var spanErr ohl.SpanError
	if !errors.As(err, &spanErr) || spanErr.Span != (ohl.Span{10, 19}) {
		t.Errorf("expected error at (10…19), have %v", err)
	}
}

func TestImplicitDeclaration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ohl.resolver")
	defer teardown()
	//
	tree := ast.NewBlock(ast.NewAssign("x", lit(1)), ast.NewWrite(id("x")))
	prog, err := Resolve(tree, Options{})
	if err != nil {
		t.Fatalf("expected assignment to declare x, got %v", err)
	}
	x := refs(prog.Root, "x")
	if len(x) != 1 || x[0].Lifetime != runtime.Process {
		t.Errorf("expected x to be a program-level Process variable, have %v", x)
	}
	_, err = Resolve(tree, Options{StrictDeclarations: true})
	if !errors.Is(err, ohl.ErrUnresolvedSymbol) {
		t.Errorf("expected strict declarations to reject x, have %v", err)
	}
}

func TestLocalsOfFunctions(t *testing.T) {
	tree := ast.NewBlock(
		ast.NewVar("g", lit(0)),
		ast.NewFunc("f", []string{"a"}, ast.NewBlock(
			ast.NewLet("b", lit(2)),
			ast.NewBlock(ast.NewAssign("g", ast.NewBinary(operators.Addition, id("a"), id("b")))),
		)),
	)
	prog, err := Resolve(tree, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var target runtime.Address
	Walk(prog.Root, func(n *Node, level int) {
		if n.Kind == ast.Assign {
			target = n.Address
		}
	})
	// f is hoisted, so it takes Process slot 0
	if target != (runtime.Address{Lifetime: runtime.Process, Depth: 2, Slot: 1}) {
		t.Errorf("expected g at P[2:1] from the inner block, have %s", target)
	}
	if b := refs(prog.Root, "b"); len(b) != 1 || b[0] != (runtime.Address{Lifetime: runtime.Call, Depth: 1, Slot: 1}) {
		t.Errorf("expected b at C[1:1], have %v", b)
	}
}

func TestCrossFunctionLocalRejected(t *testing.T) {
	tree := ast.NewBlock(
		ast.NewFunc("outer", []string{"a"}, ast.NewBlock(
			ast.NewFunc("inner", nil, ast.NewBlock(ast.NewWrite(id("a")))),
		)),
	)
	if _, err := Resolve(tree, Options{}); !errors.Is(err, ohl.ErrUnresolvedSymbol) {
		t.Errorf("expected access to outer's parameter from inner to fail, have %v", err)
	}
	tree = ast.NewBlock(
		ast.NewFunc("outer", []string{"a"}, ast.NewBlock(
			ast.NewFunc("inner", nil, ast.NewBlock(ast.NewAssign("a", lit(1)))),
		)),
	)
	if _, err := Resolve(tree, Options{}); !errors.Is(err, ohl.ErrUnresolvedSymbol) {
		t.Errorf("expected assignment to outer's parameter from inner to fail, have %v", err)
	}
}

func TestMisplacedControl(t *testing.T) {
	if _, err := Resolve(ast.NewBlock(ast.NewBreak()), Options{}); !errors.Is(err, ohl.ErrMisplacedControl) {
		t.Errorf("expected break outside of loop to fail, have %v", err)
	}
	tree := ast.NewBlock(
		ast.NewWhile(ast.NewLiteral(value.NewBool(true)), ast.NewBlock(
			ast.NewFunc("f", nil, ast.NewBlock(ast.NewContinue())),
		)),
	)
	if _, err := Resolve(tree, Options{}); !errors.Is(err, ohl.ErrMisplacedControl) {
		t.Errorf("expected continue in function within loop to fail, have %v", err)
	}
	tree = ast.NewBlock(
		ast.NewWhile(ast.NewLiteral(value.NewBool(true)), ast.NewBlock(
			ast.NewIf(ast.NewLiteral(value.NewBool(true)), ast.NewBlock(ast.NewBreak()), nil),
		)),
	)
	if _, err := Resolve(tree, Options{}); err != nil {
		t.Errorf("expected break within loop to resolve, have %v", err)
	}
}

func TestDepthGrowsWithNesting(t *testing.T) {
	tree := ast.NewBlock(
		ast.NewLet("x", lit(1)),
		ast.NewWrite(id("x")),
		ast.NewBlock(
			ast.NewWrite(id("x")),
			ast.NewBlock(ast.NewWrite(id("x"))),
		),
	)
	prog, err := Resolve(tree, Options{})
	if err != nil {
		t.Fatal(err)
	}
	x := refs(prog.Root, "x")
	if len(x) != 3 {
		t.Fatalf("expected 3 references to x, have %d", len(x))
	}
	for i := 1; i < len(x); i++ {
		if x[i].Depth <= x[i-1].Depth {
			t.Errorf("expected depth to grow with nesting, have %v", x)
		}
	}
}

func TestLetInitializerSeesOuterName(t *testing.T) {
	tree := ast.NewBlock(
		ast.NewLet("x", lit(1)),
		ast.NewBlock(ast.NewLet("x", ast.NewBinary(operators.Addition, id("x"), lit(1)))),
	)
	prog, err := Resolve(tree, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if x := refs(prog.Root, "x"); len(x) != 1 || x[0].Depth != 1 {
		t.Errorf("expected initializer to refer to outer x at depth 1, have %v", x)
	}
}
