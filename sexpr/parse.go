package sexpr

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/npillmayer/ohl"
	"github.com/npillmayer/ohl/ast"
	"github.com/npillmayer/ohl/operators"
	"github.com/npillmayer/ohl/scanner"
	"github.com/npillmayer/ohl/value"
)

// ErrSyntax is the category of errors for malformed input.
var ErrSyntax = errors.New("syntax error")

// Parse reads a program. The resulting tree has been validated with
// ast.Check.
func Parse(input string) (*ast.Node, error) {
	lm, err := Lexer()
	if err != nil {
		return nil, err
	}
	scan, err := lm.Scanner(input)
	if err != nil {
		return nil, err
	}
	p := &parser{scan: scan}
	scan.SetErrorHandler(func(e error) {
		if p.err == nil {
			p.err = fmt.Errorf("%w: %v", ErrSyntax, e)
		}
	})
	p.advance()
	var forms []*ast.Node
	for p.tok.TokType() != scanner.EOF && p.err == nil {
		forms = append(forms, p.form())
	}
	if p.err != nil {
		return nil, p.err
	}
	var root *ast.Node
	if len(forms) == 1 && forms[0].Kind == ast.Block {
		root = forms[0]
	} else {
		root = ast.NewBlock(forms...)
		if len(forms) > 0 {
			root.Span = forms[0].Span.Extend(forms[len(forms)-1].Span)
		}
	}
	tracer().Debugf("parsed %s", root)
	if err := ast.Check(root); err != nil {
		return nil, err
	}
	return root, nil
}

// parser is a recursive-descent reader. After the first error every method
// returns placeholder nodes and the error is reported by Parse.
type parser struct {
	scan interface{ NextToken() ohl.Token }
	tok  ohl.Token // lookahead
	err  error
}

func (p *parser) advance() {
	p.tok = p.scan.NextToken()
}

func (p *parser) fail(span ohl.Span, format string, args ...interface{}) *ast.Node {
	if p.err == nil {
		p.err = ohl.WrapError(span, ohl.Errorf(ErrSyntax, format, args...))
	}
	return ast.NewLiteral(value.Token())
}

// expect consumes a token of type t.
func (p *parser) expect(t int, what string) (ohl.Token, bool) {
	tok := p.tok
	if p.err != nil {
		return tok, false
	}
	if int(tok.TokType()) != t {
		p.fail(tok.Span(), "expected %s, have %s", what, describe(tok))
		return tok, false
	}
	p.advance()
	return tok, true
}

func describe(tok ohl.Token) string {
	if tok.TokType() == scanner.EOF {
		return "end of input"
	}
	return strconv.Quote(tok.Lexeme())
}

// form reads a single form.
func (p *parser) form() *ast.Node {
	if p.err != nil {
		return ast.NewLiteral(value.Token())
	}
	tok := p.tok
	span := tok.Span()
	switch tok.TokType() {
	case '(':
		p.advance()
		return p.list(span)
	case tokID:
		p.advance()
		return ast.NewIdent(tok.Lexeme()).At(span)
	case tokInt:
		p.advance()
		i, err := strconv.ParseInt(tok.Lexeme(), 10, 64)
		if err != nil {
			return p.fail(span, "integer %s out of range", tok.Lexeme())
		}
		return ast.NewLiteral(value.NewInt(i)).At(span)
	case tokFloat:
		p.advance()
		f, err := strconv.ParseFloat(tok.Lexeme(), 64)
		if err != nil {
			return p.fail(span, "malformed float %s", tok.Lexeme())
		}
		return ast.NewLiteral(value.NewFloat(f)).At(span)
	case tokChar:
		p.advance()
		s := tok.Lexeme()
		s = s[1 : len(s)-1]
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError || size != len(s) {
			return p.fail(span, "%s is not a single character", tok.Lexeme())
		}
		return ast.NewLiteral(value.NewChar(r)).At(span)
	case tokConst:
		p.advance()
		var v value.Value
		switch tok.Lexeme() {
		case "#t":
			v = value.NewBool(true)
		case "#f":
			v = value.NewBool(false)
		}
		return ast.NewLiteral(v).At(span)
	}
	return p.fail(span, "unexpected %s", describe(tok))
}

// list reads a parenthesized form, after the opening parenthesis.
func (p *parser) list(open ohl.Span) *ast.Node {
	head := p.tok
	var n *ast.Node
	switch {
	case head.TokType() == tokOp && head.Lexeme() == ":=":
		p.advance()
		n = p.binding(ast.Assign)
	case head.TokType() == tokOp:
		p.advance()
		n = p.operation(head)
	case head.TokType() == tokID:
		p.advance()
		n = p.keyword(head)
	default:
		return p.fail(head.Span(), "expected keyword or operator, have %s", describe(head))
	}
	closing, _ := p.expect(')', "')'")
	if p.err != nil {
		return n
	}
	return n.At(open.Extend(closing.Span()))
}

func (p *parser) keyword(head ohl.Token) *ast.Node {
	switch head.Lexeme() {
	case "block":
		return ast.NewBlock(p.forms()...)
	case "func":
		return p.function()
	case "if":
		cond := p.form()
		then := p.block()
		var els *ast.Node
		if p.tok.TokType() != ')' {
			els = p.block()
		}
		return ast.NewIf(cond, then, els)
	case "while":
		cond := p.form()
		return ast.NewWhile(cond, p.block())
	case "let":
		return p.binding(ast.Let)
	case "var":
		return p.binding(ast.Var)
	case "set":
		return p.binding(ast.Assign)
	case "read":
		return ast.NewRead(p.name())
	case "write":
		return ast.NewWrite(p.form())
	case "return":
		if p.tok.TokType() == ')' {
			return ast.NewReturn(nil)
		}
		return ast.NewReturn(p.form())
	case "break":
		return ast.NewBreak()
	case "continue":
		return ast.NewContinue()
	case "call":
		callee := p.form()
		return ast.NewCall(callee, p.forms()...)
	case "cast":
		tok, _ := p.expect(tokID, "type name")
		k, err := value.ParseKind(tok.Lexeme())
		if err != nil && p.err == nil {
			return p.fail(tok.Span(), "%v", err)
		}
		return ast.NewCast(k, p.form())
	case "and", "or", "not":
		return p.operation(head)
	}
	return p.fail(head.Span(), "unknown keyword %s", describe(head))
}

// forms reads forms up to the closing parenthesis.
func (p *parser) forms() []*ast.Node {
	var forms []*ast.Node
	for p.err == nil && p.tok.TokType() != ')' && p.tok.TokType() != scanner.EOF {
		forms = append(forms, p.form())
	}
	return forms
}

func (p *parser) block() *ast.Node {
	span := p.tok.Span()
	b := p.form()
	if p.err == nil && b.Kind != ast.Block {
		return p.fail(span, "expected block, have %s", b.Kind)
	}
	return b
}

func (p *parser) name() string {
	tok, _ := p.expect(tokID, "name")
	return tok.Lexeme()
}

func (p *parser) binding(kind ast.Kind) *ast.Node {
	nameSpan := p.tok.Span()
	name := p.name()
	expr := p.form()
	n := &ast.Node{Kind: kind, Children: []*ast.Node{ast.NewIdent(name).At(nameSpan), expr}}
	return n
}

func (p *parser) function() *ast.Node {
	name := p.name()
	var params []string
	if _, ok := p.expect('(', "parameter list"); ok {
		for p.err == nil && p.tok.TokType() == tokID {
			params = append(params, p.name())
		}
		p.expect(')', "')' after parameters")
	}
	return ast.NewFunc(name, params, p.block())
}

// operation reads the operands of an operator. The number of operands
// decides between unary and binary operators.
func (p *parser) operation(head ohl.Token) *ast.Node {
	op, err := operators.Parse(head.Lexeme())
	if err != nil {
		return p.fail(head.Span(), "%v", err)
	}
	operands := p.forms()
	switch {
	case len(operands) == 1 && op.IsUnary():
		return ast.NewUnary(op, operands[0])
	case len(operands) == 2 && op.IsBinary():
		return ast.NewBinary(op, operands[0], operands[1])
	}
	if p.err != nil {
		return ast.NewLiteral(value.Token())
	}
	return p.fail(head.Span(), "operator %s cannot take %d operands", op, len(operands))
}
