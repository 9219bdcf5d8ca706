package sexpr

import (
	"fmt"
	"sync"

	"github.com/npillmayer/ohl/scanner"
	"github.com/npillmayer/ohl/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

// Token types of the non-literal tokens
const (
	tokID      = scanner.Ident
	tokInt     = scanner.Int
	tokFloat   = scanner.Float
	tokChar    = scanner.Char
	tokConst   = -9
	tokOp      = -10
	tokIllegal = -11
)

// tokenIds maps token names to their token types
var tokenIds = map[string]int{
	"ID":      tokID,
	"INT":     tokInt,
	"FLOAT":   tokFloat,
	"CHAR":    tokChar,
	"CONST":   tokConst,
	"OP":      tokOp,
	"ILLEGAL": tokIllegal,
	"(":       '(',
	")":       ')',
}

var (
	lexerOnce sync.Once // monitors one-time creation of the lexer
	lexer     *lexmach.LMAdapter
	lexerErr  error
)

// Lexer returns the lexmachine lexer for s-expressions. The DFA is compiled
// on first use.
func Lexer() (*lexmach.LMAdapter, error) {
	lexerOnce.Do(func() {
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`;[^\n]*\n?`), lexmach.Skip) // skip comments
			lexer.Add([]byte(`\(`), makeToken("("))
			lexer.Add([]byte(`\)`), makeToken(")"))
			lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
			lexer.Add([]byte(`\#(t|f|u)`), makeToken("CONST"))
			lexer.Add([]byte(`\-?[0-9]+\.[0-9]+((e|E)(\+|\-)?[0-9]+)?`), makeToken("FLOAT"))
			lexer.Add([]byte(`\-?[0-9]+(e|E)(\+|\-)?[0-9]+`), makeToken("FLOAT"))
			lexer.Add([]byte(`\-?[0-9]+`), makeToken("INT"))
			lexer.Add([]byte(`'[^']+'`), makeToken("CHAR"))
			lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), makeToken("ID"))
			lexer.Add([]byte(`\+|\-|\*|/|\^|<|>|<=|>=|==|!=|:=|!|&&|\|\|`), makeToken("OP"))
			lexer.Add([]byte(`.`), makeToken("ILLEGAL")) // must stay last
		}
		lexer, lexerErr = lexmach.NewLMAdapter(init, nil, tokenIds)
	})
	return lexer, lexerErr
}

func makeToken(s string) lexmachine.Action {
	id, ok := tokenIds[s]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", s))
	}
	return lexmach.MakeToken(id)
}
