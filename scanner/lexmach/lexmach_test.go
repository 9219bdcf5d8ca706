package lexmach

import (
	"strings"
	"testing"

	"github.com/npillmayer/ohl/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"(1 12)",
	"Hello ; commented",
	"(x 22 333)",
}

var tokenCounts = []int{1, 4, 1, 5}

var literals = []string{"(", ")"}

var tokenIds = map[string]int{
	"ID":  scanner.Ident,
	"NUM": scanner.Int,
	"(":   '(',
	")":   ')',
}

func lexer(t *testing.T) *LMAdapter {
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`;[^\n]*\n?`), Skip)
		lexer.Add([]byte(`([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*`), MakeToken(tokenIds["ID"]))
		lexer.Add([]byte(`[0-9]+`), MakeToken(tokenIds["NUM"]))
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	return LM
}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ohl.scanner")
	defer teardown()
	//
	LM := lexer(t)
	for i, input := range inputStrings {
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != scanner.EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
}

func TestSpans(t *testing.T) {
	LM := lexer(t)
	sc, _ := LM.Scanner("(abc 42)")
	sc.NextToken()
	tok := sc.NextToken()
	if tok.Lexeme() != "abc" || tok.Span().From() != 1 || tok.Span().To() != 4 {
		t.Errorf("expected abc at (1…4), have %q at %s", tok.Lexeme(), tok.Span())
	}
}

func TestSpansAcrossLines(t *testing.T) {
	LM := lexer(t)
	sc, _ := LM.Scanner("(a\n  bc)")
	var spans []string
	for tok := sc.NextToken(); tok.TokType() != scanner.EOF; tok = sc.NextToken() {
		spans = append(spans, tok.Span().String())
	}
	expected := []string{"(0…1)", "(1…2)", "(5…7)", "(7…8)"}
	if strings.Join(spans, " ") != strings.Join(expected, " ") {
		t.Errorf("expected spans %v, have %v", expected, spans)
	}
	if eof := sc.NextToken(); eof.Span().From() != 8 || eof.Span().Len() != 0 {
		t.Errorf("expected EOF at the end of input, have %s", eof.Span())
	}
}
