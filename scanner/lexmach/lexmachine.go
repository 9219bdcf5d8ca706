package lexmach

import (
	"strings"

	"github.com/npillmayer/ohl"
	"github.com/npillmayer/ohl/scanner"
	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'ohl.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("ohl.scanner")
}

// LMAdapter holds a compiled lexmachine DFA. One adapter serves any number
// of scanners.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. init adds the patterns of
// the token classes. literals ('(', ';', …) are added after them and match
// themselves, with their token types taken from tokenIds.
//
// Patterns added first win if two patterns match the same input, so a
// catch-all pattern in init hides the literals. Such lexers add their
// literals within init and pass nil.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, tokenIds map[string]int) (*LMAdapter, error) {
	lexer := lexmachine.NewLexer()
	init(lexer)
	for _, lit := range literals {
		pattern := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		lexer.Add([]byte(pattern), MakeToken(tokenIds[lit]))
	}
	if err := lexer.Compile(); err != nil {
		tracer().Errorf("cannot compile DFA: %v", err)
		return nil, err
	}
	return &LMAdapter{Lexer: lexer}, nil
}

// Scanner creates a tokenizer for an input string.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, end: uint64(len(input)), Error: scanner.LogError}, nil
}

// LMScanner reads tokens from a lexmachine scanner.
type LMScanner struct {
	scanner *lexmachine.Scanner
	end     uint64 // length of the input in bytes
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner. nil restores the
// default, which logs errors.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = scanner.LogError
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface. Input no pattern matches is
// reported to the error handler and skipped.
//
// At the end of input, NextToken returns EOF tokens with an empty span
// behind the last byte.
func (lms *LMScanner) NextToken() ohl.Token {
	for {
		tok, err, eof := lms.scanner.Next()
		switch {
		case eof:
			return scanner.MakeDefaultToken(scanner.EOF, "", ohl.Span{lms.end, lms.end})
		case err != nil:
			lms.Error(err)
			if ui, is := err.(*machines.UnconsumedInput); is {
				lms.scanner.TC = ui.FailTC
			}
			continue
		}
		token := tok.(*lexmachine.Token)
		tracer().Debugf("token %d = %q", token.Type, token.Lexeme)
		return scanner.MakeDefaultToken(ohl.TokType(token.Type), string(token.Lexeme), spanOf(token))
	}
}

// spanOf returns the byte offsets a token covers. lexmachine counts lines and
// columns as well, but columns restart on every line, while spans are
// positions in the whole input. The text counter TC is the byte offset of the
// token's first byte.
func spanOf(token *lexmachine.Token) ohl.Span {
	from := uint64(token.TC)
	return ohl.Span{from, from + uint64(len(token.Lexeme))}
}

// ---------------------------------------------------------------------------

// Skip is the action for input between tokens (whitespace, comments). An
// action returning no token makes lexmachine continue with the next match,
// so skipped input never reaches the parser.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is the action for a token class: it wraps a match into a token
// of type id.
func MakeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
