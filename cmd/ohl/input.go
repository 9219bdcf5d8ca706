package main

import (
	"errors"
	"io"

	"github.com/chzyer/readline"
)

// lineEditor is the part of a readline instance that reads input lines.
type lineEditor interface {
	Readline() (string, error)
	SetPrompt(string)
}

// lineReader feeds read statements from the line editor which owns the
// terminal. Every line is requested with its own prompt, and the REPL prompt
// is restored afterwards.
type lineReader struct {
	editor     lineEditor
	prompt     string // prompt while a program reads input
	replPrompt string
	pending    []byte
}

func newLineReader(editor lineEditor, prompt, replPrompt string) *lineReader {
	return &lineReader{editor: editor, prompt: prompt, replPrompt: replPrompt}
}

// Read returns at most one line, including its newline.
func (lr *lineReader) Read(p []byte) (int, error) {
	if len(lr.pending) == 0 {
		lr.editor.SetPrompt(lr.prompt)
		line, err := lr.editor.Readline()
		lr.editor.SetPrompt(lr.replPrompt)
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return 0, io.EOF
		} else if err != nil {
			return 0, err
		}
		lr.pending = append([]byte(line), '\n')
	}
	n := copy(p, lr.pending)
	lr.pending = lr.pending[n:]
	return n, nil
}
