package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/npillmayer/ohl/interp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// scriptedEditor replays lines and records the prompts it has been given.
type scriptedEditor struct {
	lines   []string
	prompt  string
	prompts []string
}

func (ed *scriptedEditor) Readline() (string, error) {
	ed.prompts = append(ed.prompts, ed.prompt)
	if len(ed.lines) == 0 {
		return "", io.EOF
	}
	line := ed.lines[0]
	ed.lines = ed.lines[1:]
	return line, nil
}

func (ed *scriptedEditor) SetPrompt(p string) {
	ed.prompt = p
}

func TestReadThroughLineEditor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ohl.cli")
	defer teardown()
	//
	ed := &scriptedEditor{lines: []string{"2", "3.5"}, prompt: replPrompt}
	intp, err := interp.New(slogt.New(t), interp.Config{})
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	intp.SetOutput(&out)
	intp.SetInput(newLineReader(ed, readPrompt, replPrompt))
	if _, err = intp.RunSource(context.Background(), "(read a) (write a)"); err != nil {
		t.Fatal(err)
	}
	if _, err = intp.RunSource(context.Background(), "(read b) (write (* b 2))"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "2\n7\n" {
		t.Errorf("expected lines of the editor to be read, have %q", out.String())
	}
	if len(ed.prompts) != 2 || ed.prompts[0] != readPrompt || ed.prompts[1] != readPrompt {
		t.Errorf("expected input to be requested with prompt %q, have %q", readPrompt, ed.prompts)
	}
	if ed.prompt != replPrompt {
		t.Errorf("expected REPL prompt to be restored, is %q", ed.prompt)
	}
	_, err = intp.RunSource(context.Background(), "(read c)")
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected read after end of input to fail with EOF, have %v", err)
	}
}
