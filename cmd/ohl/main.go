package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/npillmayer/ohl/interp"
	"github.com/npillmayer/ohl/resolver"
	"github.com/npillmayer/ohl/runtime"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"
)

const (
	replPrompt = "ohl> "
	readPrompt = "read> "
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gtrace.SyntaxTracer = gologadapter.New()
	initDisplay()

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "read options from a YAML file",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "reject assignments to undeclared names",
		},
		&cli.BoolFlag{
			Name:  "ieee",
			Usage: "let float division by zero produce infinities",
		},
		&cli.IntFlag{
			Name:  "max-depth",
			Usage: "limit the nesting of function calls",
		},
		&cli.StringFlag{
			Name:    "trace",
			Aliases: []string{"t"},
			Usage:   "trace level [Debug|Info|Error]",
		},
	}

	cmd := &cli.Command{
		Name:  "ohl",
		Usage: "Resolve and evaluate programs with statically computed addresses",
		Flags: flags,
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Evaluate a program",
				ArgsUsage: "FILE",
				Action: func(ctx context.Context, c *cli.Command) error {
					intp, source, err := setup(c)
					if err != nil {
						return err
					}
					_, err = intp.RunSource(ctx, source)
					return err
				},
			},
			{
				Name:      "tree",
				Usage:     "Print the resolved syntax tree of a program",
				ArgsUsage: "FILE",
				Action: func(ctx context.Context, c *cli.Command) error {
					intp, source, err := setup(c)
					if err != nil {
						return err
					}
					root, err := intp.Parse(source)
					if err != nil {
						return err
					}
					prog, err := intp.Resolve(root)
					if err != nil {
						return err
					}
					printTree(prog)
					printFrames(prog.Scopes)
					return nil
				},
			},
			{
				Name:  "repl",
				Usage: "Read and evaluate programs interactively",
				Action: func(ctx context.Context, c *cli.Command) error {
					intp, err := newInterpreter(c)
					if err != nil {
						return err
					}
					return repl(ctx, intp)
				},
			},
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatalln(err)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// newInterpreter creates an interpreter from the config file, if any, with
// flags taking precedence.
func newInterpreter(c *cli.Command) (*interp.Interpreter, error) {
	var config interp.Config
	if path := c.String("config"); path != "" {
		var err error
		if config, err = interp.LoadConfig(path); err != nil {
			return nil, err
		}
	}
	if c.IsSet("strict") {
		config.StrictDeclarations = c.Bool("strict")
	}
	if c.IsSet("ieee") {
		config.IEEEDivision = c.Bool("ieee")
	}
	if c.IsSet("max-depth") {
		config.MaxCallDepth = int(c.Int("max-depth"))
	}
	if c.IsSet("trace") {
		config.TraceLevel = c.String("trace")
	}
	intp, err := interp.New(slog.Default(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize interpreter: %w", err)
	}
	return intp, nil
}

// setup creates an interpreter and reads the program file given as the
// single argument.
func setup(c *cli.Command) (*interp.Interpreter, string, error) {
	if c.Args().Len() != 1 {
		return nil, "", fmt.Errorf("must provide exactly one program file as argument")
	}
	path := c.Args().First()
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read program: %w", err)
	}
	intp, err := newInterpreter(c)
	if err != nil {
		return nil, "", err
	}
	tracer().Debugf("read %d bytes from %s", len(source), path)
	return intp, string(source), nil
}

// repl evaluates one program per input line. An erroneous program is
// reported and leaves the interpreter ready for the next line.
func repl(ctx context.Context, intp *interp.Interpreter) error {
	rl, err := readline.New(replPrompt)
	if err != nil {
		return err
	}
	defer rl.Close()
	intp.SetOutput(rl.Stdout())
	intp.SetInput(newLineReader(rl, readPrompt, replPrompt))
	pterm.Info.Println("Welcome to ohl, quit with <ctrl>D")
	for ctx.Err() == nil {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		} else if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return err
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		v, err := intp.RunSource(ctx, line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		pterm.Info.Println(v.String())
	}
	fmt.Println("Good bye!")
	return nil
}

// printTree displays a resolved program as a tree on the terminal.
func printTree(prog *resolver.Program) {
	ll := pterm.LeveledList{}
	resolver.Walk(prog.Root, func(n *resolver.Node, level int) {
		ll = append(ll, pterm.LeveledListItem{
			Level: level,
			Text:  n.Label(),
		})
	})
	tracer().Debugf("|ll| = %d", len(ll))
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

// printFrames lists the cell layout of every static frame.
func printFrames(scopes *runtime.ScopeTree) {
	scopes.Each(func(sf *runtime.StaticFrame) {
		var cells []string
		for _, lt := range []runtime.Lifetime{runtime.Process, runtime.Call} {
			for slot := 0; slot < sf.Size(lt); slot++ {
				sym := sf.SymbolAt(lt, slot)
				cells = append(cells, fmt.Sprintf("%s:%s[%d]", sym.Name, lt, slot))
			}
		}
		pterm.Info.Printf("%s %s\n", sf, strings.Join(cells, " "))
	})
}
