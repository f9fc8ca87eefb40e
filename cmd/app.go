package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/leonardinius/prattlox/internal/interpreter"
	"github.com/leonardinius/prattlox/internal/loxerrors"
	"github.com/leonardinius/prattlox/internal/parser"
	"github.com/leonardinius/prattlox/internal/scanner"
	"github.com/leonardinius/prattlox/internal/token"
)

// Exit codes follow sysexits.h.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitNoInput  = 66
	ExitSoftware = 70
	ExitIOErr    = 74
)

// Emit stages: run executes, the others print an intermediate form.
const (
	EmitRun    = "run"
	EmitTokens = "tokens"
	EmitAST    = "ast"
)

var (
	astFlag = cli.BoolFlag{
		Name:  "ast",
		Usage: "print the syntax tree as YAML instead of executing, same as --emit ast",
	}
	emitFlag = cli.StringFlag{
		Name:  "emit",
		Usage: "stage to stop at: run, tokens or ast",
		Value: EmitRun,
	}
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
)

// LineReader feeds the REPL. *readline.Instance is one.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

type LoxApp struct {
	stdin      io.ReadCloser
	stdout     io.Writer
	stderr     io.Writer
	lineReader LineReader

	config      Config
	emit        string
	reporter    loxerrors.ErrReporter
	interpreter interpreter.Interpreter
}

type AppOption func(*LoxApp)

func WithStdin(stdin io.ReadCloser) AppOption {
	return func(app *LoxApp) {
		app.stdin = stdin
	}
}

func WithStdout(stdout io.Writer) AppOption {
	return func(app *LoxApp) {
		app.stdout = stdout
	}
}

func WithStderr(stderr io.Writer) AppOption {
	return func(app *LoxApp) {
		app.stderr = stderr
	}
}

// WithLineReader replaces the readline prompt of the REPL.
func WithLineReader(r LineReader) AppOption {
	return func(app *LoxApp) {
		app.lineReader = r
	}
}

func NewLoxApp(options ...AppOption) *LoxApp {
	app := &LoxApp{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		config: DefaultConfig,
		emit:   EmitRun,
	}
	for _, opt := range options {
		opt(app)
	}
	return app
}

// Main runs the command line and returns the process exit code.
func (app *LoxApp) Main(args []string) int {
	exitCode := ExitOK

	cliApp := cli.NewApp()
	cliApp.Name = "prattlox"
	cliApp.Usage = "run a script, or start a REPL without one"
	cliApp.ArgsUsage = "[script]"
	cliApp.HideVersion = true
	cliApp.Writer = app.stdout
	cliApp.ErrWriter = app.stderr
	cliApp.Flags = []cli.Flag{astFlag, emitFlag, configFileFlag}
	cliApp.Action = func(ctx *cli.Context) error {
		exitCode = app.action(ctx)
		return nil
	}

	if err := cliApp.Run(append([]string{cliApp.Name}, args...)); err != nil {
		app.reporterOrDefault().ReportError(err)
		return ExitUsage
	}

	return exitCode
}

func (app *LoxApp) action(ctx *cli.Context) int {
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &app.config); err != nil {
			app.reporterOrDefault().ReportError(err)
			return ExitUsage
		}
	}

	app.emit = ctx.String(emitFlag.Name)
	if ctx.Bool(astFlag.Name) {
		app.emit = EmitAST
	}
	switch app.emit {
	case EmitRun, EmitTokens, EmitAST:
	default:
		app.reporterOrDefault().ReportError(fmt.Errorf("unknown emit stage %q", app.emit))
		return ExitUsage
	}

	app.reporter = app.newReporter()
	app.interpreter = interpreter.NewInterpreter(
		interpreter.WithStdout(app.stdout),
		interpreter.WithStderr(app.stderr),
		interpreter.WithErrorReporter(app.reporter),
	)

	switch ctx.NArg() {
	case 0:
		return app.runPrompt()
	case 1:
		return app.runFile(ctx.Args().First())
	}

	app.reporter.ReportError(fmt.Errorf("usage: %s [--ast] [--emit stage] [--config file] %s", ctx.App.Name, ctx.App.ArgsUsage))
	return ExitUsage
}

// newReporter colors labels when stderr is a terminal, or always/never as
// configured.
func (app *LoxApp) newReporter() loxerrors.ErrReporter {
	f, isFile := app.stderr.(*os.File)
	terminal := isFile && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))

	switch {
	case app.config.Color == ColorNever:
		return loxerrors.NewErrReporter(app.stderr)
	case app.config.Color == ColorAlways && !terminal:
		return loxerrors.NewColorErrReporter(app.stderr)
	case terminal:
		return loxerrors.NewColorErrReporter(colorable.NewColorable(f))
	}
	return loxerrors.NewErrReporter(app.stderr)
}

func (app *LoxApp) reporterOrDefault() loxerrors.ErrReporter {
	if app.reporter != nil {
		return app.reporter
	}
	return loxerrors.NewErrReporter(app.stderr)
}

func (app *LoxApp) runFile(scriptPath string) int {
	bytes, err := os.ReadFile(scriptPath)
	if err != nil {
		app.reporter.ReportError(err)
		return ExitNoInput
	}

	if _, _, err = app.run(string(bytes)); err != nil {
		app.report(err)
		return exitCodeOf(err)
	}
	return ExitOK
}

func (app *LoxApp) runPrompt() int {
	rl := app.lineReader
	if rl == nil {
		var err error
		rl, err = readline.NewEx(&readline.Config{
			Prompt:      app.config.Prompt,
			HistoryFile: app.config.HistoryFile,
			Stdin:       app.stdin,
			Stdout:      app.stdout,
			Stderr:      app.stderr,
		})
		if err != nil {
			app.reporter.ReportError(err)
			return ExitIOErr
		}
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) {
			return ExitOK
		}
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			app.reporter.ReportError(err)
			return ExitIOErr
		}

		app.runLine(line)
	}
}

// runLine runs one REPL line. Errors are reported and the session goes on.
func (app *LoxApp) runLine(line string) {
	switch line = strings.TrimSpace(line); line {
	case "":
		return
	case ":env":
		_, _ = fmt.Fprintln(app.stdout, app.interpreter.Environment())
		return
	}

	value, echo, err := app.run(line)
	if err != nil {
		app.report(err)
		return
	}
	if echo {
		_, _ = fmt.Fprintln(app.stdout, interpreter.Inspect(value))
	}
}

// run scans, parses and executes source, or stops at the emit stage. echo
// is set when source ends with an expression statement whose value is worth
// showing in the REPL.
func (app *LoxApp) run(source string) (value interpreter.Value, echo bool, err error) {
	tokens, err := scanner.NewScanner(source).Scan()
	if err != nil {
		return nil, false, err
	}

	if app.emit == EmitTokens {
		app.printTokens(tokens)
		return nil, false, nil
	}

	stmts, err := parser.NewParser(tokens).Parse()
	if err != nil {
		return nil, false, err
	}

	if app.emit == EmitAST {
		return nil, false, parser.EncodeYAML(app.stdout, stmts)
	}

	value, err = app.interpreter.Interpret(stmts)
	if err != nil {
		return nil, false, err
	}

	if len(stmts) > 0 {
		_, echo = stmts[len(stmts)-1].(*parser.StmtExpression)
	}
	return value, echo, nil
}

func (app *LoxApp) printTokens(tokens []token.Token) {
	table := tablewriter.NewWriter(app.stdout)
	table.SetHeader([]string{"line", "type", "lexeme", "literal"})
	table.SetAutoFormatHeaders(false)

	for _, tok := range tokens {
		literal := ""
		if tok.Literal != nil {
			literal = fmt.Sprint(tok.Literal)
		}
		table.Append([]string{strconv.Itoa(tok.Line), tok.Type.String(), tok.Lexeme, literal})
	}

	table.Render()
}

// report writes scan and parse errors. Runtime errors were already reported
// by the interpreter.
func (app *LoxApp) report(err error) {
	var rerr *loxerrors.RuntimeError
	if errors.As(err, &rerr) {
		return
	}
	app.reporter.ReportError(err)
}

func exitCodeOf(err error) int {
	var (
		serr *loxerrors.ScannerError
		rerr *loxerrors.RuntimeError
	)

	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &serr), errors.Is(err, loxerrors.ErrParseError):
		return ExitDataErr
	case errors.As(err, &rerr):
		return ExitSoftware
	}
	return ExitIOErr
}
