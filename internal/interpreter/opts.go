package interpreter

import (
	"io"
	"os"

	"github.com/leonardinius/prattlox/internal/loxerrors"
)

type interpreterOpts struct {
	env      *Environment
	stdout   io.Writer
	stderr   io.Writer
	reporter loxerrors.ErrReporter
}

var defaultInterpreterOpts = interpreterOpts{
	stdout: os.Stdout,
	stderr: os.Stderr,
}

type InterpreterOption func(*interpreterOpts)

// WithEnvironment makes the interpreter run against env, e.g. to keep
// bindings across several interpreters in a test.
func WithEnvironment(env *Environment) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.env = env
	}
}

// WithStdout sets the sink of print statements.
func WithStdout(stdout io.Writer) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.stdout = stdout
	}
}

// WithStderr sets where runtime errors are reported unless a reporter is
// given with WithErrorReporter.
func WithStderr(stderr io.Writer) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.stderr = stderr
	}
}

func WithErrorReporter(r loxerrors.ErrReporter) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.reporter = r
	}
}

func newInterpreterOpts(options ...InterpreterOption) *interpreterOpts {
	opts := defaultInterpreterOpts
	for _, opt := range options {
		opt(&opts)
	}

	if opts.env == nil {
		opts.env = NewEnvironment()
	}
	if opts.reporter == nil {
		opts.reporter = loxerrors.NewErrReporter(opts.stderr)
	}

	return &opts
}
