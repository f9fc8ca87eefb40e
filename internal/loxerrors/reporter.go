package loxerrors

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type ErrReporter interface {
	ReportPanic(err error)
	ReportError(err error)
}

type errReporter struct {
	w          io.Writer
	fatalLabel string
	errorLabel string
}

// NewErrReporter returns a reporter writing plain labels.
func NewErrReporter(w io.Writer) *errReporter {
	return &errReporter{w: w, fatalLabel: "FATAL", errorLabel: "ERROR"}
}

// NewColorErrReporter returns a reporter writing ANSI colored labels.
func NewColorErrReporter(w io.Writer) *errReporter {
	fatal := color.New(color.FgHiRed, color.Bold)
	fatal.EnableColor()
	errc := color.New(color.FgRed)
	errc.EnableColor()
	return &errReporter{w: w, fatalLabel: fatal.Sprint("FATAL"), errorLabel: errc.Sprint("ERROR")}
}

// ReportPanic implements ErrReporter.
func (e *errReporter) ReportPanic(err error) {
	for _, err := range Flatten(err) {
		DefaultReportPanic(e.w, e.fatalLabel, err)
	}
}

// ReportError implements ErrReporter.
// Joined errors are reported one per line.
func (e *errReporter) ReportError(err error) {
	for _, err := range Flatten(err) {
		DefaultReportError(e.w, e.errorLabel, err)
	}
}

// DefaultReportPanic is the default implementation of ErrReporter.ReportPanic.
func DefaultReportPanic(w io.Writer, label string, err error) {
	fmt.Fprintf(w, "%s %v\n", label, err)
}

// DefaultReportError is the default implementation of ErrReporter.ReportError.
func DefaultReportError(w io.Writer, label string, err error) {
	fmt.Fprintf(w, "%s %v\n", label, err)
}

var _ ErrReporter = (*errReporter)(nil)
