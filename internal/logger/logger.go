package logger

import (
	"fmt"
	"io"

	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Define colorized printing functions for the different message levels using fatih/color.
// These are package-level variables holding functions that behave like fmt.Printf,
// but with text colored appropriately for the level. Every message the switcher shows
// the user, errors included, goes to the same writer (standard output by default).

// out is the destination of every printer. It starts as the colorable stdout of fatih/color.
var out io.Writer = color.Output

// Info prints informational and success messages in green.
var Info = printer(color.New(color.FgGreen))

// Warn prints non-fatal problems in bright magenta.
var Warn = printer(color.New(color.FgHiMagenta))

// Error prints failures in red.
var Error = printer(color.New(color.FgRed))

// Plain prints uncolored text. Listings and usage go through it.
var Plain = func(format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}

// Debug prints cyan diagnostics when enabled, otherwise it is a no-op.
// It is assigned during Init based on the --debug flag.
var Debug = func(format string, a ...any) {}

// Init enables or disables debug output.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = printer(color.New(color.FgCyan))
	} else {
		Debug = func(format string, a ...any) {}
	}
}

// SetOutput redirects all printers to w. Passing nil restores standard output.
func SetOutput(w io.Writer) {
	if w == nil {
		w = color.Output
	}
	out = w
}

// printer binds a color to the current output writer. The writer is read on every
// call so SetOutput takes effect for printers created earlier.
func printer(c *color.Color) func(format string, a ...any) {
	fprintf := c.FprintfFunc()
	return func(format string, a ...any) {
		fprintf(out, format, a...)
	}
}
