package cmd

import (
	"errors"
	"fmt"

	"layout-switcher/internal/logger"
)

// errNoCommand makes run print the usage text and exit non-zero.
var errNoCommand = errors.New("no command given")

const listHint = "Use 'list' command to see available layouts."

// cliError is a failure with the exact message shown to the user. hint is printed on the
// following line; usage requests the usage text after it.
type cliError struct {
	msg   string
	hint  string
	usage bool
	err   error
}

func (e *cliError) Error() string { return e.msg }

func (e *cliError) Unwrap() error { return e.err }

// failf wraps err with a user-facing message.
func failf(err error, format string, a ...any) *cliError {
	return &cliError{msg: fmt.Sprintf(format, a...), err: err}
}

// report prints err the way every command reports failures: one red "Error:" line,
// then the optional hint and usage.
func report(err error) {
	if errors.Is(err, errNoCommand) {
		printUsage()
		return
	}

	var ce *cliError
	if !errors.As(err, &ce) {
		logger.Error("Error: %v\n", err)
		return
	}
	logger.Error("Error: %s\n", ce.msg)
	if ce.hint != "" {
		logger.Plain("%s\n", ce.hint)
	}
	if ce.usage {
		printUsage()
	}
}
