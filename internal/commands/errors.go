package commands

import (
	"errors"
	"fmt"
	"io"

	"todolist/internal/exitcode"
	"todolist/internal/service"
)

// reportError prints err for a command acting on task number num and
// returns the matching exit code.
func reportError(errOut io.Writer, num int, err error) int {
	switch {
	case errors.Is(err, service.ErrIndexOutOfRange):
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", num)
		return exitcode.UserError
	case errors.Is(err, service.ErrFetchInFlight):
		fmt.Fprintln(errOut, "error: a fetch is already in progress")
		return exitcode.UserError
	case errors.Is(err, service.ErrStorage):
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.ConfigError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

// parseTaskNum parses args for commands taking a task number and reports
// parse errors. ok is false when the caller should return code.
func parseTaskNum(args []string, errOut io.Writer) (num int, rest []string, code int, ok bool) {
	num, rest, err := ParseTaskNum(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 0, nil, exitcode.UserError, false
	}
	return num, rest, exitcode.Success, true
}
