package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// ErrTaskNumRequired indicates no task number was provided.
var ErrTaskNumRequired = errors.New("task number required")

// ParseTaskNum parses the leading 1-based task number from args and
// returns it with the remaining arguments.
func ParseTaskNum(args []string) (int, []string, error) {
	if len(args) == 0 {
		return 0, nil, ErrTaskNumRequired
	}

	first := args[0]
	if !isAllDigits(first) {
		return 0, nil, fmt.Errorf("invalid task number: %s", first)
	}
	num, err := strconv.Atoi(first)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid task number: %s", first)
	}
	if num < 1 {
		return 0, nil, fmt.Errorf("task number out of range: %d", num)
	}
	return num, args[1:], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
