// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, task number out of range).
	UserError = 1

	// ConfigError indicates an unusable configuration.
	ConfigError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)
