package cli

// Exit codes for the pact-cli binary.
// Relayed extensions override these with the child process's own code.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a lifecycle operation failed
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 2
)

// ExitError carries a specific process exit code up to Execute without
// printing anything further; the message has already been shown.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return ""
}

// NewExitError returns an error that makes Execute exit with code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}
