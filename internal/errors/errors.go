// Package errors provides structured error handling for the pact-cli
// extension lifecycle. It includes categorized errors with actionable
// remediation guidance.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of lifecycle failure that occurred.
type Category int

const (
	// UnsupportedPlatform errors occur before any I/O when the host
	// os/arch pair is outside the supported matrix.
	UnsupportedPlatform Category = iota
	// Network errors occur when a request failed or timed out.
	Network
	// RemoteStatus errors carry a non-success HTTP status from a remote
	// artifact or version endpoint.
	RemoteStatus
	// VersionResolution errors occur when the expected field is missing
	// from release metadata.
	VersionResolution
	// ArchiveExtraction errors occur when an archive cannot be unpacked.
	ArchiveExtraction
	// Filesystem errors cover permission, missing directory, and alias
	// creation failures.
	Filesystem
	// NotInstalled errors occur when invocation or update is requested
	// against an uninstalled extension.
	NotInstalled
	// NotFound errors occur when a name is unknown to both the registry
	// and the PATH naming convention.
	NotFound
)

// String returns a human-readable name for the error category.
func (c Category) String() string {
	switch c {
	case UnsupportedPlatform:
		return "Unsupported Platform"
	case Network:
		return "Network Error"
	case RemoteStatus:
		return "Remote Status Error"
	case VersionResolution:
		return "Version Resolution Error"
	case ArchiveExtraction:
		return "Archive Extraction Error"
	case Filesystem:
		return "Filesystem Error"
	case NotInstalled:
		return "Not Installed"
	case NotFound:
		return "Not Found"
	default:
		return "Error"
	}
}

// CLIError is a structured error with category and remediation guidance.
type CLIError struct {
	// Category is the type of failure (Network, NotInstalled, etc.)
	Category Category
	// Message is a human-readable description of which step failed.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Usage shows the correct command syntax (optional).
	Usage string
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// New creates a CLIError with the given category, message, and remediation steps.
func New(category Category, message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    category,
		Message:     message,
		Remediation: remediation,
	}
}

// Newf creates a CLIError with a formatted message and no remediation.
func Newf(category Category, format string, args ...any) *CLIError {
	return &CLIError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// WithRemediation appends remediation steps and returns the error.
func (e *CLIError) WithRemediation(steps ...string) *CLIError {
	e.Remediation = append(e.Remediation, steps...)
	return e
}

// Wrap wraps an existing error with a CLIError, preserving the original message.
func Wrap(err error, category Category, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     err.Error(),
		Remediation: remediation,
	}
}

// WrapWithMessage wraps an error with a custom message and category.
func WrapWithMessage(err error, category Category, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
	}
}

// IsCategory reports whether err is a CLIError of the given category.
func IsCategory(err error, category Category) bool {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr.Category == category
	}
	return false
}

// AsCLIError attempts to convert an error to a CLIError.
// Returns nil if the error is not a CLIError.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
