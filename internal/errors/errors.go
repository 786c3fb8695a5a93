// Package errors provides standardized error types for the vhost CLI tool.
//
// The errors package defines the failure taxonomy of a synchronization run so
// that callers can decide, per unit of work, whether a failure is fatal, a
// warning or a deliberate no-op.
//
// # Error Types
//
// VHostError is the primary error type, containing:
//   - Code: Categorizes the error (CONFIG, IO, POLICY, etc.)
//   - Message: Human-readable error description
//   - Path: The file or directory involved (if applicable)
//   - Err: The underlying wrapped error (if any)
//
// # Sentinel Errors
//
// Each category has a pre-defined sentinel error:
//
//	errors.ErrConfigInvalid // required configuration missing or malformed
//	errors.ErrIO            // file unreadable/unwritable, directory missing
//	errors.ErrPolicyBlocked // overwrite refused because force is off
//
// # Usage
//
//	// Main config file could not be read
//	return errors.IO(path, err)
//
//	// Platform section missing
//	return errors.Config("platform \"linux\" is not configured")
//
//	// Existing content differs and force is off
//	return errors.PolicyBlocked(path)
//
// # Error Checking
//
// Use errors.Is for sentinel error comparison:
//
//	if errors.Is(err, errors.ErrIO) {
//	    // report and continue with the next file
//	}
//
// Use errors.As for type assertion:
//
//	var vErr *errors.VHostError
//	if errors.As(err, &vErr) {
//	    fmt.Printf("Error code: %s, Path: %s\n", vErr.Code, vErr.Path)
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeConfig     ErrorCode = "CONFIG"     // Required input missing or malformed
	ErrCodeIO         ErrorCode = "IO"         // File or directory access failed
	ErrCodePolicy     ErrorCode = "POLICY"     // Overwrite refused by policy
	ErrCodeValidation ErrorCode = "VALIDATION" // Input validation failed
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"  // Resource not found
	ErrCodeService    ErrorCode = "SERVICE"    // Web server test/reload failed
	ErrCodeInternal   ErrorCode = "INTERNAL"   // Internal/unexpected error
)

// VHostError represents a structured error with context about the operation.
type VHostError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Path    string    // File path (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *VHostError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Path != "" && e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, msg, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain traversal.
func (e *VHostError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *VHostError) Is(target error) bool {
	t, ok := target.(*VHostError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common error scenarios.
// Use these with errors.Is() for error checking.
var (
	// ErrConfigInvalid indicates the configuration is missing or malformed.
	ErrConfigInvalid = &VHostError{Code: ErrCodeConfig, Message: "invalid configuration"}

	// ErrIO indicates a file could not be read or written.
	ErrIO = &VHostError{Code: ErrCodeIO, Message: "i/o failure"}

	// ErrPolicyBlocked indicates an existing target was left untouched because force is off.
	ErrPolicyBlocked = &VHostError{Code: ErrCodePolicy, Message: "exists, use --force to overwrite"}

	// ErrInvalidSite indicates a site record failed validation.
	ErrInvalidSite = &VHostError{Code: ErrCodeValidation, Message: "invalid site"}

	// ErrSiteNotFound indicates the requested site is not configured.
	ErrSiteNotFound = &VHostError{Code: ErrCodeNotFound, Message: "site not found"}

	// ErrService indicates a web server test or reload failed.
	ErrService = &VHostError{Code: ErrCodeService, Message: "service command failed"}
)

// Config creates a configuration error with a custom message.
func Config(msg string) error {
	return &VHostError{
		Code:    ErrCodeConfig,
		Message: msg,
	}
}

// IO creates an I/O error for path wrapping the underlying cause.
func IO(path string, err error) error {
	return &VHostError{
		Code:    ErrCodeIO,
		Message: "i/o failure",
		Path:    path,
		Err:     err,
	}
}

// PolicyBlocked creates an error for a target that exists and force is off.
func PolicyBlocked(path string) error {
	return &VHostError{
		Code:    ErrCodePolicy,
		Message: "exists with different content, use --force to overwrite",
		Path:    path,
	}
}

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &VHostError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// NotFound creates an error for a site that is not configured.
func NotFound(name string) error {
	return &VHostError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("site %s not found", name),
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &VHostError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WrapPath creates an error with path context and underlying error.
func WrapPath(code ErrorCode, path string, msg string, err error) error {
	return &VHostError{
		Code:    code,
		Message: msg,
		Path:    path,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
