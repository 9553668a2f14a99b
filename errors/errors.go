// Package errors defines the structured error types returned by the crucible
// container. All failures are reported as values; nothing in the container
// panics except the documented Must helpers.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// ERROR CODES
// =============================================================================

// Error code constants for structured errors
const (
	CodeDuplicateRegistration  = "DUPLICATE_REGISTRATION"
	CodeUnregisteredDependency = "UNREGISTERED_DEPENDENCY"
	CodeCyclicDependency       = "CYCLIC_DEPENDENCY"
	CodeFactoryFailed          = "FACTORY_FAILED"
	CodeScopeRequired          = "SCOPE_REQUIRED"
	CodeLifecycleError         = "LIFECYCLE_ERROR"
	CodeHealthCheckFailed      = "HEALTH_CHECK_FAILED"
)

// =============================================================================
// CONTAINER ERRORS
// =============================================================================

// Standard container errors
var (
	ErrInvalidFactory   = errors.New("factory cannot be nil")
	ErrEmptyCapability  = errors.New("capability cannot be empty")
	ErrTypeMismatch     = errors.New("capability type mismatch")
	ErrContainerStarted = errors.New("container already started")
	ErrContainerStopped = errors.New("container already stopped")
	ErrScopeEnded       = errors.New("scope already ended")
)

// ResolutionError wraps errors that occur while operating on a registration
type ResolutionError struct {
	Capability string
	Operation  string
	Err        error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("capability %s: %s: %v", e.Capability, e.Operation, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is interface for ResolutionError
func (e *ResolutionError) Is(target error) bool {
	t, ok := target.(*ResolutionError)
	if !ok {
		return false
	}
	return (e.Capability == "" || t.Capability == "" || e.Capability == t.Capability) &&
		(e.Operation == "" || t.Operation == "" || e.Operation == t.Operation)
}

// NewResolutionError creates a new resolution error
func NewResolutionError(capability, operation string, err error) *ResolutionError {
	return &ResolutionError{
		Capability: capability,
		Operation:  operation,
		Err:        err,
	}
}

// =============================================================================
// CRUCIBLE ERROR (STRUCTURED ERROR)
// =============================================================================

// CrucibleError represents a structured error with code and context
type CrucibleError struct {
	Code      string
	Message   string
	Cause     error
	Timestamp time.Time
	Context   map[string]interface{}
}

func (e *CrucibleError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *CrucibleError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is interface for CrucibleError
// Compares by error code, allowing matching against sentinel errors
func (e *CrucibleError) Is(target error) bool {
	t, ok := target.(*CrucibleError)
	if !ok {
		return false
	}
	// Match if codes are the same (and not empty)
	return e.Code != "" && e.Code == t.Code
}

// WithContext adds context to the error
func (e *CrucibleError) WithContext(key string, value interface{}) *CrucibleError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// ErrDuplicateRegistration reports a second registration for a key that
// already holds a live binding. Recoverable by choosing another qualifier.
func ErrDuplicateRegistration(key string) *CrucibleError {
	return &CrucibleError{
		Code:      CodeDuplicateRegistration,
		Message:   "capability '" + key + "' already registered",
		Cause:     nil,
		Timestamp: time.Now(),
		Context:   map[string]interface{}{"key": key},
	}
}

// ErrUnregisteredDependency reports a resolution request for a key that has
// no binding. The missing key is always named in the message.
func ErrUnregisteredDependency(key string) *CrucibleError {
	return &CrucibleError{
		Code:      CodeUnregisteredDependency,
		Message:   "capability '" + key + "' not registered",
		Cause:     nil,
		Timestamp: time.Now(),
		Context:   map[string]interface{}{"key": key},
	}
}

// ErrCyclicDependency reports a resolution or validation cycle. The chain
// holds every key on the cycle, in resolution order, ending with the repeat.
func ErrCyclicDependency(chain []string) *CrucibleError {
	return &CrucibleError{
		Code:      CodeCyclicDependency,
		Message:   "cyclic dependency detected: " + strings.Join(chain, " -> "),
		Cause:     nil,
		Timestamp: time.Now(),
		Context:   map[string]interface{}{"chain": chain},
	}
}

// ErrFactoryFailed wraps an error raised by a factory's own construction
// logic. The cause is preserved unchanged and reachable through Unwrap.
func ErrFactoryFailed(key string, cause error) *CrucibleError {
	return &CrucibleError{
		Code:      CodeFactoryFailed,
		Message:   "factory for capability '" + key + "' failed",
		Cause:     cause,
		Timestamp: time.Now(),
		Context:   map[string]interface{}{"key": key},
	}
}

// ErrScopeRequired reports a container-level resolution of a scoped binding.
func ErrScopeRequired(key string) *CrucibleError {
	return &CrucibleError{
		Code:      CodeScopeRequired,
		Message:   "capability '" + key + "' is scoped and must be resolved from a scope",
		Cause:     nil,
		Timestamp: time.Now(),
		Context:   map[string]interface{}{"key": key},
	}
}

// ErrLifecycleError creates a lifecycle error
func ErrLifecycleError(phase string, cause error) *CrucibleError {
	return &CrucibleError{
		Code:      CodeLifecycleError,
		Message:   "lifecycle error during " + phase,
		Cause:     cause,
		Timestamp: time.Now(),
		Context:   map[string]interface{}{"phase": phase},
	}
}

// ErrHealthCheckFailed creates a health check error
func ErrHealthCheckFailed(key string, cause error) *CrucibleError {
	return &CrucibleError{
		Code:      CodeHealthCheckFailed,
		Message:   "health check failed for capability '" + key + "'",
		Cause:     cause,
		Timestamp: time.Now(),
		Context:   map[string]interface{}{"key": key},
	}
}

// =============================================================================
// STANDARD ERRORS PACKAGE INTEGRATION
// =============================================================================

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around errors.Is from the standard library.
//
// Example:
//
//	err := ErrUnregisteredDependency("database")
//	if Is(err, ErrUnregisteredDependencySentinel) {
//	    // handle missing registration
//	}
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target, and if so,
// sets target to that error value and returns true. Otherwise, it returns false.
// This is a convenience wrapper around errors.As from the standard library.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err, if err's
// type contains an Unwrap method returning error. Otherwise, Unwrap returns nil.
// This is a convenience wrapper around errors.Unwrap from the standard library.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// New returns an error that formats as the given text.
// This is a convenience wrapper around errors.New from the standard library.
func New(text string) error {
	return errors.New(text)
}

// Join returns an error that wraps the given errors.
// Any nil error values are discarded.
// This is a convenience wrapper around errors.Join from the standard library.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// =============================================================================
// SENTINEL ERRORS (for use with Is)
// =============================================================================

// Sentinel errors that can be used with errors.Is comparisons
var (
	// ErrDuplicateRegistrationSentinel matches any duplicate-registration error
	ErrDuplicateRegistrationSentinel = &CrucibleError{Code: CodeDuplicateRegistration}

	// ErrUnregisteredDependencySentinel matches any unregistered-dependency error
	ErrUnregisteredDependencySentinel = &CrucibleError{Code: CodeUnregisteredDependency}

	// ErrCyclicDependencySentinel matches any cyclic-dependency error
	ErrCyclicDependencySentinel = &CrucibleError{Code: CodeCyclicDependency}

	// ErrFactoryFailedSentinel matches any factory-failed error
	ErrFactoryFailedSentinel = &CrucibleError{Code: CodeFactoryFailed}

	// ErrScopeRequiredSentinel matches any scope-required error
	ErrScopeRequiredSentinel = &CrucibleError{Code: CodeScopeRequired}

	// ErrLifecycleErrorSentinel matches any lifecycle error
	ErrLifecycleErrorSentinel = &CrucibleError{Code: CodeLifecycleError}

	// ErrHealthCheckFailedSentinel matches any health-check error
	ErrHealthCheckFailedSentinel = &CrucibleError{Code: CodeHealthCheckFailed}
)

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// IsDuplicateRegistration checks if an error is a duplicate-registration error
func IsDuplicateRegistration(err error) bool {
	return errors.Is(err, ErrDuplicateRegistrationSentinel)
}

// IsUnregisteredDependency checks if an error is an unregistered-dependency error
func IsUnregisteredDependency(err error) bool {
	return errors.Is(err, ErrUnregisteredDependencySentinel)
}

// IsCyclicDependency checks if an error is a cyclic-dependency error
func IsCyclicDependency(err error) bool {
	return errors.Is(err, ErrCyclicDependencySentinel)
}

// IsFactoryFailed checks if an error is a factory-failed error
func IsFactoryFailed(err error) bool {
	return errors.Is(err, ErrFactoryFailedSentinel)
}

// IsTaxonomy reports whether err already carries one of the container's
// resolution error codes. Used to decide whether a factory error needs
// FACTORY_FAILED wrapping or should propagate as-is.
func IsTaxonomy(err error) bool {
	return errors.Is(err, ErrUnregisteredDependencySentinel) ||
		errors.Is(err, ErrCyclicDependencySentinel) ||
		errors.Is(err, ErrFactoryFailedSentinel) ||
		errors.Is(err, ErrScopeRequiredSentinel)
}
