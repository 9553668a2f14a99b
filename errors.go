package crucible

import (
	"github.com/xraph/crucible/errors"
)

// Re-export error constructors.
var (
	ErrDuplicateRegistration  = errors.ErrDuplicateRegistration
	ErrUnregisteredDependency = errors.ErrUnregisteredDependency
	ErrCyclicDependency       = errors.ErrCyclicDependency
	ErrFactoryFailed          = errors.ErrFactoryFailed
	ErrScopeRequired          = errors.ErrScopeRequired
	ErrLifecycleError         = errors.ErrLifecycleError
	ErrHealthCheckFailed      = errors.ErrHealthCheckFailed
)

// Re-export plain sentinel errors.
var (
	ErrInvalidFactory   = errors.ErrInvalidFactory
	ErrEmptyCapability  = errors.ErrEmptyCapability
	ErrTypeMismatch     = errors.ErrTypeMismatch
	ErrContainerStarted = errors.ErrContainerStarted
	ErrContainerStopped = errors.ErrContainerStopped
	ErrScopeEnded       = errors.ErrScopeEnded
)

// Re-export sentinel errors for error comparison using errors.Is().
var (
	ErrDuplicateRegistrationSentinel  = errors.ErrDuplicateRegistrationSentinel
	ErrUnregisteredDependencySentinel = errors.ErrUnregisteredDependencySentinel
	ErrCyclicDependencySentinel       = errors.ErrCyclicDependencySentinel
	ErrFactoryFailedSentinel          = errors.ErrFactoryFailedSentinel
	ErrScopeRequiredSentinel          = errors.ErrScopeRequiredSentinel
	ErrLifecycleErrorSentinel         = errors.ErrLifecycleErrorSentinel
	ErrHealthCheckFailedSentinel      = errors.ErrHealthCheckFailedSentinel
)

// Re-export error classification helpers.
var (
	IsDuplicateRegistration  = errors.IsDuplicateRegistration
	IsUnregisteredDependency = errors.IsUnregisteredDependency
	IsCyclicDependency       = errors.IsCyclicDependency
	IsFactoryFailed          = errors.IsFactoryFailed
)

// CrucibleError represents a structured container error with code and
// context.
type CrucibleError = errors.CrucibleError

// ResolutionError wraps errors that occur while operating on a
// registration.
type ResolutionError = errors.ResolutionError

// NewResolutionError creates a new resolution error.
var NewResolutionError = errors.NewResolutionError
