package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates an operation was attempted from a disallowed account status.
var ErrInvalidState = errors.New("invalid account state for operation")

// ErrPolicyViolation indicates a role or transaction type not permitted by product configuration.
var ErrPolicyViolation = errors.New("operation not permitted by product configuration")

// ErrUpstreamUnavailable indicates a calculation/product/customer provider failure.
// Recoverable at the caller's discretion; the core does not retry internally.
var ErrUpstreamUnavailable = errors.New("upstream provider unavailable")
