package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrRateUnavailable indicates that no exchange rate is on record for a currency.
// Aggregations treat this as "skip the line item", never as a hard failure.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrForbidden indicates the caller does not own the resource they addressed.
var ErrForbidden = errors.New("forbidden")
