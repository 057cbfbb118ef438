package domain

import "errors"

// ErrValidation is returned when the visible fields do not pass validation.
var ErrValidation = errors.New("validation failed")

// ErrSubmissionInProgress is returned when a submission is already pending.
var ErrSubmissionInProgress = errors.New("submission in progress")

// ErrNotFinalStep is returned when submitting from any step but the last.
var ErrNotFinalStep = errors.New("submission is only allowed on the final step")

// ErrDisabled is returned by components built without their markup.
var ErrDisabled = errors.New("component disabled")

// ErrSubmissionFailed wraps a sink failure.
var ErrSubmissionFailed = errors.New("submission failed")

// ErrDuplicateSubmission is returned by sinks that already accepted the same lead.
var ErrDuplicateSubmission = errors.New("duplicate submission")

// ErrPageNotFound is returned when a page ID is unknown or expired.
var ErrPageNotFound = errors.New("page not found")

// ErrUnknownField is returned when a value targets a field the form does not have.
var ErrUnknownField = errors.New("unknown field")
