package event

import "errors"

// Event domain errors
var (
	ErrEventNotFound   = errors.New("event not found")
	ErrInvalidTimes    = errors.New("event start time must precede end time")
	ErrNotAdHoc        = errors.New("event was not created by an ad-hoc check-in")
	ErrEventHasRecords = errors.New("event has attendance records and cannot be deleted")
)
