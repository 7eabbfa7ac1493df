package tag

import "errors"

// Tag domain errors
var (
	ErrUnrecognizedTag = errors.New("tag token is not recognized")
	ErrTagDeactivated  = errors.New("tag has been deactivated")
	ErrTagNotFound     = errors.New("tag not found")
)
