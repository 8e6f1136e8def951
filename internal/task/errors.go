package task

import "errors"

// ErrProjectNotFound is returned when the parent project of a task does not
// exist.
var ErrProjectNotFound = errors.New("project not found")
