package project

import "errors"

// ErrNotFound is returned when no project has the requested ID.
var ErrNotFound = errors.New("project not found")
