package models

import "errors"

// ErrBatchNotFound is returned by stores when no batch has the requested ID.
var ErrBatchNotFound = errors.New("batch not found")
