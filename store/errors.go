package store

import "errors"

var (
	ErrWriteLocked     = errors.New("store: write transaction held by another attachment")
	ErrWriteInProgress = errors.New("store: write transaction in progress")
	ErrRowNotFound     = errors.New("store: row not found")
	ErrFieldNotFound   = errors.New("store: field not found")
	ErrFieldType       = errors.New("store: unexpected field type")
	ErrNotDocument     = errors.New("store: payload must be a JSON object")
)
