package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrTransient    = errors.New("store temporarily unavailable")
	ErrInvalidInput = errors.New("invalid input")
)
