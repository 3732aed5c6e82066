package application

import "errors"

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrNoPendingShare is returned when accepting or reading an incoming
	// share while none is staged.
	ErrNoPendingShare = errors.New("application: no pending share")
)
