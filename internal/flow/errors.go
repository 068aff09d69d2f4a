package flow

import "errors"

var (
	// ErrInvalidConfiguration is returned when a catalog or definition cannot
	// describe a usable flow.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidArgument is returned for out-of-range indexes. State is left
	// unchanged.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoSelection is returned by Flow.Select when the current step has no
	// options.
	ErrNoSelection = errors.New("current step has no selection")

	// ErrNotComplete is returned by Flow.Finish before the last step is done.
	ErrNotComplete = errors.New("flow not complete")

	// ErrFinished is returned by mutating calls after Flow.Finish.
	ErrFinished = errors.New("flow already finished")
)
