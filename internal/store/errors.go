package store

import "errors"

var (
	// ErrUnauthenticated is returned when an action requiring a user context
	// runs without one.
	ErrUnauthenticated = errors.New("no authenticated user")

	// ErrNoteNotFound is returned when an action references a note id that is
	// not in the authoritative collection. No network call is made.
	ErrNoteNotFound = errors.New("note not found in store")

	// ErrNoCurrentNote is returned when DeleteNote runs without a focused
	// note. This indicates a UI/store desynchronization bug.
	ErrNoCurrentNote = errors.New("no current note set")

	// ErrCurrentNoteMismatch is returned when DeleteNote is asked to delete a
	// note other than the focused one.
	ErrCurrentNoteMismatch = errors.New("current note does not match the provided note id")

	// ErrEmptySelection is returned by DeleteSelected when nothing is selected.
	ErrEmptySelection = errors.New("no notes selected")
)
