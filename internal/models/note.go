package models

import (
	"fmt"
	"time"
)

type ListType string

const (
	ListTypeDefault ListType = "default"
	ListTypeDeleted ListType = "deleted"
)

// ToggleFlag names a boolean note field that can be flipped through the
// dedicated flag endpoint. The set is closed; adding a flag means adding a
// constant here and a case to Flag/WithFlag.
type ToggleFlag string

const (
	FlagOneClickCopy ToggleFlag = "oneClickCopy"
)

// Valid reports whether f is a recognized toggle flag.
func (f ToggleFlag) Valid() bool {
	switch f {
	case FlagOneClickCopy:
		return true
	}
	return false
}

// Note is a user-owned rich-text snippet. Content holds sanitized HTML and is
// opaque to the store. An empty ID marks a note that has not been persisted yet.
type Note struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ListType     ListType  `json:"listType"`
	OneClickCopy bool      `json:"oneClickCopy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DefaultTitle is the title given to freshly created notes.
const DefaultTitle = "New Note"

// NewDraft returns an unsaved note placeholder. It carries no ID and must not
// be inserted into the authoritative collection until the backend acknowledges
// its creation.
func NewDraft() Note {
	return Note{
		Title:    DefaultTitle,
		ListType: ListTypeDefault,
	}
}

// Saved reports whether the note has been persisted by the backend.
func (n Note) Saved() bool {
	return n.ID != ""
}

// Flag returns the current value of the named toggle flag.
func (n Note) Flag(f ToggleFlag) (bool, error) {
	switch f {
	case FlagOneClickCopy:
		return n.OneClickCopy, nil
	}
	return false, fmt.Errorf("unknown toggle flag %q", f)
}

// WithFlag returns a copy of the note with the named flag set to value.
func (n Note) WithFlag(f ToggleFlag, value bool) (Note, error) {
	switch f {
	case FlagOneClickCopy:
		n.OneClickCopy = value
		return n, nil
	}
	return n, fmt.Errorf("unknown toggle flag %q", f)
}
