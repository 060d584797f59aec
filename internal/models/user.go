package models

// User identifies the owner of a note collection. Only the ID matters to the
// store; Name is carried for display purposes.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}
