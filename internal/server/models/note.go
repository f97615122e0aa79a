package models

import "time"

// Limits enforced on note fields before any persistence call.
const (
	NoteTitleMaxLen   = 100
	NoteContentMaxLen = 1000
)

// Note is a personal note. UserID is set once at creation and never
// reassigned; CreatedAt is stamped once and immutable thereafter.
type Note struct {
	ID        string
	Title     string
	Content   string
	UserID    string
	CreatedAt time.Time
}
