package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// NoteID is a UUID-based identifier for Note
type NoteID string

// NewNoteID generates a new UUID v4 NoteID
func NewNoteID() NoteID {
	return NoteID(uuid.New().String())
}

// Note is a mutable annotation on a work item. Only the authoring user may
// edit or delete it.
type Note struct {
	ID         NoteID
	WorkItemID int64
	AuthorID   types.UserID
	Body       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
