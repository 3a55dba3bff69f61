package interfaces

import (
	"context"

	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// NoteRepository defines the interface for Note data access
type NoteRepository interface {
	// Create creates a new note with auto-generated ID
	Create(ctx context.Context, orgID types.OrgID, note *model.Note) (*model.Note, error)

	// Get retrieves a note by ID
	Get(ctx context.Context, orgID types.OrgID, id model.NoteID) (*model.Note, error)

	// ListByWorkItem retrieves notes for a work item, newest first
	ListByWorkItem(ctx context.Context, orgID types.OrgID, workItemID int64) ([]*model.Note, error)

	// Update replaces the body of an existing note and bumps UpdatedAt
	Update(ctx context.Context, orgID types.OrgID, note *model.Note) (*model.Note, error)

	// Delete removes a note. Hard remove, not a tombstone.
	Delete(ctx context.Context, orgID types.OrgID, id model.NoteID) error
}
