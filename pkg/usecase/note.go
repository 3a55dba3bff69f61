package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/model/auth"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// NoteUseCase covers free-form notes attached to work items. Notes are
// mutable, unlike the activity trail, but only by their author.
type NoteUseCase struct {
	repo interfaces.Repository
}

// Add attaches a note to a work item and records a note_added entry in
// the item's activity trail
func (u *NoteUseCase) Add(ctx context.Context, orgID types.OrgID, workItemID int64, body string) (*model.Note, error) {
	if body == "" {
		return nil, goerr.Wrap(ErrInvalidArgument, "note body is required")
	}

	if _, err := u.repo.WorkItem().Get(ctx, orgID, workItemID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrWorkItemNotFound, "work item not found",
				goerr.V("work_item_id", workItemID))
		}
		return nil, goerr.Wrap(err, "failed to get work item", goerr.V("work_item_id", workItemID))
	}

	actor := auth.ActorFromContext(ctx)

	note, err := u.repo.Note().Create(ctx, orgID, &model.Note{
		WorkItemID: workItemID,
		AuthorID:   actor,
		Body:       body,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create note", goerr.V("work_item_id", workItemID))
	}

	if _, err := u.repo.Activity().Append(ctx, orgID, &model.Activity{
		WorkItemID:  workItemID,
		ActorID:     actor,
		Kind:        types.ActivityKindNoteAdded,
		Description: "Anteckning tillagd",
	}); err != nil {
		return nil, goerr.Wrap(err, "note created but audit append failed",
			goerr.V("note_id", note.ID))
	}

	return note, nil
}

// List retrieves the notes of a work item, newest first
func (u *NoteUseCase) List(ctx context.Context, orgID types.OrgID, workItemID int64) ([]*model.Note, error) {
	notes, err := u.repo.Note().ListByWorkItem(ctx, orgID, workItemID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list notes", goerr.V("work_item_id", workItemID))
	}
	return notes, nil
}

// Update replaces the body of a note. Only the author may edit.
func (u *NoteUseCase) Update(ctx context.Context, orgID types.OrgID, noteID model.NoteID, body string) (*model.Note, error) {
	if body == "" {
		return nil, goerr.Wrap(ErrInvalidArgument, "note body is required")
	}

	note, err := u.getOwned(ctx, orgID, noteID)
	if err != nil {
		return nil, err
	}

	note.Body = body
	updated, err := u.repo.Note().Update(ctx, orgID, note)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update note", goerr.V("note_id", noteID))
	}
	return updated, nil
}

// Delete removes a note and records the removal in the work item's
// activity trail. Only the author may delete.
func (u *NoteUseCase) Delete(ctx context.Context, orgID types.OrgID, noteID model.NoteID) error {
	note, err := u.getOwned(ctx, orgID, noteID)
	if err != nil {
		return err
	}

	if err := u.repo.Note().Delete(ctx, orgID, noteID); err != nil {
		return goerr.Wrap(err, "failed to delete note", goerr.V("note_id", noteID))
	}

	if _, err := u.repo.Activity().Append(ctx, orgID, &model.Activity{
		WorkItemID:  note.WorkItemID,
		ActorID:     auth.ActorFromContext(ctx),
		Kind:        types.ActivityKindCustom,
		Description: "Anteckning borttagen",
	}); err != nil {
		return goerr.Wrap(err, "note deleted but audit append failed",
			goerr.V("note_id", noteID))
	}

	return nil
}

// getOwned loads the note and enforces author-only access
func (u *NoteUseCase) getOwned(ctx context.Context, orgID types.OrgID, noteID model.NoteID) (*model.Note, error) {
	note, err := u.repo.Note().Get(ctx, orgID, noteID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrNoteNotFound, "note not found", goerr.V("note_id", noteID))
		}
		return nil, goerr.Wrap(err, "failed to get note", goerr.V("note_id", noteID))
	}

	if actor := auth.ActorFromContext(ctx); actor != note.AuthorID {
		return nil, goerr.Wrap(ErrNotNoteAuthor, "actor is not the note author",
			goerr.V("note_id", noteID),
			goerr.V("author_id", note.AuthorID),
			goerr.V("actor_id", actor))
	}

	return note, nil
}
