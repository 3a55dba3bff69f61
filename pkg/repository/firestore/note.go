package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// noteDoc is the Firestore document representation of model.Note
type noteDoc struct {
	ID         string    `firestore:"ID"`
	WorkItemID int64     `firestore:"WorkItemID"`
	AuthorID   string    `firestore:"AuthorID"`
	Body       string    `firestore:"Body"`
	CreatedAt  time.Time `firestore:"CreatedAt"`
	UpdatedAt  time.Time `firestore:"UpdatedAt"`
}

func toNoteDoc(n *model.Note) *noteDoc {
	return &noteDoc{
		ID:         string(n.ID),
		WorkItemID: n.WorkItemID,
		AuthorID:   n.AuthorID.String(),
		Body:       n.Body,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func fromNoteDoc(d *noteDoc) *model.Note {
	return &model.Note{
		ID:         model.NoteID(d.ID),
		WorkItemID: d.WorkItemID,
		AuthorID:   types.UserID(d.AuthorID),
		Body:       d.Body,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type noteRepository struct {
	client *firestore.Client
}

func newNoteRepository(client *firestore.Client) *noteRepository {
	return &noteRepository{client: client}
}

// notesCollection returns the subcollection path orgs/{orgID}/notes
func (r *noteRepository) notesCollection(orgID types.OrgID) *firestore.CollectionRef {
	return r.client.Collection("orgs").Doc(orgID.String()).Collection("notes")
}

func (r *noteRepository) Create(ctx context.Context, orgID types.OrgID, note *model.Note) (*model.Note, error) {
	now := time.Now().UTC()
	created := *note
	if created.ID == "" {
		created.ID = model.NewNoteID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.notesCollection(orgID).Doc(string(created.ID))
	if _, err := docRef.Set(ctx, toNoteDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create note", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *noteRepository) Get(ctx context.Context, orgID types.OrgID, id model.NoteID) (*model.Note, error) {
	docSnap, err := r.notesCollection(orgID).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "note not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get note", goerr.V("id", id))
	}

	var d noteDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal note", goerr.V("id", id))
	}

	return fromNoteDoc(&d), nil
}

func (r *noteRepository) ListByWorkItem(ctx context.Context, orgID types.OrgID, workItemID int64) ([]*model.Note, error) {
	query := r.notesCollection(orgID).
		Where("WorkItemID", "==", workItemID).
		OrderBy("CreatedAt", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	result := make([]*model.Note, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate notes",
				goerr.V("workItemID", workItemID))
		}

		var d noteDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal note")
		}

		result = append(result, fromNoteDoc(&d))
	}

	return result, nil
}

func (r *noteRepository) Update(ctx context.Context, orgID types.OrgID, note *model.Note) (*model.Note, error) {
	docRef := r.notesCollection(orgID).Doc(string(note.ID))

	updates := []firestore.Update{
		{Path: "Body", Value: note.Body},
		{Path: "UpdatedAt", Value: time.Now().UTC()},
	}
	if _, err := docRef.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "note not found", goerr.V("id", note.ID))
		}
		return nil, goerr.Wrap(err, "failed to update note", goerr.V("id", note.ID))
	}

	return r.Get(ctx, orgID, note.ID)
}

func (r *noteRepository) Delete(ctx context.Context, orgID types.OrgID, id model.NoteID) error {
	docRef := r.notesCollection(orgID).Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "note not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get note", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete note", goerr.V("id", id))
	}
	return nil
}
