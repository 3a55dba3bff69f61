package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

type noteRepository struct {
	mu    sync.RWMutex
	notes map[types.OrgID]map[model.NoteID]*model.Note
}

func newNoteRepository() *noteRepository {
	return &noteRepository{
		notes: make(map[types.OrgID]map[model.NoteID]*model.Note),
	}
}

func (r *noteRepository) ensureOrg(orgID types.OrgID) {
	if _, exists := r.notes[orgID]; !exists {
		r.notes[orgID] = make(map[model.NoteID]*model.Note)
	}
}

func copyNote(n *model.Note) *model.Note {
	copied := *n
	return &copied
}

func (r *noteRepository) Create(ctx context.Context, orgID types.OrgID, note *model.Note) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureOrg(orgID)

	now := time.Now().UTC()
	created := copyNote(note)
	if created.ID == "" {
		created.ID = model.NewNoteID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.notes[orgID][created.ID] = created
	return copyNote(created), nil
}

func (r *noteRepository) Get(ctx context.Context, orgID types.OrgID, id model.NoteID) (*model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, exists := r.notes[orgID][id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "note not found", goerr.V("id", id))
	}

	return copyNote(note), nil
}

func (r *noteRepository) ListByWorkItem(ctx context.Context, orgID types.OrgID, workItemID int64) ([]*model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Note, 0)
	for _, n := range r.notes[orgID] {
		if n.WorkItemID == workItemID {
			result = append(result, copyNote(n))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *noteRepository) Update(ctx context.Context, orgID types.OrgID, note *model.Note) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.notes[orgID][note.ID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "note not found", goerr.V("id", note.ID))
	}

	updated := copyNote(existing)
	updated.Body = note.Body
	updated.UpdatedAt = time.Now().UTC()

	r.notes[orgID][note.ID] = updated
	return copyNote(updated), nil
}

func (r *noteRepository) Delete(ctx context.Context, orgID types.OrgID, id model.NoteID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[orgID][id]; !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "note not found", goerr.V("id", id))
	}

	delete(r.notes[orgID], id)
	return nil
}
