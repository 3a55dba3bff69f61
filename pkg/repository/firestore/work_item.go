package firestore

import (
	"context"
	"fmt"
	"strings"
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

// workItemDoc is the Firestore document representation of model.WorkItem
type workItemDoc struct {
	ID          int64     `firestore:"ID"`
	Kind        string    `firestore:"Kind"`
	Title       string    `firestore:"Title"`
	Description string    `firestore:"Description"`
	Estimate    *float64  `firestore:"Estimate"`
	Status      string    `firestore:"Status"`
	Source      string    `firestore:"Source"`
	OrgID       string    `firestore:"OrgID"`
	CustomerID  string    `firestore:"CustomerID"`
	AssigneeID  string    `firestore:"AssigneeID"`
	TeamID      string    `firestore:"TeamID"`
	CreatedAt   time.Time `firestore:"CreatedAt"`
	UpdatedAt   time.Time `firestore:"UpdatedAt"`
}

func toWorkItemDoc(item *model.WorkItem) *workItemDoc {
	return &workItemDoc{
		ID:          item.ID,
		Kind:        item.Kind.String(),
		Title:       item.Title,
		Description: item.Description,
		Estimate:    item.Estimate,
		Status:      item.Status.String(),
		Source:      item.Source,
		OrgID:       item.OrgID.String(),
		CustomerID:  item.CustomerID,
		AssigneeID:  item.AssigneeID.String(),
		TeamID:      item.TeamID.String(),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func fromWorkItemDoc(d *workItemDoc) *model.WorkItem {
	return &model.WorkItem{
		ID:          d.ID,
		Kind:        types.WorkItemKind(d.Kind),
		Title:       d.Title,
		Description: d.Description,
		Estimate:    d.Estimate,
		Status:      types.Status(d.Status),
		Source:      d.Source,
		OrgID:       types.OrgID(d.OrgID),
		CustomerID:  d.CustomerID,
		AssigneeID:  types.UserID(d.AssigneeID),
		TeamID:      types.TeamID(d.TeamID),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type workItemRepository struct {
	client *firestore.Client
}

func newWorkItemRepository(client *firestore.Client) *workItemRepository {
	return &workItemRepository{client: client}
}

// itemsCollection returns the subcollection path orgs/{orgID}/work_items
func (r *workItemRepository) itemsCollection(orgID types.OrgID) *firestore.CollectionRef {
	return r.client.Collection("orgs").Doc(orgID.String()).Collection("work_items")
}

func (r *workItemRepository) counterDoc(orgID types.OrgID) *firestore.DocumentRef {
	return r.client.Collection("orgs").Doc(orgID.String()).
		Collection("counters").Doc("work_item_counter")
}

func (r *workItemRepository) getNextID(ctx context.Context, orgID types.OrgID) (int64, error) {
	counterRef := r.counterDoc(orgID)

	var nextID int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				nextID = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": nextID,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		val, ok := currentValue.(int64)
		if !ok {
			return goerr.New("counter value is not of type int64", goerr.V("value", currentValue))
		}
		nextID = val + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: nextID},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next ID")
	}

	return nextID, nil
}

func (r *workItemRepository) Create(ctx context.Context, orgID types.OrgID, item *model.WorkItem) (*model.WorkItem, error) {
	nextID, err := r.getNextID(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next ID")
	}

	now := time.Now().UTC()
	created := *item
	created.ID = nextID
	created.OrgID = orgID
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.itemsCollection(orgID).Doc(docID).Set(ctx, toWorkItemDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create work item", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *workItemRepository) Get(ctx context.Context, orgID types.OrgID, id int64) (*model.WorkItem, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.itemsCollection(orgID).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "work item not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get work item", goerr.V("id", id))
	}

	var d workItemDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal work item", goerr.V("id", id))
	}

	return fromWorkItemDoc(&d), nil
}

func (r *workItemRepository) List(ctx context.Context, orgID types.OrgID, opts ...interfaces.ListWorkItemOption) ([]*model.WorkItem, error) {
	cfg := interfaces.BuildListWorkItemConfig(opts...)

	query := r.itemsCollection(orgID).Query
	if kind := cfg.Kind(); kind != nil {
		query = query.Where("Kind", "==", kind.String())
	}
	if st := cfg.Status(); st != nil {
		query = query.Where("Status", "==", st.String())
	}
	if assignee := cfg.Assignee(); assignee != nil {
		query = query.Where("AssigneeID", "==", assignee.String())
	}
	if team := cfg.Team(); team != nil {
		query = query.Where("TeamID", "==", team.String())
	}
	if cfg.Unassigned() {
		query = query.Where("AssigneeID", "==", "")
	}
	if after := cfg.CreatedAfter(); after != nil {
		query = query.Where("CreatedAt", ">=", *after)
	}
	if before := cfg.CreatedBefore(); before != nil {
		query = query.Where("CreatedAt", "<", *before)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	// Substring match is applied client-side; Firestore has no contains operator
	sub := strings.ToLower(cfg.TitleContains())

	result := make([]*model.WorkItem, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate work items")
		}

		var d workItemDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal work item")
		}
		if sub != "" && !strings.Contains(strings.ToLower(d.Title), sub) {
			continue
		}

		result = append(result, fromWorkItemDoc(&d))
	}

	return result, nil
}

func (r *workItemRepository) Update(ctx context.Context, orgID types.OrgID, item *model.WorkItem) (*model.WorkItem, error) {
	docID := fmt.Sprintf("%d", item.ID)
	docRef := r.itemsCollection(orgID).Doc(docID)

	updates := []firestore.Update{
		{Path: "Title", Value: item.Title},
		{Path: "Description", Value: item.Description},
		{Path: "Estimate", Value: item.Estimate},
		{Path: "Source", Value: item.Source},
		{Path: "CustomerID", Value: item.CustomerID},
		{Path: "UpdatedAt", Value: time.Now().UTC()},
	}
	if _, err := docRef.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "work item not found", goerr.V("id", item.ID))
		}
		return nil, goerr.Wrap(err, "failed to update work item", goerr.V("id", item.ID))
	}

	return r.Get(ctx, orgID, item.ID)
}

func (r *workItemRepository) patchField(ctx context.Context, orgID types.OrgID, id int64, field string, value interface{}) (*model.WorkItem, error) {
	docID := fmt.Sprintf("%d", id)
	docRef := r.itemsCollection(orgID).Doc(docID)

	updates := []firestore.Update{
		{Path: field, Value: value},
		{Path: "UpdatedAt", Value: time.Now().UTC()},
	}
	if _, err := docRef.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "work item not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to patch work item",
			goerr.V("id", id), goerr.V("field", field))
	}

	return r.Get(ctx, orgID, id)
}

func (r *workItemRepository) UpdateStatus(ctx context.Context, orgID types.OrgID, id int64, st types.Status) (*model.WorkItem, error) {
	return r.patchField(ctx, orgID, id, "Status", st.String())
}

func (r *workItemRepository) UpdateAssignee(ctx context.Context, orgID types.OrgID, id int64, userID types.UserID) (*model.WorkItem, error) {
	return r.patchField(ctx, orgID, id, "AssigneeID", userID.String())
}

func (r *workItemRepository) UpdateTeam(ctx context.Context, orgID types.OrgID, id int64, teamID types.TeamID) (*model.WorkItem, error) {
	return r.patchField(ctx, orgID, id, "TeamID", teamID.String())
}

func (r *workItemRepository) Delete(ctx context.Context, orgID types.OrgID, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.itemsCollection(orgID).Doc(docID)

	// Existence check so a missing item is reported, matching other backends
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "work item not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get work item", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete work item", goerr.V("id", id))
	}
	return nil
}
