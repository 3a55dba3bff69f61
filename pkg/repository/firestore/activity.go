package firestore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// activityDoc is the Firestore document representation of model.Activity
type activityDoc struct {
	ID          string    `firestore:"ID"`
	WorkItemID  int64     `firestore:"WorkItemID"`
	ActorID     string    `firestore:"ActorID"`
	Kind        string    `firestore:"Kind"`
	Description string    `firestore:"Description"`
	OldValue    string    `firestore:"OldValue"`
	NewValue    string    `firestore:"NewValue"`
	CreatedAt   time.Time `firestore:"CreatedAt"`
	Seq         int64     `firestore:"Seq"`
}

func toActivityDoc(a *model.Activity) *activityDoc {
	return &activityDoc{
		ID:          string(a.ID),
		WorkItemID:  a.WorkItemID,
		ActorID:     a.ActorID.String(),
		Kind:        a.Kind.String(),
		Description: a.Description,
		OldValue:    a.OldValue,
		NewValue:    a.NewValue,
		CreatedAt:   a.CreatedAt,
		Seq:         a.Seq,
	}
}

func fromActivityDoc(d *activityDoc) *model.Activity {
	return &model.Activity{
		ID:          model.ActivityID(d.ID),
		WorkItemID:  d.WorkItemID,
		ActorID:     types.UserID(d.ActorID),
		Kind:        types.ActivityKind(d.Kind),
		Description: d.Description,
		OldValue:    d.OldValue,
		NewValue:    d.NewValue,
		CreatedAt:   d.CreatedAt,
		Seq:         d.Seq,
	}
}

type activityRepository struct {
	client *firestore.Client
}

func newActivityRepository(client *firestore.Client) *activityRepository {
	return &activityRepository{client: client}
}

// activitiesCollection returns the subcollection path:
// orgs/{orgID}/work_items/{workItemID}/activities
func (r *activityRepository) activitiesCollection(orgID types.OrgID, workItemID int64) *firestore.CollectionRef {
	return r.client.Collection("orgs").Doc(orgID.String()).
		Collection("work_items").Doc(fmt.Sprintf("%d", workItemID)).
		Collection("activities")
}

func (r *activityRepository) seqCounterDoc(orgID types.OrgID) *firestore.DocumentRef {
	return r.client.Collection("orgs").Doc(orgID.String()).
		Collection("counters").Doc("activity_seq")
}

func (r *activityRepository) nextSeq(ctx context.Context, orgID types.OrgID) (int64, error) {
	counterRef := r.seqCounterDoc(orgID)

	var next int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				next = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": next,
				})
			}
			return goerr.Wrap(err, "failed to get activity seq counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get activity seq value")
		}

		val, ok := currentValue.(int64)
		if !ok {
			return goerr.New("activity seq value is not of type int64", goerr.V("value", currentValue))
		}
		next = val + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: next},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next activity seq")
	}

	return next, nil
}

func (r *activityRepository) Append(ctx context.Context, orgID types.OrgID, activity *model.Activity) (*model.Activity, error) {
	seq, err := r.nextSeq(ctx, orgID)
	if err != nil {
		return nil, err
	}

	created := *activity
	if created.ID == "" {
		created.ID = model.NewActivityID()
	}
	created.CreatedAt = time.Now().UTC()
	created.Seq = seq

	docRef := r.activitiesCollection(orgID, created.WorkItemID).Doc(string(created.ID))
	// Create, not Set: an existing ID must never be overwritten
	if _, err := docRef.Create(ctx, toActivityDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to append activity",
			goerr.V("workItemID", created.WorkItemID))
	}

	return &created, nil
}

func (r *activityRepository) ListByWorkItem(ctx context.Context, orgID types.OrgID, workItemID int64) ([]*model.Activity, error) {
	query := r.activitiesCollection(orgID, workItemID).
		OrderBy("CreatedAt", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	result := make([]*model.Activity, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate activities",
				goerr.V("workItemID", workItemID))
		}

		var d activityDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal activity")
		}

		result = append(result, fromActivityDoc(&d))
	}

	// Seq breaks ties between entries sharing a timestamp
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].Seq > result[j].Seq
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}
