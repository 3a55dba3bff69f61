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

// notificationDoc is the Firestore document representation of model.Notification
type notificationDoc struct {
	ID          string    `firestore:"ID"`
	RecipientID string    `firestore:"RecipientID"`
	Subject     string    `firestore:"Subject"`
	Body        string    `firestore:"Body"`
	Link        string    `firestore:"Link"`
	Read        bool      `firestore:"Read"`
	CreatedAt   time.Time `firestore:"CreatedAt"`
}

func toNotificationDoc(n *model.Notification) *notificationDoc {
	return &notificationDoc{
		ID:          string(n.ID),
		RecipientID: n.RecipientID.String(),
		Subject:     n.Subject,
		Body:        n.Body,
		Link:        n.Link,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}

func fromNotificationDoc(d *notificationDoc) *model.Notification {
	return &model.Notification{
		ID:          model.NotificationID(d.ID),
		RecipientID: types.UserID(d.RecipientID),
		Subject:     d.Subject,
		Body:        d.Body,
		Link:        d.Link,
		Read:        d.Read,
		CreatedAt:   d.CreatedAt,
	}
}

type notificationRepository struct {
	client *firestore.Client
}

func newNotificationRepository(client *firestore.Client) *notificationRepository {
	return &notificationRepository{client: client}
}

// notificationsCollection returns the subcollection path orgs/{orgID}/notifications
func (r *notificationRepository) notificationsCollection(orgID types.OrgID) *firestore.CollectionRef {
	return r.client.Collection("orgs").Doc(orgID.String()).Collection("notifications")
}

func (r *notificationRepository) Create(ctx context.Context, orgID types.OrgID, n *model.Notification) (*model.Notification, error) {
	created := *n
	if created.ID == "" {
		created.ID = model.NewNotificationID()
	}
	created.CreatedAt = time.Now().UTC()

	docRef := r.notificationsCollection(orgID).Doc(string(created.ID))
	if _, err := docRef.Set(ctx, toNotificationDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create notification", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, orgID types.OrgID, userID types.UserID, unreadOnly bool) ([]*model.Notification, error) {
	query := r.notificationsCollection(orgID).
		Where("RecipientID", "==", userID.String())
	if unreadOnly {
		query = query.Where("Read", "==", false)
	}
	query = query.OrderBy("CreatedAt", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	result := make([]*model.Notification, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate notifications",
				goerr.V("userID", userID))
		}

		var d notificationDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal notification")
		}

		result = append(result, fromNotificationDoc(&d))
	}

	return result, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, orgID types.OrgID, id model.NotificationID) (*model.Notification, error) {
	docRef := r.notificationsCollection(orgID).Doc(string(id))

	updates := []firestore.Update{
		{Path: "Read", Value: true},
	}
	if _, err := docRef.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "notification not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to mark notification read", goerr.V("id", id))
	}

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get notification", goerr.V("id", id))
	}

	var d notificationDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal notification", goerr.V("id", id))
	}

	return fromNotificationDoc(&d), nil
}
