package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
)

// Client is a Firestore-backed implementation of interfaces.Repository
type Client struct {
	client       *firestore.Client
	workItem     *workItemRepository
	activity     *activityRepository
	note         *noteRepository
	notification *notificationRepository
	timeSession  *timeSessionRepository
	directory    *directoryRepository
}

var _ interfaces.Repository = &Client{}

// New creates a new Firestore repository
func New(ctx context.Context, projectID, databaseID string) (*Client, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	return &Client{
		client:       client,
		workItem:     newWorkItemRepository(client),
		activity:     newActivityRepository(client),
		note:         newNoteRepository(client),
		notification: newNotificationRepository(client),
		timeSession:  newTimeSessionRepository(client),
		directory:    newDirectoryRepository(client),
	}, nil
}

func (c *Client) WorkItem() interfaces.WorkItemRepository {
	return c.workItem
}

func (c *Client) Activity() interfaces.ActivityRepository {
	return c.activity
}

func (c *Client) Note() interfaces.NoteRepository {
	return c.note
}

func (c *Client) Notification() interfaces.NotificationRepository {
	return c.notification
}

func (c *Client) TimeSession() interfaces.TimeSessionRepository {
	return c.timeSession
}

func (c *Client) Directory() interfaces.DirectoryRepository {
	return c.directory
}

func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
