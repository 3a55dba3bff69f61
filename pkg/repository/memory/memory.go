package memory

import (
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
)

// Client is an in-memory implementation of interfaces.Repository for
// development and testing
type Client struct {
	workItem     *workItemRepository
	activity     *activityRepository
	note         *noteRepository
	notification *notificationRepository
	timeSession  *timeSessionRepository
	directory    *directoryRepository
}

var _ interfaces.Repository = &Client{}

// New creates a new in-memory repository
func New() *Client {
	return &Client{
		workItem:     newWorkItemRepository(),
		activity:     newActivityRepository(),
		note:         newNoteRepository(),
		notification: newNotificationRepository(),
		timeSession:  newTimeSessionRepository(),
		directory:    newDirectoryRepository(),
	}
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
	return nil
}
