package usecase

import "errors"

// Sentinel errors returned by the use case layer. Callers branch with
// errors.Is; the HTTP controller maps them to status codes.
var (
	// ErrWorkItemNotFound indicates the referenced work item does not exist
	ErrWorkItemNotFound = errors.New("work item not found")

	// ErrInvalidStatus indicates the requested status is not a member of
	// the status set for the work item's kind
	ErrInvalidStatus = errors.New("invalid status for work item kind")

	// ErrInvalidAssignee indicates the referenced user or team does not
	// resolve in the directory
	ErrInvalidAssignee = errors.New("assignee does not resolve in directory")

	// ErrInvalidArgument indicates the input violates a value constraint
	// (empty title, negative estimate, wrong kind)
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSessionAlreadyActive indicates the worker already has an active
	// time session
	ErrSessionAlreadyActive = errors.New("worker already has an active session")

	// ErrSessionAlreadyStopped indicates the time session already has an
	// end timestamp
	ErrSessionAlreadyStopped = errors.New("session is already stopped")

	// ErrSessionNotFound indicates the referenced time session does not exist
	ErrSessionNotFound = errors.New("time session not found")

	// ErrNoteNotFound indicates the referenced note does not exist
	ErrNoteNotFound = errors.New("note not found")

	// ErrNotNoteAuthor indicates the actor is not the author of the note
	ErrNotNoteAuthor = errors.New("only the note author can edit or delete it")

	// ErrNotificationNotFound indicates the referenced notification does
	// not exist
	ErrNotificationNotFound = errors.New("notification not found")
)
