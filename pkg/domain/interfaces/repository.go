package interfaces

import "errors"

// Repository defines the interface for data persistence
type Repository interface {
	WorkItem() WorkItemRepository
	Activity() ActivityRepository
	Note() NoteRepository
	Notification() NotificationRepository
	TimeSession() TimeSessionRepository
	Directory() DirectoryRepository

	Close() error
}

// Sentinel errors shared by all repository backends. Backends wrap these so
// callers can branch with errors.Is regardless of the configured backend.
var (
	// ErrNotFound indicates the referenced record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrActiveSessionExists indicates the worker already has an active
	// time session; returned by TimeSessionRepository.Start
	ErrActiveSessionExists = errors.New("active session already exists for worker")

	// ErrSessionClosed indicates the time session already has an end
	// timestamp; returned by TimeSessionRepository.Close
	ErrSessionClosed = errors.New("session is already closed")
)
