package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// TimeSessionID is a UUID-based identifier for TimeSession
type TimeSessionID string

// NewTimeSessionID generates a new UUID v4 TimeSessionID
func NewTimeSessionID() TimeSessionID {
	return TimeSessionID(uuid.New().String())
}

// Location is a latitude/longitude snapshot captured at session start
type Location struct {
	Lat float64
	Lng float64
}

// TimeSession is a tracked work interval for one worker on one work item.
// At most one session with a zero EndedAt exists per worker at any time;
// the repository enforces this at insert.
type TimeSession struct {
	ID          TimeSessionID
	WorkItemID  int64
	WorkerID    types.UserID
	WorkType    types.WorkTypeID // optional
	StartedAt   time.Time
	EndedAt     time.Time // zero while the session is active
	Location    *Location // optional snapshot, immutable after start
	Environment string    // optional free-text snapshot, e.g. weather
}

// Active reports whether the session has not been stopped yet
func (s *TimeSession) Active() bool {
	return s.EndedAt.IsZero()
}
