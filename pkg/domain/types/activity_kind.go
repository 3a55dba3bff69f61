package types

import "fmt"

// ActivityKind represents the kind of an activity log entry
type ActivityKind string

const (
	ActivityKindCreated       ActivityKind = "created"
	ActivityKindStatusChanged ActivityKind = "status_changed"
	ActivityKindAssigned      ActivityKind = "assigned"
	ActivityKindTeamAssigned  ActivityKind = "team_assigned"
	ActivityKindNoteAdded     ActivityKind = "note_added"
	ActivityKindConverted     ActivityKind = "converted"
	ActivityKindCustom        ActivityKind = "custom"
)

// AllActivityKinds returns all valid activity kinds
func AllActivityKinds() []ActivityKind {
	return []ActivityKind{
		ActivityKindCreated,
		ActivityKindStatusChanged,
		ActivityKindAssigned,
		ActivityKindTeamAssigned,
		ActivityKindNoteAdded,
		ActivityKindConverted,
		ActivityKindCustom,
	}
}

// IsValid checks if the activity kind is valid
func (k ActivityKind) IsValid() bool {
	switch k {
	case ActivityKindCreated,
		ActivityKindStatusChanged,
		ActivityKindAssigned,
		ActivityKindTeamAssigned,
		ActivityKindNoteAdded,
		ActivityKindConverted,
		ActivityKindCustom:
		return true
	default:
		return false
	}
}

// String returns the string representation of the activity kind
func (k ActivityKind) String() string {
	return string(k)
}

// ParseActivityKind parses a string into an ActivityKind
func ParseActivityKind(s string) (ActivityKind, error) {
	kind := ActivityKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid activity kind: %s", s)
	}
	return kind, nil
}
