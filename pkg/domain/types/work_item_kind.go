package types

import "fmt"

// WorkItemKind represents the kind of a work item
type WorkItemKind string

const (
	WorkItemKindLead  WorkItemKind = "lead"
	WorkItemKindOrder WorkItemKind = "order"
)

// AllWorkItemKinds returns all valid work item kinds
func AllWorkItemKinds() []WorkItemKind {
	return []WorkItemKind{
		WorkItemKindLead,
		WorkItemKindOrder,
	}
}

// IsValid checks if the work item kind is valid
func (k WorkItemKind) IsValid() bool {
	switch k {
	case WorkItemKindLead,
		WorkItemKindOrder:
		return true
	default:
		return false
	}
}

// String returns the string representation of the work item kind
func (k WorkItemKind) String() string {
	return string(k)
}

// ParseWorkItemKind parses a string into a WorkItemKind
func ParseWorkItemKind(s string) (WorkItemKind, error) {
	kind := WorkItemKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid work item kind: %s", s)
	}
	return kind, nil
}
