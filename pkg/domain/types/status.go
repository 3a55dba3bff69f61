package types

import "fmt"

// Status represents the lifecycle status of a work item. The set of valid
// values depends on the work item kind.
type Status string

// Lead statuses
const (
	LeadStatusNew       Status = "new"
	LeadStatusContacted Status = "contacted"
	LeadStatusOfferSent Status = "offer_sent"
	LeadStatusWon       Status = "won"
	LeadStatusLost      Status = "lost"
)

// Order statuses
const (
	OrderStatusNew        Status = "new"
	OrderStatusPlanned    Status = "planned"
	OrderStatusInProgress Status = "in_progress"
	OrderStatusCompleted  Status = "completed"
	OrderStatusInvoiced   Status = "invoiced"
)

// statusLabels maps statuses to their display labels per kind
var statusLabels = map[WorkItemKind]map[Status]string{
	WorkItemKindLead: {
		LeadStatusNew:       "Ny",
		LeadStatusContacted: "Kontaktad",
		LeadStatusOfferSent: "Offert skickad",
		LeadStatusWon:       "Vunnen",
		LeadStatusLost:      "Förlorad",
	},
	WorkItemKindOrder: {
		OrderStatusNew:        "Ny",
		OrderStatusPlanned:    "Planerad",
		OrderStatusInProgress: "Pågående",
		OrderStatusCompleted:  "Slutförd",
		OrderStatusInvoiced:   "Fakturerad",
	},
}

// StatusesFor returns the ordered status set for the given work item kind
func StatusesFor(kind WorkItemKind) []Status {
	switch kind {
	case WorkItemKindLead:
		return []Status{
			LeadStatusNew,
			LeadStatusContacted,
			LeadStatusOfferSent,
			LeadStatusWon,
			LeadStatusLost,
		}
	case WorkItemKindOrder:
		return []Status{
			OrderStatusNew,
			OrderStatusPlanned,
			OrderStatusInProgress,
			OrderStatusCompleted,
			OrderStatusInvoiced,
		}
	default:
		return nil
	}
}

// InitialStatusFor returns the status a new work item of the given kind
// starts in
func InitialStatusFor(kind WorkItemKind) Status {
	statuses := StatusesFor(kind)
	if len(statuses) == 0 {
		return ""
	}
	return statuses[0]
}

// ValidFor checks if the status is a member of the kind's status set
func (s Status) ValidFor(kind WorkItemKind) bool {
	for _, valid := range StatusesFor(kind) {
		if s == valid {
			return true
		}
	}
	return false
}

// Label returns the display label for the status within the given kind.
// Falls back to the raw value for unknown combinations.
func (s Status) Label(kind WorkItemKind) string {
	if labels, ok := statusLabels[kind]; ok {
		if label, ok := labels[s]; ok {
			return label
		}
	}
	return string(s)
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a string into a Status valid for the given kind
func ParseStatus(kind WorkItemKind, s string) (Status, error) {
	status := Status(s)
	if !status.ValidFor(kind) {
		return "", fmt.Errorf("invalid status %q for work item kind %q", s, kind)
	}
	return status, nil
}
