package http

import (
	"time"

	"github.com/workyard-lab/workyard/pkg/domain/model"
)

// Response shapes for the REST API. Status labels are rendered alongside
// the raw values so clients never need the label table.

type workItemResponse struct {
	ID          int64    `json:"id"`
	Kind        string   `json:"kind"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Estimate    *float64 `json:"estimate,omitempty"`
	Status      string   `json:"status"`
	StatusLabel string   `json:"status_label"`
	Source      string   `json:"source,omitempty"`
	CustomerID  string   `json:"customer_id,omitempty"`
	AssigneeID  string   `json:"assignee_id,omitempty"`
	TeamID      string   `json:"team_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func renderWorkItem(item *model.WorkItem) workItemResponse {
	return workItemResponse{
		ID:          item.ID,
		Kind:        item.Kind.String(),
		Title:       item.Title,
		Description: item.Description,
		Estimate:    item.Estimate,
		Status:      item.Status.String(),
		StatusLabel: item.Status.Label(item.Kind),
		Source:      item.Source,
		CustomerID:  item.CustomerID,
		AssigneeID:  item.AssigneeID.String(),
		TeamID:      string(item.TeamID),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func renderWorkItems(items []*model.WorkItem) []workItemResponse {
	out := make([]workItemResponse, len(items))
	for i, item := range items {
		out[i] = renderWorkItem(item)
	}
	return out
}

type activityResponse struct {
	ID          string    `json:"id"`
	WorkItemID  int64     `json:"work_item_id"`
	ActorID     string    `json:"actor_id,omitempty"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	OldValue    string    `json:"old_value,omitempty"`
	NewValue    string    `json:"new_value,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func renderActivities(activities []*model.Activity) []activityResponse {
	out := make([]activityResponse, len(activities))
	for i, a := range activities {
		out[i] = activityResponse{
			ID:          string(a.ID),
			WorkItemID:  a.WorkItemID,
			ActorID:     a.ActorID.String(),
			Kind:        a.Kind.String(),
			Description: a.Description,
			OldValue:    a.OldValue,
			NewValue:    a.NewValue,
			CreatedAt:   a.CreatedAt,
		}
	}
	return out
}

type noteResponse struct {
	ID         string    `json:"id"`
	WorkItemID int64     `json:"work_item_id"`
	AuthorID   string    `json:"author_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func renderNote(n *model.Note) noteResponse {
	return noteResponse{
		ID:         string(n.ID),
		WorkItemID: n.WorkItemID,
		AuthorID:   n.AuthorID.String(),
		Body:       n.Body,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body,omitempty"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func renderNotification(n *model.Notification) notificationResponse {
	return notificationResponse{
		ID:        string(n.ID),
		Subject:   n.Subject,
		Body:      n.Body,
		Link:      n.Link,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

type locationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type sessionResponse struct {
	ID          string            `json:"id"`
	WorkItemID  int64             `json:"work_item_id"`
	WorkerID    string            `json:"worker_id"`
	WorkType    string            `json:"work_type,omitempty"`
	StartedAt   time.Time         `json:"started_at"`
	EndedAt     *time.Time        `json:"ended_at,omitempty"`
	Location    *locationResponse `json:"location,omitempty"`
	Environment string            `json:"environment,omitempty"`
}

func renderSession(s *model.TimeSession) sessionResponse {
	resp := sessionResponse{
		ID:          string(s.ID),
		WorkItemID:  s.WorkItemID,
		WorkerID:    s.WorkerID.String(),
		WorkType:    string(s.WorkType),
		StartedAt:   s.StartedAt,
		Environment: s.Environment,
	}
	if s.Location != nil {
		resp.Location = &locationResponse{Lat: s.Location.Lat, Lng: s.Location.Lng}
	}
	if !s.EndedAt.IsZero() {
		endedAt := s.EndedAt
		resp.EndedAt = &endedAt
	}
	return resp
}
