package http

import (
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"github.com/workyard-lab/workyard/pkg/usecase"
)

func (s *Server) createWorkItem(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Kind        string   `json:"kind"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Estimate    *float64 `json:"estimate"`
		Source      string   `json:"source"`
		CustomerID  string   `json:"customer_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	item, err := s.uc.WorkItem.Create(r.Context(), orgID, &usecase.CreateWorkItemInput{
		Kind:        types.WorkItemKind(req.Kind),
		Title:       req.Title,
		Description: req.Description,
		Estimate:    req.Estimate,
		Source:      req.Source,
		CustomerID:  req.CustomerID,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, renderWorkItem(item))
}

func (s *Server) listWorkItems(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	opts, err := listOptionsFromQuery(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	items, err := s.uc.WorkItem.List(r.Context(), orgID, opts...)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"work_items": renderWorkItems(items)})
}

// listOptionsFromQuery translates query parameters into list filters
func listOptionsFromQuery(r *http.Request) ([]interfaces.ListWorkItemOption, error) {
	var opts []interfaces.ListWorkItemOption
	q := r.URL.Query()

	if v := q.Get("kind"); v != "" {
		kind, err := types.ParseWorkItemKind(v)
		if err != nil {
			return nil, goerr.Wrap(usecase.ErrInvalidArgument, "invalid kind filter", goerr.V("kind", v))
		}
		opts = append(opts, interfaces.WithKind(kind))

		if sv := q.Get("status"); sv != "" {
			status, err := types.ParseStatus(kind, sv)
			if err != nil {
				return nil, goerr.Wrap(usecase.ErrInvalidArgument, "invalid status filter", goerr.V("status", sv))
			}
			opts = append(opts, interfaces.WithStatus(status))
		}
	} else if q.Get("status") != "" {
		return nil, goerr.Wrap(usecase.ErrInvalidArgument, "status filter requires kind filter")
	}

	if v := q.Get("assignee"); v != "" {
		opts = append(opts, interfaces.WithAssignee(types.UserID(v)))
	}
	if v := q.Get("team"); v != "" {
		opts = append(opts, interfaces.WithTeam(types.TeamID(v)))
	}
	if q.Get("unassigned") == "true" {
		opts = append(opts, interfaces.WithUnassigned())
	}
	if v := q.Get("q"); v != "" {
		opts = append(opts, interfaces.WithTitleContains(v))
	}
	if v := q.Get("created_after"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, goerr.Wrap(usecase.ErrInvalidArgument, "invalid created_after filter", goerr.V("value", v))
		}
		opts = append(opts, interfaces.WithCreatedAfter(t))
	}
	if v := q.Get("created_before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, goerr.Wrap(usecase.ErrInvalidArgument, "invalid created_before filter", goerr.V("value", v))
		}
		opts = append(opts, interfaces.WithCreatedBefore(t))
	}

	return opts, nil
}

func (s *Server) getWorkItem(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	id, err := itemIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	item, err := s.uc.WorkItem.Get(r.Context(), orgID, id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, renderWorkItem(item))
}

func (s *Server) updateWorkItemDetails(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	id, err := itemIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Estimate    *float64 `json:"estimate"`
		Source      *string  `json:"source"`
		CustomerID  *string  `json:"customer_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	item, err := s.uc.WorkItem.UpdateDetails(r.Context(), orgID, id, &usecase.UpdateDetailsInput{
		Title:       req.Title,
		Description: req.Description,
		Estimate:    req.Estimate,
		Source:      req.Source,
		CustomerID:  req.CustomerID,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, renderWorkItem(item))
}

func (s *Server) transitionWorkItem(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	id, err := itemIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	item, err := s.uc.WorkItem.Transition(r.Context(), orgID, id, types.Status(req.Status))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, renderWorkItem(item))
}

func (s *Server) assignUser(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	id, err := itemIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		UserID string `json:"user_id"` // empty clears the assignment
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	item, err := s.uc.WorkItem.AssignUser(r.Context(), orgID, id, types.UserID(req.UserID))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, renderWorkItem(item))
}

func (s *Server) assignTeam(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	id, err := itemIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		TeamID string `json:"team_id"` // empty clears the assignment
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	item, err := s.uc.WorkItem.AssignTeam(r.Context(), orgID, id, types.TeamID(req.TeamID))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, renderWorkItem(item))
}

func (s *Server) convertLead(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	id, err := itemIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	order, err := s.uc.WorkItem.ConvertLead(r.Context(), orgID, id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, renderWorkItem(order))
}

func (s *Server) listActivities(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	id, err := itemIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	activities, err := s.uc.WorkItem.ListActivities(r.Context(), orgID, id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"activities": renderActivities(activities)})
}
