package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/workyard-lab/workyard/pkg/domain/model"
)

func (s *Server) addNote(w http.ResponseWriter, r *http.Request) {
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
		Body string `json:"body"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	note, err := s.uc.Note.Add(r.Context(), orgID, id, req.Body)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, renderNote(note))
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
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

	notes, err := s.uc.Note.List(r.Context(), orgID, id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]noteResponse, len(notes))
	for i, n := range notes {
		resp[i] = renderNote(n)
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"notes": resp})
}

func (s *Server) updateNote(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	noteID := model.NoteID(chi.URLParam(r, "noteID"))

	var req struct {
		Body string `json:"body"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	note, err := s.uc.Note.Update(r.Context(), orgID, noteID, req.Body)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, renderNote(note))
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	noteID := model.NoteID(chi.URLParam(r, "noteID"))

	if err := s.uc.Note.Delete(r.Context(), orgID, noteID); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
