package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/guestdesk/internal/domain"
)

// listDorms handles GET /dorms. Supports ?search= and ?availability=.
func (s *Server) listDorms(w http.ResponseWriter, r *http.Request) {
	c, err := dormCriteria(r.URL.Query())
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	dorms, err := s.dorms.List(r.Context(), c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dorms)
}

// createDorm handles POST /dorms.
func (s *Server) createDorm(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.mutator(w, r)
	if !ok {
		return
	}
	var body domain.Dorm
	if !decodeJSON(w, r, &body) {
		return
	}
	created, err := s.dorms.Create(r.Context(), actor, body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// getDorm handles GET /dorms/{dormId}.
func (s *Server) getDorm(w http.ResponseWriter, r *http.Request) {
	d, err := s.dorms.GetByID(r.Context(), chi.URLParam(r, "dormId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// updateDorm handles PUT /dorms/{dormId}. Only name and capacity are
// editable; occupancy follows guest assignment.
func (s *Server) updateDorm(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.mutator(w, r)
	if !ok {
		return
	}
	var body domain.Dorm
	if !decodeJSON(w, r, &body) {
		return
	}
	body.ID = chi.URLParam(r, "dormId")

	updated, err := s.dorms.Update(r.Context(), actor, body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// listDormUpdates handles GET /dorms/{dormId}/updates.
func (s *Server) listDormUpdates(w http.ResponseWriter, r *http.Request) {
	updates, err := s.dorms.UpdatesFor(r.Context(), chi.URLParam(r, "dormId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updates)
}

// getDormPermissions handles GET /dorms/{dormId}/permissions.
func (s *Server) getDormPermissions(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	actions, err := s.dorms.Permissions(r.Context(), actor, chi.URLParam(r, "dormId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PermissionsResponse{Actions: actions})
}
