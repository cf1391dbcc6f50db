package handler

import (
	"net/http"

	"github.com/pkordes/guestdesk/internal/domain"
)

// Pagination describes the window returned by a paged list.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// UpdateListResponse is the body of GET /updates.
type UpdateListResponse struct {
	Data       []domain.Update `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// listUpdates handles GET /updates.
// Supports ?search=, ?type=, ?user=, ?entity= plus ?page= and ?limit=
// (defaults: page=1, limit=20, max=100). Requires view_updates.
func (s *Server) listUpdates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, err := updateCriteria(q)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	params, err := pagination(q)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	actor, err := s.actor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	updates, total, err := s.updates.ListPaged(r.Context(), actor, c, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, UpdateListResponse{
		Data: updates,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// listUpdatesByDay handles GET /updates/by-day. It takes the same facets as
// GET /updates and groups every match by calendar day in the event's
// time zone, newest day first.
func (s *Server) listUpdatesByDay(w http.ResponseWriter, r *http.Request) {
	c, err := updateCriteria(r.URL.Query())
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	actor, err := s.actor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	groups, err := s.updates.ByDay(r.Context(), actor, c, s.loc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}
