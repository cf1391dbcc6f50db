package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/guestdesk/internal/domain"
)

// PermissionsResponse lists the actions the signed-in user may perform on an
// entity. It is advisory; mutations enforce the same rules.
type PermissionsResponse struct {
	Actions []domain.Action `json:"actions"`
}

// listGuests handles GET /guests.
// Supports the facets ?search=, ?type=, ?status=, ?dorm= and ?volunteer=;
// repeat a facet to match any of several values.
func (s *Server) listGuests(w http.ResponseWriter, r *http.Request) {
	c, err := guestCriteria(r.URL.Query())
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	guests, err := s.guests.List(r.Context(), c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, guests)
}

// createGuest handles POST /guests.
func (s *Server) createGuest(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.mutator(w, r)
	if !ok {
		return
	}
	var body domain.Guest
	if !decodeJSON(w, r, &body) {
		return
	}
	created, err := s.guests.Create(r.Context(), actor, body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// getGuest handles GET /guests/{guestId}.
func (s *Server) getGuest(w http.ResponseWriter, r *http.Request) {
	g, err := s.guests.GetByID(r.Context(), chi.URLParam(r, "guestId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// updateGuest handles PUT /guests/{guestId}.
// The body is the full desired guest; the path ID wins over any ID in the body.
func (s *Server) updateGuest(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.mutator(w, r)
	if !ok {
		return
	}
	var body domain.Guest
	if !decodeJSON(w, r, &body) {
		return
	}
	body.ID = chi.URLParam(r, "guestId")

	updated, err := s.guests.Update(r.Context(), actor, body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// listGuestUpdates handles GET /guests/{guestId}/updates.
func (s *Server) listGuestUpdates(w http.ResponseWriter, r *http.Request) {
	updates, err := s.guests.UpdatesFor(r.Context(), chi.URLParam(r, "guestId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updates)
}

// getGuestPermissions handles GET /guests/{guestId}/permissions.
func (s *Server) getGuestPermissions(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	actions, err := s.guests.Permissions(r.Context(), actor, chi.URLParam(r, "guestId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PermissionsResponse{Actions: actions})
}
