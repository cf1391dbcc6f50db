package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// listUsers handles GET /users.
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// getUser handles GET /users/{userId}.
func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.GetByID(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
