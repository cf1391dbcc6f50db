package handler

import "net/http"

// getDashboard handles GET /dashboard for the signed-in user.
func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sum, err := s.dashboard.Summary(r.Context(), actor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
