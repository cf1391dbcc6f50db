package handler

import (
	"net/http"

	"github.com/pkordes/guestdesk/internal/domain"
)

// LoginRequest is the body of POST /session.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login handles POST /session. Unknown emails and wrong passphrases both
// answer 401 invalid_credentials.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body LoginRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	u, err := s.sessions.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// getSession handles GET /session and returns the signed-in user.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	u, err := s.actor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if u == nil {
		s.writeError(w, r, domain.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// logout handles DELETE /session.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Logout(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
