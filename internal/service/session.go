package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/guestdesk/internal/domain"
	"github.com/pkordes/guestdesk/internal/repo"
	"github.com/pkordes/guestdesk/internal/store"
)

// CurrentUserKey is the session key holding the signed-in user.
const CurrentUserKey = "currentUser"

// SessionService tracks the signed-in user. Login checks one shared
// passphrase for the whole team; it identifies the operator, it is not a
// security boundary.
type SessionService struct {
	sessions   repo.SessionRepo
	store      *store.Store
	passphrase string
	log        *slog.Logger
}

// NewSessionService constructs a SessionService. log may be nil.
func NewSessionService(sessions repo.SessionRepo, st *store.Store, passphrase string, log *slog.Logger) *SessionService {
	return &SessionService{sessions: sessions, store: st, passphrase: passphrase, log: orDefault(log)}
}

// Login signs in the user whose email matches (case-insensitively) when the
// passphrase is correct. Both failure modes return
// domain.ErrInvalidCredentials so callers cannot tell them apart.
func (s *SessionService) Login(ctx context.Context, email, passphrase string) (domain.User, error) {
	if subtle.ConstantTimeCompare([]byte(passphrase), []byte(s.passphrase)) != 1 {
		return domain.User{}, fmt.Errorf("service.SessionService.Login: %w", domain.ErrInvalidCredentials)
	}
	email = strings.TrimSpace(email)
	for _, u := range s.store.Users() {
		if strings.EqualFold(u.Email, email) {
			if err := s.SetCurrentUser(ctx, &u); err != nil {
				return domain.User{}, fmt.Errorf("service.SessionService.Login: %w", err)
			}
			s.log.InfoContext(ctx, "user signed in",
				slog.String("user_id", u.ID),
				slog.String("role", string(u.Role)),
			)
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("service.SessionService.Login: %w", domain.ErrInvalidCredentials)
}

// SetCurrentUser persists u as the signed-in user. A nil u clears the session.
func (s *SessionService) SetCurrentUser(ctx context.Context, u *domain.User) error {
	if u == nil {
		if err := s.sessions.Delete(ctx, CurrentUserKey); err != nil {
			return fmt.Errorf("service.SessionService.SetCurrentUser: %w", err)
		}
		return nil
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("service.SessionService.SetCurrentUser: encode: %w", err)
	}
	if err := s.sessions.Set(ctx, CurrentUserKey, string(raw)); err != nil {
		return fmt.Errorf("service.SessionService.SetCurrentUser: %w", err)
	}
	return nil
}

// CurrentUser returns the signed-in user, or nil when nobody is signed in.
// The stored copy is re-resolved against the store so role changes made since
// login are picked up; a stored user that no longer resolves, or a value
// that cannot be decoded, clears the session.
func (s *SessionService) CurrentUser(ctx context.Context) (*domain.User, error) {
	raw, err := s.sessions.Get(ctx, CurrentUserKey)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("service.SessionService.CurrentUser: %w", err)
	}

	var stored domain.User
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.log.WarnContext(ctx, "discarding unreadable session", slog.String("error", err.Error()))
		return nil, s.clear(ctx)
	}
	u, ok := s.store.UserByID(stored.ID)
	if !ok {
		s.log.WarnContext(ctx, "discarding session for unknown user", slog.String("user_id", stored.ID))
		return nil, s.clear(ctx)
	}
	return &u, nil
}

// Logout clears the session. Logging out twice is not an error.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.SetCurrentUser(ctx, nil); err != nil {
		return fmt.Errorf("service.SessionService.Logout: %w", err)
	}
	return nil
}

func (s *SessionService) clear(ctx context.Context) error {
	if err := s.sessions.Delete(ctx, CurrentUserKey); err != nil {
		return fmt.Errorf("service.SessionService.CurrentUser: %w", err)
	}
	return nil
}
