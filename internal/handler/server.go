// Package handler implements the HTTP handlers for the guestdesk API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (guest.go, dorm.go, etc.) but share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/guestdesk/internal/domain"
	"github.com/pkordes/guestdesk/internal/filter"
)

// GuestServicer defines the guest operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the store or service layer.
type GuestServicer interface {
	List(ctx context.Context, c filter.GuestCriteria) ([]domain.Guest, error)
	GetByID(ctx context.Context, id string) (domain.Guest, error)
	UpdatesFor(ctx context.Context, id string) ([]domain.Update, error)
	Permissions(ctx context.Context, actor *domain.User, id string) ([]domain.Action, error)
	Create(ctx context.Context, actor *domain.User, g domain.Guest) (domain.Guest, error)
	Update(ctx context.Context, actor *domain.User, g domain.Guest) (domain.Guest, error)
}

// DormServicer defines the dorm operations the handlers depend on.
type DormServicer interface {
	List(ctx context.Context, c filter.DormCriteria) ([]domain.Dorm, error)
	GetByID(ctx context.Context, id string) (domain.Dorm, error)
	UpdatesFor(ctx context.Context, id string) ([]domain.Update, error)
	Permissions(ctx context.Context, actor *domain.User, id string) ([]domain.Action, error)
	Create(ctx context.Context, actor *domain.User, d domain.Dorm) (domain.Dorm, error)
	Update(ctx context.Context, actor *domain.User, d domain.Dorm) (domain.Dorm, error)
}

// UpdateServicer defines the audit log operations the handlers depend on.
type UpdateServicer interface {
	ListPaged(ctx context.Context, actor *domain.User, c filter.UpdateCriteria, p domain.PaginationParams) ([]domain.Update, int, error)
	ByDay(ctx context.Context, actor *domain.User, c filter.UpdateCriteria, loc *time.Location) ([]filter.DayGroup, error)
	Export(ctx context.Context, actor *domain.User, c filter.UpdateCriteria) ([]domain.ExportRow, error)
}

// UserServicer defines the user directory operations.
type UserServicer interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
}

// SessionServicer tracks the signed-in user.
type SessionServicer interface {
	Login(ctx context.Context, email, passphrase string) (domain.User, error)
	CurrentUser(ctx context.Context) (*domain.User, error)
	Logout(ctx context.Context) error
}

// DashboardServicer builds the landing-page summary.
type DashboardServicer interface {
	Summary(ctx context.Context, actor *domain.User) (domain.DashboardSummary, error)
}

// Deps lists everything Server needs. Location controls how the audit log
// is grouped by day; nil means UTC. Logger may be nil.
type Deps struct {
	Guests    GuestServicer
	Dorms     DormServicer
	Updates   UpdateServicer
	Users     UserServicer
	Sessions  SessionServicer
	Dashboard DashboardServicer
	Location  *time.Location
	Logger    *slog.Logger
}

// Server serves every API endpoint. Wire it in main.go via Routes().
type Server struct {
	guests    GuestServicer
	dorms     DormServicer
	updates   UpdateServicer
	users     UserServicer
	sessions  SessionServicer
	dashboard DashboardServicer
	loc       *time.Location
	log       *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		guests:    d.Guests,
		dorms:     d.Dorms,
		updates:   d.Updates,
		users:     d.Users,
		sessions:  d.Sessions,
		dashboard: d.Dashboard,
		loc:       loc,
		log:       log,
	}
}

// Routes returns the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)

	r.Route("/session", func(r chi.Router) {
		r.Post("/", s.login)
		r.Get("/", s.getSession)
		r.Delete("/", s.logout)
	})

	r.Get("/users", s.listUsers)
	r.Get("/users/{userId}", s.getUser)

	r.Route("/guests", func(r chi.Router) {
		r.Get("/", s.listGuests)
		r.Post("/", s.createGuest)
		r.Route("/{guestId}", func(r chi.Router) {
			r.Get("/", s.getGuest)
			r.Put("/", s.updateGuest)
			r.Get("/updates", s.listGuestUpdates)
			r.Get("/permissions", s.getGuestPermissions)
		})
	})

	r.Route("/dorms", func(r chi.Router) {
		r.Get("/", s.listDorms)
		r.Post("/", s.createDorm)
		r.Route("/{dormId}", func(r chi.Router) {
			r.Get("/", s.getDorm)
			r.Put("/", s.updateDorm)
			r.Get("/updates", s.listDormUpdates)
			r.Get("/permissions", s.getDormPermissions)
		})
	})

	r.Route("/updates", func(r chi.Router) {
		r.Get("/", s.listUpdates)
		r.Get("/by-day", s.listUpdatesByDay)
		r.Get("/export", s.exportUpdates)
	})

	r.Get("/dashboard", s.getDashboard)

	return r
}

// actor resolves the signed-in user for r. A nil user with a nil error means
// nobody is signed in; the services decide whether that is allowed.
func (s *Server) actor(r *http.Request) (*domain.User, error) {
	return s.sessions.CurrentUser(r.Context())
}

// mutator resolves the signed-in user for a write and answers 401 when
// nobody is signed in. Writes call it before reading the body.
func (s *Server) mutator(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	actor, err := s.actor(r)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	if actor == nil {
		s.writeError(w, r, domain.ErrUnauthenticated)
		return nil, false
	}
	return actor, true
}
