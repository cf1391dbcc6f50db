package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/guestdesk/internal/domain"
	"github.com/pkordes/guestdesk/internal/filter"
	"github.com/pkordes/guestdesk/internal/handler"
)

// ---- mocks -----------------------------------------------------------------
// Each mock is a test double for one Servicer interface.
// Set only the method fields your test needs.

type mockGuestServicer struct {
	list        func(ctx context.Context, c filter.GuestCriteria) ([]domain.Guest, error)
	getByID     func(ctx context.Context, id string) (domain.Guest, error)
	updatesFor  func(ctx context.Context, id string) ([]domain.Update, error)
	permissions func(ctx context.Context, actor *domain.User, id string) ([]domain.Action, error)
	create      func(ctx context.Context, actor *domain.User, g domain.Guest) (domain.Guest, error)
	update      func(ctx context.Context, actor *domain.User, g domain.Guest) (domain.Guest, error)
}

func (m *mockGuestServicer) List(ctx context.Context, c filter.GuestCriteria) ([]domain.Guest, error) {
	return m.list(ctx, c)
}
func (m *mockGuestServicer) GetByID(ctx context.Context, id string) (domain.Guest, error) {
	return m.getByID(ctx, id)
}
func (m *mockGuestServicer) UpdatesFor(ctx context.Context, id string) ([]domain.Update, error) {
	return m.updatesFor(ctx, id)
}
func (m *mockGuestServicer) Permissions(ctx context.Context, actor *domain.User, id string) ([]domain.Action, error) {
	return m.permissions(ctx, actor, id)
}
func (m *mockGuestServicer) Create(ctx context.Context, actor *domain.User, g domain.Guest) (domain.Guest, error) {
	return m.create(ctx, actor, g)
}
func (m *mockGuestServicer) Update(ctx context.Context, actor *domain.User, g domain.Guest) (domain.Guest, error) {
	return m.update(ctx, actor, g)
}

var _ handler.GuestServicer = (*mockGuestServicer)(nil)

type mockDormServicer struct {
	list        func(ctx context.Context, c filter.DormCriteria) ([]domain.Dorm, error)
	getByID     func(ctx context.Context, id string) (domain.Dorm, error)
	updatesFor  func(ctx context.Context, id string) ([]domain.Update, error)
	permissions func(ctx context.Context, actor *domain.User, id string) ([]domain.Action, error)
	create      func(ctx context.Context, actor *domain.User, d domain.Dorm) (domain.Dorm, error)
	update      func(ctx context.Context, actor *domain.User, d domain.Dorm) (domain.Dorm, error)
}

func (m *mockDormServicer) List(ctx context.Context, c filter.DormCriteria) ([]domain.Dorm, error) {
	return m.list(ctx, c)
}
func (m *mockDormServicer) GetByID(ctx context.Context, id string) (domain.Dorm, error) {
	return m.getByID(ctx, id)
}
func (m *mockDormServicer) UpdatesFor(ctx context.Context, id string) ([]domain.Update, error) {
	return m.updatesFor(ctx, id)
}
func (m *mockDormServicer) Permissions(ctx context.Context, actor *domain.User, id string) ([]domain.Action, error) {
	return m.permissions(ctx, actor, id)
}
func (m *mockDormServicer) Create(ctx context.Context, actor *domain.User, d domain.Dorm) (domain.Dorm, error) {
	return m.create(ctx, actor, d)
}
func (m *mockDormServicer) Update(ctx context.Context, actor *domain.User, d domain.Dorm) (domain.Dorm, error) {
	return m.update(ctx, actor, d)
}

var _ handler.DormServicer = (*mockDormServicer)(nil)

type mockUpdateServicer struct {
	listPaged func(ctx context.Context, actor *domain.User, c filter.UpdateCriteria, p domain.PaginationParams) ([]domain.Update, int, error)
	byDay     func(ctx context.Context, actor *domain.User, c filter.UpdateCriteria, loc *time.Location) ([]filter.DayGroup, error)
	export    func(ctx context.Context, actor *domain.User, c filter.UpdateCriteria) ([]domain.ExportRow, error)
}

func (m *mockUpdateServicer) ListPaged(ctx context.Context, actor *domain.User, c filter.UpdateCriteria, p domain.PaginationParams) ([]domain.Update, int, error) {
	return m.listPaged(ctx, actor, c, p)
}
func (m *mockUpdateServicer) ByDay(ctx context.Context, actor *domain.User, c filter.UpdateCriteria, loc *time.Location) ([]filter.DayGroup, error) {
	return m.byDay(ctx, actor, c, loc)
}
func (m *mockUpdateServicer) Export(ctx context.Context, actor *domain.User, c filter.UpdateCriteria) ([]domain.ExportRow, error) {
	return m.export(ctx, actor, c)
}

var _ handler.UpdateServicer = (*mockUpdateServicer)(nil)

type mockUserServicer struct {
	list    func(ctx context.Context) ([]domain.User, error)
	getByID func(ctx context.Context, id string) (domain.User, error)
}

func (m *mockUserServicer) List(ctx context.Context) ([]domain.User, error) { return m.list(ctx) }
func (m *mockUserServicer) GetByID(ctx context.Context, id string) (domain.User, error) {
	return m.getByID(ctx, id)
}

var _ handler.UserServicer = (*mockUserServicer)(nil)

// mockSessionServicer defaults to "nobody signed in" when current is unset.
type mockSessionServicer struct {
	login   func(ctx context.Context, email, passphrase string) (domain.User, error)
	current func(ctx context.Context) (*domain.User, error)
	logout  func(ctx context.Context) error
}

func (m *mockSessionServicer) Login(ctx context.Context, email, passphrase string) (domain.User, error) {
	return m.login(ctx, email, passphrase)
}
func (m *mockSessionServicer) CurrentUser(ctx context.Context) (*domain.User, error) {
	if m.current == nil {
		return nil, nil
	}
	return m.current(ctx)
}
func (m *mockSessionServicer) Logout(ctx context.Context) error { return m.logout(ctx) }

var _ handler.SessionServicer = (*mockSessionServicer)(nil)

type mockDashboardServicer struct {
	summary func(ctx context.Context, actor *domain.User) (domain.DashboardSummary, error)
}

func (m *mockDashboardServicer) Summary(ctx context.Context, actor *domain.User) (domain.DashboardSummary, error) {
	return m.summary(ctx, actor)
}

var _ handler.DashboardServicer = (*mockDashboardServicer)(nil)

// ---- helpers ---------------------------------------------------------------

var (
	manager = &domain.User{ID: "usr1", Name: "Ravi Kumar", Role: domain.RoleManager}
	t0      = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
)

// signedIn returns a session mock reporting u as the current user.
func signedIn(u *domain.User) *mockSessionServicer {
	return &mockSessionServicer{
		current: func(context.Context) (*domain.User, error) { return u, nil },
	}
}

// newHTTPHandler wires a Server the same way main.go does. A nil Sessions
// dependency is replaced by a mock with nobody signed in.
func newHTTPHandler(d handler.Deps) http.Handler {
	if d.Sessions == nil {
		d.Sessions = &mockSessionServicer{}
	}
	return handler.NewServer(d).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}
