package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/guestdesk/internal/domain"
	"github.com/pkordes/guestdesk/internal/repo"
	"github.com/pkordes/guestdesk/internal/store"
)

var t0 = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

// fixture is a small, consistent store with a controllable clock:
//
//	dorm1 capacity 2, holds guest2
//	dorm2 capacity 1, empty
//	dorm3 capacity 1, holds guest3 (full)
//	guest1 unassigned, volunteer usr1
type fixture struct {
	store *store.Store
	now   time.Time
	rec   *fakeRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{now: t0, rec: &fakeRecorder{}}
	ids := 0
	st, err := store.New(fixtureSeed(),
		store.WithClock(func() time.Time { return f.now }),
		store.WithIDFunc(func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		}),
	)
	require.NoError(t, err)
	f.store = st
	return f
}

func fixtureSeed() store.Seed {
	before := t0.Add(-time.Hour)
	checkIn := t0.Add(-2 * time.Hour)
	old := "Registered"
	return store.Seed{
		Users: []domain.User{
			{ID: "usr1", Name: "Ravi Kumar", Email: "ravi@example.com", Role: domain.RoleVolunteer, IsActive: true},
			{ID: "usr2", Name: "Priya Sharma", Email: "priya@example.com", Role: domain.RoleVolunteer},
			{ID: "usr3", Name: "Amit Patel", Email: "amit@example.com", Role: domain.RoleDesk, IsActive: true},
			{ID: "usr4", Name: "Neha Singh", Email: "neha@example.com", Role: domain.RoleCoordinator, IsActive: true},
			{ID: "usr5", Name: "Vikram Malhotra", Email: "vikram@example.com", Role: domain.RoleManager, IsActive: true},
		},
		Guests: []domain.Guest{
			{ID: "guest1", Name: "Rahul Verma", Type: domain.GuestTypeNormal, Status: domain.StatusRegistered,
				GroupSize: 1, AssignedVolunteers: []string{"usr1"}, PaymentStatus: domain.PaymentPending,
				LastUpdated: before, LastUpdatedBy: "usr3"},
			{ID: "guest2", Name: "Sophia Chen", Type: domain.GuestTypeForeign, Status: domain.StatusCheckedIn,
				DormID: "dorm1", GroupSize: 1, AssignedVolunteers: []string{"usr2"}, PaymentStatus: domain.PaymentPaid,
				CheckInTime: &checkIn, LastUpdated: before.Add(-time.Hour), LastUpdatedBy: "usr3"},
			{ID: "guest3", Name: "Dance Troupe", Type: domain.GuestTypeEvents, Status: domain.StatusRegistered,
				DormID: "dorm3", GroupSize: 5, AssignedVolunteers: []string{}, PaymentStatus: domain.PaymentNA,
				LastUpdated: before.Add(-2 * time.Hour), LastUpdatedBy: "usr5"},
		},
		Dorms: []domain.Dorm{
			{ID: "dorm1", Name: "G Block - 101", Capacity: 2, OccupiedBeds: 1, Guests: []string{"guest2"},
				LastUpdated: before, LastUpdatedBy: "usr3"},
			{ID: "dorm2", Name: "G Block - 102", Capacity: 1, Guests: []string{},
				LastUpdated: before, LastUpdatedBy: "usr4"},
			{ID: "dorm3", Name: "H Block - 201", Capacity: 1, OccupiedBeds: 1, Guests: []string{"guest3"},
				LastUpdated: before, LastUpdatedBy: "usr5"},
		},
		Updates: []domain.Update{
			{ID: "seed-1", Timestamp: t0.Add(-3 * time.Hour), UpdateType: domain.UpdateGuestAdded,
				EntityID: "guest1", EntityType: domain.EntityGuest, NewValue: "Rahul Verma",
				UpdatedBy: "usr3", UpdatedByName: "Amit Patel", UpdatedByRole: domain.RoleDesk},
			{ID: "seed-2", Timestamp: t0.Add(-2 * time.Hour), UpdateType: domain.UpdateGuestStatus,
				EntityID: "guest2", EntityType: domain.EntityGuest, OldValue: &old, NewValue: "Checked-in",
				UpdatedBy: "usr3", UpdatedByName: "Amit Patel", UpdatedByRole: domain.RoleDesk},
			{ID: "seed-3", Timestamp: t0.Add(-4 * time.Hour), UpdateType: domain.UpdateDormAdded,
				EntityID: "dorm2", EntityType: domain.EntityDorm, NewValue: "G Block - 102",
				UpdatedBy: "usr5", UpdatedByName: "Vikram Malhotra", UpdatedByRole: domain.RoleManager},
		},
	}
}

func (f *fixture) user(t *testing.T, id string) *domain.User {
	t.Helper()
	u, ok := f.store.UserByID(id)
	require.True(t, ok, "user %s", id)
	return &u
}

func (f *fixture) guest(t *testing.T, id string) domain.Guest {
	t.Helper()
	g, ok := f.store.GuestByID(id)
	require.True(t, ok, "guest %s", id)
	return g
}

func (f *fixture) dorm(t *testing.T, id string) domain.Dorm {
	t.Helper()
	d, ok := f.store.DormByID(id)
	require.True(t, ok, "dorm %s", id)
	return d
}

func (f *fixture) occupiedBeds() int {
	total := 0
	for _, d := range f.store.Dorms() {
		total += d.OccupiedBeds
	}
	return total
}

// fakeRecorder captures what services report to metrics.
type fakeRecorder struct {
	mutations []string
	errs      []error
	records   []domain.Update
}

func (r *fakeRecorder) ObserveMutation(op string, err error) {
	r.mutations = append(r.mutations, op)
	r.errs = append(r.errs, err)
}

func (r *fakeRecorder) ObserveRecords(records []domain.Update) {
	r.records = append(r.records, records...)
}

// mockSessionRepo is a hand-written test double for repo.SessionRepo.
// Each method is a function field; set only the ones your test needs.
type mockSessionRepo struct {
	get    func(ctx context.Context, key string) (string, error)
	set    func(ctx context.Context, key, value string) error
	delete func(ctx context.Context, key string) error
}

func (m *mockSessionRepo) Get(ctx context.Context, key string) (string, error) {
	return m.get(ctx, key)
}
func (m *mockSessionRepo) Set(ctx context.Context, key, value string) error {
	return m.set(ctx, key, value)
}
func (m *mockSessionRepo) Delete(ctx context.Context, key string) error {
	return m.delete(ctx, key)
}

// compile-time check: mockSessionRepo must satisfy repo.SessionRepo.
var _ repo.SessionRepo = (*mockSessionRepo)(nil)

// memSessionRepo returns a mockSessionRepo backed by a map.
func memSessionRepo(kv map[string]string) *mockSessionRepo {
	return &mockSessionRepo{
		get: func(_ context.Context, key string) (string, error) {
			v, ok := kv[key]
			if !ok {
				return "", domain.ErrNotFound
			}
			return v, nil
		},
		set: func(_ context.Context, key, value string) error {
			kv[key] = value
			return nil
		},
		delete: func(_ context.Context, key string) error {
			delete(kv, key)
			return nil
		},
	}
}
