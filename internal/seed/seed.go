// Package seed provides the fixed dataset the dashboard starts with.
// All timestamps are offsets from the instant passed to Data, so the history
// always looks recent without depending on randomness.
package seed

import (
	"fmt"
	"time"

	"github.com/pkordes/guestdesk/internal/audit"
	"github.com/pkordes/guestdesk/internal/domain"
	"github.com/pkordes/guestdesk/internal/store"
)

type guestRow struct {
	id, name   string
	typ        domain.GuestType
	status     domain.GuestStatus
	dorm       string
	groupSize  int
	volunteer  string
	payment    domain.PaymentStatus
	updatedBy  string
	hoursAgo   int // since last update
	checkInAgo int // zero when the guest never checked in
}

var users = []domain.User{
	{ID: "usr1", Name: "Ravi Kumar", Email: "ravi@example.com", Role: domain.RoleVolunteer, IsActive: true},
	{ID: "usr2", Name: "Priya Sharma", Email: "priya@example.com", Role: domain.RoleVolunteer},
	{ID: "usr3", Name: "Amit Patel", Email: "amit@example.com", Role: domain.RoleDesk, IsActive: true},
	{ID: "usr4", Name: "Neha Singh", Email: "neha@example.com", Role: domain.RoleCoordinator, IsActive: true},
	{ID: "usr5", Name: "Vikram Malhotra", Email: "vikram@example.com", Role: domain.RoleManager, IsActive: true},
}

var dormRows = []struct {
	id, name  string
	capacity  int
	updatedBy string
	hoursAgo  int
}{
	{"dorm1", "G Block - 101", 4, "usr3", 5},
	{"dorm2", "G Block - 102", 4, "usr4", 9},
	{"dorm3", "G Block - 103", 6, "usr3", 14},
	{"dorm4", "H Block - 201", 2, "usr4", 20},
	{"dorm5", "H Block - 202", 2, "usr3", 27},
	{"dorm6", "K Block - 301", 8, "usr5", 33},
}

var guestRows = []guestRow{
	{"guest1", "Dr. Rajesh Khanna", domain.GuestTypeSpecial, domain.StatusCheckedIn, "dorm1", 1, "usr1", domain.PaymentNA, "usr3", 2, 40},
	{"guest2", "Sophia Chen", domain.GuestTypeForeign, domain.StatusCheckedIn, "dorm2", 1, "usr1", domain.PaymentPaid, "usr3", 3, 38},
	{"guest3", "Arjun Kapoor", domain.GuestTypeNormal, domain.StatusCheckedIn, "dorm3", 1, "usr2", domain.PaymentPaid, "usr4", 6, 36},
	{"guest4", "Kim Minji", domain.GuestTypeForeign, domain.StatusCheckedIn, "dorm1", 1, "usr1", domain.PaymentPaid, "usr3", 7, 30},
	{"guest5", "Rohan Mehta", domain.GuestTypeNormal, domain.StatusRegistered, "dorm2", 1, "usr2", domain.PaymentPending, "usr3", 11, 0},
	{"guest6", "Aishwarya Rao", domain.GuestTypeEvents, domain.StatusCheckedIn, "dorm3", 1, "usr1", domain.PaymentPaid, "usr4", 13, 26},
	{"guest7", "Mark Johnson", domain.GuestTypeForeign, domain.StatusCheckedIn, "dorm1", 1, "usr1", domain.PaymentPaid, "usr3", 16, 24},
	{"guest8", "Sanjay Dutt", domain.GuestTypeSpecial, domain.StatusCheckedIn, "dorm4", 1, "usr2", domain.PaymentNA, "usr4", 18, 22},
	{"guest9", "Technical Team Alpha", domain.GuestTypeWorkers, domain.StatusCheckedIn, "dorm3", 1, "usr1", domain.PaymentNA, "usr5", 21, 47},
	{"guest10", "Prof. Emma Wilson", domain.GuestTypeSpecial, domain.StatusCheckedIn, "dorm4", 1, "usr2", domain.PaymentNA, "usr3", 23, 44},
	{"guest11", "Rahul Singh", domain.GuestTypeVITians, domain.StatusCheckedIn, "dorm5", 1, "usr1", domain.PaymentNA, "usr4", 29, 50},
	{"guest12", "Sara Ahmed", domain.GuestTypeForeign, domain.StatusNoShow, "dorm3", 1, "usr2", domain.PaymentPaid, "usr3", 31, 0},
	{"guest13", "Dance Troupe", domain.GuestTypeEvents, domain.StatusCheckedIn, "dorm6", 5, "usr1", domain.PaymentPaid, "usr5", 35, 52},
	{"guest14", "Zoya Khan", domain.GuestTypeNormal, domain.StatusRegistered, "", 1, "usr2", domain.PaymentPending, "usr3", 44, 0},
	{"guest15", "Varun Dhawan", domain.GuestTypeSpecial, domain.StatusRegistered, "", 1, "usr1", domain.PaymentNA, "usr4", 60, 0},
}

// Data returns the seed dataset anchored at now. Every call returns fresh
// slices; the result always satisfies store.New's invariants.
func Data(now time.Time) store.Seed {
	ago := func(h int) time.Time { return now.Add(-time.Duration(h) * time.Hour) }

	us := make([]domain.User, len(users))
	for i, u := range users {
		u.LastActive = now
		if !u.IsActive {
			u.LastActive = now.Add(-time.Hour)
		}
		us[i] = u
	}

	dorms := make([]domain.Dorm, 0, len(dormRows))
	dormPos := make(map[string]int)
	for _, r := range dormRows {
		dormPos[r.id] = len(dorms)
		dorms = append(dorms, domain.Dorm{
			ID:            r.id,
			Name:          r.name,
			Capacity:      r.capacity,
			Guests:        []string{},
			LastUpdated:   ago(r.hoursAgo),
			LastUpdatedBy: r.updatedBy,
		})
	}

	guests := make([]domain.Guest, 0, len(guestRows))
	for _, r := range guestRows {
		g := domain.Guest{
			ID:                 r.id,
			Name:               r.name,
			Type:               r.typ,
			Status:             r.status,
			DormID:             r.dorm,
			GroupSize:          r.groupSize,
			AssignedVolunteers: []string{r.volunteer},
			PaymentStatus:      r.payment,
			LastUpdated:        ago(r.hoursAgo),
			LastUpdatedBy:      r.updatedBy,
		}
		if r.checkInAgo > 0 {
			t := ago(r.checkInAgo)
			g.CheckInTime = &t
		}
		if r.dorm != "" {
			d := &dorms[dormPos[r.dorm]]
			d.Guests = append(d.Guests, r.id)
			d.OccupiedBeds++
		}
		guests = append(guests, g)
	}

	return store.Seed{
		Users:   us,
		Guests:  guests,
		Dorms:   dorms,
		Updates: history(us, guests, dorms, now),
	}
}

// history replays plausible audit records for the seeded entities: each dorm
// and guest was added, guests were placed in their dorm, and checked-in
// guests have their status change and check-in.
func history(us []domain.User, guests []domain.Guest, dorms []domain.Dorm, now time.Time) []domain.Update {
	byID := make(map[string]domain.User, len(us))
	for _, u := range us {
		byID[u.ID] = u
	}
	names := func(id string) (string, bool) {
		u, ok := byID[id]
		return u.Name, ok
	}
	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("seed-upd-%03d", n)
	}
	manager := byID["usr5"]

	var out []domain.Update
	for _, d := range dorms {
		b := audit.NewBuilder(manager, now.Add(-72*time.Hour), newID)
		b.DormAdded(d)
		out = append(out, b.Records()...)
	}
	for i, g := range guests {
		registered := g.Clone()
		registered.Status = domain.StatusRegistered
		registered.DormID = ""
		registered.AssignedVolunteers = nil
		registered.PaymentStatus = domain.PaymentPending

		added := audit.NewBuilder(byID["usr3"], now.Add(-time.Duration(70-i)*time.Hour), newID)
		added.GuestAdded(registered)
		out = append(out, added.Records()...)

		actor := byID[g.LastUpdatedBy]
		assigned := registered.Clone()
		assigned.DormID = g.DormID
		assigned.AssignedVolunteers = g.AssignedVolunteers
		assigned.PaymentStatus = g.PaymentStatus
		at := g.LastUpdated
		if g.CheckInTime != nil {
			at = *g.CheckInTime
		}
		b := audit.NewBuilder(actor, at.Add(-30*time.Minute), newID)
		b.GuestDiff(registered, assigned, names)
		out = append(out, b.Records()...)

		if g.Status != domain.StatusRegistered {
			b := audit.NewBuilder(actor, at, newID)
			b.GuestDiff(assigned, g, names)
			b.GuestTransitions(assigned, g)
			out = append(out, b.Records()...)
		}
	}
	return out
}
