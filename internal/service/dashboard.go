package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/pkordes/guestdesk/internal/domain"
	"github.com/pkordes/guestdesk/internal/store"
)

const dashboardListSize = 3

// DashboardService builds the landing-page summary.
type DashboardService struct {
	store *store.Store
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(st *store.Store) *DashboardService {
	return &DashboardService{store: st}
}

// Summary returns guest and bed counts for actor. Volunteers only count the
// guests assigned to them. RecentGuests holds the most recently updated
// guests; AvailableDorms holds the dorms with a free bed, fullest first.
func (s *DashboardService) Summary(ctx context.Context, actor *domain.User) (domain.DashboardSummary, error) {
	if err := requireActor(actor); err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("service.DashboardService.Summary: %w", err)
	}
	snap := s.store.Snapshot()

	guests := snap.Guests
	if actor.Role == domain.RoleVolunteer {
		guests = slices.DeleteFunc(guests, func(g domain.Guest) bool { return !g.IsAssigned(actor.ID) })
	}

	sum := domain.DashboardSummary{TotalGuests: len(guests)}
	for _, g := range guests {
		switch g.Status {
		case domain.StatusCheckedIn:
			sum.CheckedInGuests++
		case domain.StatusRegistered:
			sum.PendingGuests++
		}
	}
	for _, d := range snap.Dorms {
		sum.TotalBeds += d.Capacity
		sum.OccupiedBeds += d.OccupiedBeds
	}

	recent := slices.Clone(guests)
	slices.SortStableFunc(recent, func(a, b domain.Guest) int {
		return b.LastUpdated.Compare(a.LastUpdated)
	})
	sum.RecentGuests = recent[:min(dashboardListSize, len(recent))]

	available := slices.DeleteFunc(snap.Dorms, func(d domain.Dorm) bool {
		return d.Availability() != domain.Available
	})
	slices.SortStableFunc(available, func(a, b domain.Dorm) int {
		return a.FreeBeds() - b.FreeBeds()
	})
	sum.AvailableDorms = available[:min(dashboardListSize, len(available))]

	return sum, nil
}
