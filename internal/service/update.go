package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/guestdesk/internal/domain"
	"github.com/pkordes/guestdesk/internal/filter"
	"github.com/pkordes/guestdesk/internal/store"
)

// UpdateService serves the global audit log. Every method requires the
// view_updates permission.
type UpdateService struct {
	store *store.Store
}

// NewUpdateService constructs an UpdateService.
func NewUpdateService(st *store.Store) *UpdateService {
	return &UpdateService{store: st}
}

// List returns the records matching c, newest first.
func (s *UpdateService) List(ctx context.Context, actor *domain.User, c filter.UpdateCriteria) ([]domain.Update, error) {
	snap, err := s.snapshot(actor)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateService.List: %w", err)
	}
	return filter.Updates(snap.Updates, c, entityNames(snap)), nil
}

// ListPaged returns one page of the records matching c and the total number
// of matches.
func (s *UpdateService) ListPaged(ctx context.Context, actor *domain.User, c filter.UpdateCriteria, p domain.PaginationParams) ([]domain.Update, int, error) {
	snap, err := s.snapshot(actor)
	if err != nil {
		return nil, 0, fmt.Errorf("service.UpdateService.ListPaged: %w", err)
	}
	all := filter.Updates(snap.Updates, c, entityNames(snap))
	return domain.Paginate(all, p), len(all), nil
}

// ByDay returns the records matching c grouped by calendar day in loc.
func (s *UpdateService) ByDay(ctx context.Context, actor *domain.User, c filter.UpdateCriteria, loc *time.Location) ([]filter.DayGroup, error) {
	snap, err := s.snapshot(actor)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateService.ByDay: %w", err)
	}
	return filter.GroupByDay(filter.Updates(snap.Updates, c, entityNames(snap)), loc), nil
}

// Export returns one flat row per matching record with the entity's current
// display name resolved.
func (s *UpdateService) Export(ctx context.Context, actor *domain.User, c filter.UpdateCriteria) ([]domain.ExportRow, error) {
	snap, err := s.snapshot(actor)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateService.Export: %w", err)
	}
	names := entityNames(snap)
	matched := filter.Updates(snap.Updates, c, names)

	rows := make([]domain.ExportRow, 0, len(matched))
	for _, u := range matched {
		row := domain.ExportRow{
			UpdateID:      u.ID,
			Timestamp:     u.Timestamp,
			UpdateType:    u.UpdateType,
			EntityType:    u.EntityType,
			EntityID:      u.EntityID,
			EntityName:    names(u.EntityType, u.EntityID),
			NewValue:      u.NewValue,
			UpdatedBy:     u.UpdatedBy,
			UpdatedByName: u.UpdatedByName,
			UpdatedByRole: u.UpdatedByRole,
		}
		if u.OldValue != nil {
			row.OldValue = *u.OldValue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *UpdateService) snapshot(actor *domain.User) (store.Snapshot, error) {
	if err := authorize(actor, nil, domain.ActionViewUpdates); err != nil {
		return store.Snapshot{}, err
	}
	return s.store.Snapshot(), nil
}

// entityNames resolves audit entities against one snapshot. Unknown entities
// resolve to the empty string.
func entityNames(snap store.Snapshot) filter.EntityNameFunc {
	guests := make(map[string]string, len(snap.Guests))
	for _, g := range snap.Guests {
		guests[g.ID] = g.Name
	}
	dorms := make(map[string]string, len(snap.Dorms))
	for _, d := range snap.Dorms {
		dorms[d.ID] = d.Name
	}
	return func(t domain.EntityType, id string) string {
		if t == domain.EntityDorm {
			return dorms[id]
		}
		return guests[id]
	}
}
