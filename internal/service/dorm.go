package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/guestdesk/internal/audit"
	"github.com/pkordes/guestdesk/internal/domain"
	"github.com/pkordes/guestdesk/internal/filter"
	"github.com/pkordes/guestdesk/internal/store"
)

// DormService implements dorm reads and mutations.
// Occupancy and membership are never taken from input: they change only when
// guests are (re)assigned through GuestService.
type DormService struct {
	store *store.Store
	rec   Recorder
	log   *slog.Logger
}

// NewDormService constructs a DormService. rec and log may be nil.
func NewDormService(st *store.Store, rec Recorder, log *slog.Logger) *DormService {
	return &DormService{store: st, rec: orNoop(rec), log: orDefault(log)}
}

// List returns the dorms matching c in insertion order.
func (s *DormService) List(ctx context.Context, c filter.DormCriteria) ([]domain.Dorm, error) {
	return filter.Dorms(s.store.Dorms(), c), nil
}

// GetByID returns a single dorm.
// Returns domain.ErrNotFound if no dorm with that ID exists.
func (s *DormService) GetByID(ctx context.Context, id string) (domain.Dorm, error) {
	d, ok := s.store.DormByID(id)
	if !ok {
		return domain.Dorm{}, fmt.Errorf("service.DormService.GetByID: %w", domain.ErrNotFound)
	}
	return d, nil
}

// UpdatesFor returns the dorm's audit trail, newest first.
func (s *DormService) UpdatesFor(ctx context.Context, id string) ([]domain.Update, error) {
	if _, ok := s.store.DormByID(id); !ok {
		return nil, fmt.Errorf("service.DormService.UpdatesFor: %w", domain.ErrNotFound)
	}
	return s.store.UpdatesForEntity(id), nil
}

// Permissions lists the actions actor may perform on the dorm.
func (s *DormService) Permissions(ctx context.Context, actor *domain.User, id string) ([]domain.Action, error) {
	d, ok := s.store.DormByID(id)
	if !ok {
		return nil, fmt.Errorf("service.DormService.Permissions: %w", domain.ErrNotFound)
	}
	return domain.AllowedActions(actor, d), nil
}

// Create adds a new, empty dorm and appends one "Dorm Added" record.
// Guests join a dorm only through guest assignment, so a dorm submitted with
// occupants is rejected with domain.ErrValidation.
func (s *DormService) Create(ctx context.Context, actor *domain.User, d domain.Dorm) (domain.Dorm, error) {
	var (
		created domain.Dorm
		records []domain.Update
	)
	err := s.store.Update(func(tx *store.Tx) error {
		if err := authorize(actor, d, domain.ActionAddDorm); err != nil {
			return err
		}
		if err := d.Validate(); err != nil {
			return err
		}
		if d.OccupiedBeds != 0 || len(d.Guests) > 0 {
			return fmt.Errorf("%w: a new dorm must start empty", domain.ErrValidation)
		}
		if d.ID == "" {
			d.ID = tx.NewID()
		} else if _, taken := tx.Dorm(d.ID); taken {
			return fmt.Errorf("dorm %q: %w", d.ID, domain.ErrConflict)
		}
		d.Guests = []string{}
		d.LastUpdated = tx.Now()
		d.LastUpdatedBy = actor.ID
		tx.PutDorm(d)

		b := audit.NewBuilder(*actor, tx.Now(), tx.NewID)
		b.DormAdded(d)
		records = b.Records()
		tx.Prepend(records...)
		created = d
		return nil
	})
	s.rec.ObserveMutation("dorm.create", err)
	if err != nil {
		return domain.Dorm{}, fmt.Errorf("service.DormService.Create: %w", err)
	}
	s.rec.ObserveRecords(records)
	s.log.InfoContext(ctx, "dorm added",
		slog.String("dorm_id", created.ID),
		slog.String("actor", actor.ID),
		slog.Int("capacity", created.Capacity),
	)
	return created, nil
}

// Update edits a dorm's name and capacity. Capacity may not drop below the
// beds already occupied. Every successful edit appends one "Dorm Edited"
// record carrying the before and after occupancy.
func (s *DormService) Update(ctx context.Context, actor *domain.User, d domain.Dorm) (domain.Dorm, error) {
	var (
		updated domain.Dorm
		records []domain.Update
	)
	err := s.store.Update(func(tx *store.Tx) error {
		if err := requireActor(actor); err != nil {
			return err
		}
		prior, ok := tx.Dorm(d.ID)
		if !ok {
			return fmt.Errorf("dorm %q: %w", d.ID, domain.ErrNotFound)
		}
		if err := authorize(actor, prior, domain.ActionUpdateDorm); err != nil {
			return err
		}
		next := prior.Clone()
		next.Name = d.Name
		next.Capacity = d.Capacity
		if err := next.Validate(); err != nil {
			return err
		}
		if next.Capacity < next.OccupiedBeds {
			return fmt.Errorf("%w: capacity %d is below the %d occupied beds",
				domain.ErrValidation, next.Capacity, next.OccupiedBeds)
		}
		next.LastUpdated = tx.Now()
		next.LastUpdatedBy = actor.ID
		tx.PutDorm(next)

		b := audit.NewBuilder(*actor, tx.Now(), tx.NewID)
		b.DormEdited(prior, next)
		records = b.Records()
		tx.Prepend(records...)
		updated = next
		return nil
	})
	s.rec.ObserveMutation("dorm.update", err)
	if err != nil {
		return domain.Dorm{}, fmt.Errorf("service.DormService.Update: %w", err)
	}
	s.rec.ObserveRecords(records)
	s.log.InfoContext(ctx, "dorm updated",
		slog.String("dorm_id", updated.ID),
		slog.String("actor", actor.ID),
		slog.String("occupancy", updated.Occupancy()),
	)
	return updated, nil
}
