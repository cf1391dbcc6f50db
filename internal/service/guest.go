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

// GuestService implements guest reads and the guest mutation path: permission
// checks, dorm bed bookkeeping and audit records, all in one transaction.
type GuestService struct {
	store *store.Store
	rec   Recorder
	log   *slog.Logger
}

// NewGuestService constructs a GuestService. rec and log may be nil.
func NewGuestService(st *store.Store, rec Recorder, log *slog.Logger) *GuestService {
	return &GuestService{store: st, rec: orNoop(rec), log: orDefault(log)}
}

// List returns the guests matching c in insertion order.
func (s *GuestService) List(ctx context.Context, c filter.GuestCriteria) ([]domain.Guest, error) {
	return filter.Guests(s.store.Guests(), c), nil
}

// GetByID returns a single guest.
// Returns domain.ErrNotFound if no guest with that ID exists.
func (s *GuestService) GetByID(ctx context.Context, id string) (domain.Guest, error) {
	g, ok := s.store.GuestByID(id)
	if !ok {
		return domain.Guest{}, fmt.Errorf("service.GuestService.GetByID: %w", domain.ErrNotFound)
	}
	return g, nil
}

// UpdatesFor returns the guest's audit trail, newest first.
func (s *GuestService) UpdatesFor(ctx context.Context, id string) ([]domain.Update, error) {
	if _, ok := s.store.GuestByID(id); !ok {
		return nil, fmt.Errorf("service.GuestService.UpdatesFor: %w", domain.ErrNotFound)
	}
	return s.store.UpdatesForEntity(id), nil
}

// Permissions lists the actions actor may perform on the guest. It is
// advisory, for UI gating; Create and Update enforce the same rules.
func (s *GuestService) Permissions(ctx context.Context, actor *domain.User, id string) ([]domain.Action, error) {
	g, ok := s.store.GuestByID(id)
	if !ok {
		return nil, fmt.Errorf("service.GuestService.Permissions: %w", domain.ErrNotFound)
	}
	return domain.AllowedActions(actor, g), nil
}

// Create adds a new guest. An empty ID is replaced with a generated one;
// empty status and payment default to Registered and Pending, and a zero
// group size defaults to 1. When a dorm is given the guest takes one of its
// beds. Exactly one "Guest Added" record is appended.
//
// Returns domain.ErrForbidden, domain.ErrValidation, domain.ErrConflict (ID
// taken), domain.ErrNotFound (unknown dorm) or domain.ErrDormFull.
func (s *GuestService) Create(ctx context.Context, actor *domain.User, g domain.Guest) (domain.Guest, error) {
	var (
		created domain.Guest
		records []domain.Update
	)
	err := s.store.Update(func(tx *store.Tx) error {
		if err := authorize(actor, g, domain.ActionAddGuest); err != nil {
			return err
		}
		applyGuestDefaults(&g)
		if err := g.Validate(); err != nil {
			return err
		}
		vols, err := checkVolunteers(tx, g.AssignedVolunteers)
		if err != nil {
			return err
		}
		g.AssignedVolunteers = vols

		if g.ID == "" {
			g.ID = tx.NewID()
		} else if _, taken := tx.Guest(g.ID); taken {
			return fmt.Errorf("guest %q: %w", g.ID, domain.ErrConflict)
		}

		now := tx.Now()
		g.CheckInTime, g.CheckOutTime = nil, nil
		switch g.Status {
		case domain.StatusCheckedIn:
			g.CheckInTime = &now
		case domain.StatusCheckedOut:
			g.CheckOutTime = &now
		}
		if g.DormID != "" {
			if err := seatGuest(tx, g.DormID, g.ID, actor.ID); err != nil {
				return err
			}
		}
		g.LastUpdated = now
		g.LastUpdatedBy = actor.ID
		tx.PutGuest(g)

		b := audit.NewBuilder(*actor, now, tx.NewID)
		b.GuestAdded(g)
		records = b.Records()
		tx.Prepend(records...)
		created = g
		return nil
	})
	s.rec.ObserveMutation("guest.create", err)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("service.GuestService.Create: %w", err)
	}
	s.rec.ObserveRecords(records)
	s.log.InfoContext(ctx, "guest added",
		slog.String("guest_id", created.ID),
		slog.String("actor", actor.ID),
		slog.String("dorm_id", created.DormID),
	)
	return created, nil
}

// Update replaces a guest with next, which must carry the ID of an existing
// guest. The actor needs the permission for every field that changes.
// Changing the dorm moves one bed from the old dorm to the new one. Entering
// Checked-in or Checked-out stamps the matching time. Check-in/out times and
// last-updated fields are owned by the store and ignored on input.
//
// An update that changes nothing still re-stamps the guest but appends no
// records. On any error nothing is changed.
func (s *GuestService) Update(ctx context.Context, actor *domain.User, next domain.Guest) (domain.Guest, error) {
	var (
		updated domain.Guest
		records []domain.Update
	)
	err := s.store.Update(func(tx *store.Tx) error {
		if err := requireActor(actor); err != nil {
			return err
		}
		if err := next.Validate(); err != nil {
			return err
		}
		prior, ok := tx.Guest(next.ID)
		if !ok {
			return fmt.Errorf("guest %q: %w", next.ID, domain.ErrNotFound)
		}
		if err := authorize(actor, prior, audit.RequiredActions(prior, next)...); err != nil {
			return err
		}
		if next.AssignedVolunteers == nil {
			next.AssignedVolunteers = []string{}
		}
		if audit.SameVolunteers(prior.AssignedVolunteers, next.AssignedVolunteers) {
			next.AssignedVolunteers = append([]string{}, prior.AssignedVolunteers...)
		} else {
			vols, err := checkVolunteers(tx, next.AssignedVolunteers)
			if err != nil {
				return err
			}
			next.AssignedVolunteers = vols
		}

		now := tx.Now()
		next.CheckInTime, next.CheckOutTime = prior.CheckInTime, prior.CheckOutTime
		if audit.EntersStatus(prior, next, domain.StatusCheckedIn) {
			next.CheckInTime = &now
		}
		if audit.EntersStatus(prior, next, domain.StatusCheckedOut) {
			next.CheckOutTime = &now
		}

		if prior.DormID != next.DormID {
			if prior.DormID != "" {
				unseatGuest(tx, prior.DormID, prior.ID, actor.ID)
			}
			if next.DormID != "" {
				if err := seatGuest(tx, next.DormID, next.ID, actor.ID); err != nil {
					return err
				}
			}
		}

		b := audit.NewBuilder(*actor, now, tx.NewID)
		b.GuestDiff(prior, next, userNames(tx.User))
		b.GuestTransitions(prior, next)

		next.LastUpdated = now
		next.LastUpdatedBy = actor.ID
		tx.PutGuest(next)

		records = b.Records()
		tx.Prepend(records...)
		updated = next
		return nil
	})
	s.rec.ObserveMutation("guest.update", err)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("service.GuestService.Update: %w", err)
	}
	s.rec.ObserveRecords(records)
	s.log.InfoContext(ctx, "guest updated",
		slog.String("guest_id", updated.ID),
		slog.String("actor", actor.ID),
		slog.Int("records", len(records)),
	)
	return updated, nil
}

func applyGuestDefaults(g *domain.Guest) {
	if g.Status == "" {
		g.Status = domain.StatusRegistered
	}
	if g.PaymentStatus == "" {
		g.PaymentStatus = domain.PaymentPending
	}
	if g.GroupSize == 0 {
		g.GroupSize = 1
	}
	if g.AssignedVolunteers == nil {
		g.AssignedVolunteers = []string{}
	}
}
