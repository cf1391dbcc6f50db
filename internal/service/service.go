// Package service contains the business logic for the guestdesk API.
// Services validate inputs, enforce role permissions, and run every mutation
// as a single store transaction that also appends its audit records.
// No HTTP or SQL lives here.
package service

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/pkordes/guestdesk/internal/audit"
	"github.com/pkordes/guestdesk/internal/domain"
	"github.com/pkordes/guestdesk/internal/store"
)

// Recorder receives the outcome of every mutation. *metrics.Metrics satisfies it.
type Recorder interface {
	ObserveMutation(operation string, err error)
	ObserveRecords(records []domain.Update)
}

type noopRecorder struct{}

func (noopRecorder) ObserveMutation(string, error)   {}
func (noopRecorder) ObserveRecords([]domain.Update) {}

func orNoop(rec Recorder) Recorder {
	if rec == nil {
		return noopRecorder{}
	}
	return rec
}

func orDefault(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}

// requireActor returns ErrUnauthenticated when nobody is signed in.
func requireActor(actor *domain.User) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	return nil
}

// authorize returns ErrForbidden unless actor may perform every action on entity.
func authorize(actor *domain.User, entity domain.Entity, actions ...domain.Action) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	for _, a := range actions {
		if !domain.CanPerformAction(actor, a, entity) {
			return fmt.Errorf("%w: %s may not %s", domain.ErrForbidden, actor.Role, a)
		}
	}
	return nil
}

// userNames adapts a user lookup into the audit package's name resolver.
func userNames(lookup func(id string) (domain.User, bool)) audit.NameFunc {
	return func(id string) (string, bool) {
		u, ok := lookup(id)
		return u.Name, ok
	}
}

// checkVolunteers rejects unknown user IDs and returns ids with duplicates
// removed, keeping first occurrences in order.
func checkVolunteers(tx *store.Tx, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := tx.User(id); !ok {
			return nil, fmt.Errorf("%w: unknown volunteer %q", domain.ErrValidation, id)
		}
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out, nil
}

// seatGuest adds guestID to the dorm, enforcing capacity.
func seatGuest(tx *store.Tx, dormID, guestID, actorID string) error {
	d, ok := tx.Dorm(dormID)
	if !ok {
		return fmt.Errorf("dorm %q: %w", dormID, domain.ErrNotFound)
	}
	if d.FreeBeds() <= 0 {
		return fmt.Errorf("dorm %q (%s): %w", dormID, d.Occupancy(), domain.ErrDormFull)
	}
	d.Guests = append(d.Guests, guestID)
	d.OccupiedBeds = len(d.Guests)
	d.LastUpdated = tx.Now()
	d.LastUpdatedBy = actorID
	tx.PutDorm(d)
	return nil
}

// unseatGuest removes guestID from the dorm. A dorm that no longer exists is
// ignored.
func unseatGuest(tx *store.Tx, dormID, guestID, actorID string) {
	d, ok := tx.Dorm(dormID)
	if !ok {
		return
	}
	d.Guests = slices.DeleteFunc(d.Guests, func(id string) bool { return id == guestID })
	d.OccupiedBeds = len(d.Guests)
	d.LastUpdated = tx.Now()
	d.LastUpdatedBy = actorID
	tx.PutDorm(d)
}
