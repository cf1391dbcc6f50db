// Package audit turns guest and dorm changes into human-readable Update
// records. It is pure: it never touches the store, it only describes changes
// that the caller is about to commit.
package audit

import (
	"slices"
	"strings"
	"time"

	"github.com/pkordes/guestdesk/internal/domain"
)

// NameFunc resolves a user ID to a display name. ok is false for unknown IDs.
type NameFunc func(userID string) (name string, ok bool)

// Builder collects the records produced by one mutation. Every record it
// emits carries the same actor and timestamp.
type Builder struct {
	actor   domain.User
	now     time.Time
	newID   func() string
	records []domain.Update
}

// NewBuilder returns a Builder stamping records with actor, now and IDs from newID.
func NewBuilder(actor domain.User, now time.Time, newID func() string) *Builder {
	return &Builder{actor: actor, now: now, newID: newID}
}

// GuestDiff emits one record per tracked field that differs between prior
// and next, in the order status, location, dorm, volunteers, payment.
// Fields outside that set (name, type, group size) are not audited.
func (b *Builder) GuestDiff(prior, next domain.Guest, names NameFunc) {
	if prior.Status != next.Status {
		b.add(domain.UpdateGuestStatus, next, ptr(string(prior.Status)), string(next.Status))
	}
	if prior.Location != next.Location {
		b.add(domain.UpdateGuestLocation, next, ptr(orNone(prior.Location)), orNone(next.Location))
	}
	if prior.DormID != next.DormID {
		b.add(domain.UpdateDormAssignment, next, ptr(orNone(prior.DormID)), orNone(next.DormID))
	}
	if !SameVolunteers(prior.AssignedVolunteers, next.AssignedVolunteers) {
		b.add(domain.UpdateVolunteerAssignment, next,
			ptr(VolunteerNames(prior.AssignedVolunteers, names)),
			VolunteerNames(next.AssignedVolunteers, names))
	}
	if prior.PaymentStatus != next.PaymentStatus {
		b.add(domain.UpdatePayment, next, ptr(string(prior.PaymentStatus)), string(next.PaymentStatus))
	}
}

// GuestTransitions emits "Check In" when next enters Checked-in and
// "Check Out" when it enters Checked-out. The new value is the transition
// time; there is no old value.
func (b *Builder) GuestTransitions(prior, next domain.Guest) {
	if EntersStatus(prior, next, domain.StatusCheckedIn) {
		b.add(domain.UpdateCheckIn, next, nil, b.now.Format(time.RFC3339))
	}
	if EntersStatus(prior, next, domain.StatusCheckedOut) {
		b.add(domain.UpdateCheckOut, next, nil, b.now.Format(time.RFC3339))
	}
}

// GuestAdded emits "Guest Added" with the guest's name.
func (b *Builder) GuestAdded(g domain.Guest) {
	b.add(domain.UpdateGuestAdded, g, nil, g.Name)
}

// DormAdded emits "Dorm Added" with the dorm's name.
func (b *Builder) DormAdded(d domain.Dorm) {
	b.add(domain.UpdateDormAdded, d, nil, d.Name)
}

// DormEdited emits "Dorm Edited" with both occupancy fractions. It is emitted
// for every dorm edit, whether or not anything changed.
func (b *Builder) DormEdited(prior, next domain.Dorm) {
	b.add(domain.UpdateDormEdited, next, ptr(prior.Occupancy()), next.Occupancy())
}

// Records returns the collected records in emission order. Never nil.
func (b *Builder) Records() []domain.Update {
	if b.records == nil {
		return []domain.Update{}
	}
	return slices.Clone(b.records)
}

func (b *Builder) add(t domain.UpdateType, e domain.Entity, old *string, newValue string) {
	b.records = append(b.records, domain.Update{
		ID:            b.newID(),
		Timestamp:     b.now,
		UpdateType:    t,
		EntityID:      e.EntityID(),
		EntityType:    e.EntityType(),
		OldValue:      old,
		NewValue:      newValue,
		UpdatedBy:     b.actor.ID,
		UpdatedByName: b.actor.Name,
		UpdatedByRole: b.actor.Role,
	})
}

// EntersStatus reports whether next moves into status from a different one.
func EntersStatus(prior, next domain.Guest, status domain.GuestStatus) bool {
	return next.Status == status && prior.Status != status
}

// SameVolunteers compares two volunteer lists as sets.
func SameVolunteers(a, b []string) bool {
	as, bs := dedupeSorted(a), dedupeSorted(b)
	return slices.Equal(as, bs)
}

// VolunteerNames renders volunteer IDs as a comma-joined list of display
// names. Unknown IDs render as themselves; an empty list renders as "None".
func VolunteerNames(ids []string, names NameFunc) string {
	if len(ids) == 0 {
		return domain.NoneLabel
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if names != nil {
			if n, ok := names(id); ok {
				parts = append(parts, n)
				continue
			}
		}
		parts = append(parts, id)
	}
	return strings.Join(parts, ", ")
}

// RequiredActions lists the permission actions needed to turn prior into next.
// An edit that changes nothing needs no action.
func RequiredActions(prior, next domain.Guest) []domain.Action {
	var out []domain.Action
	if prior.Status != next.Status {
		out = append(out, domain.ActionUpdateStatus)
	}
	if prior.Location != next.Location {
		out = append(out, domain.ActionUpdateLocation)
	}
	if prior.DormID != next.DormID {
		out = append(out, domain.ActionAssignDorm)
	}
	if !SameVolunteers(prior.AssignedVolunteers, next.AssignedVolunteers) {
		out = append(out, domain.ActionAssignVolunteer)
	}
	if prior.PaymentStatus != next.PaymentStatus {
		out = append(out, domain.ActionUpdatePayment)
	}
	if prior.Name != next.Name || prior.Type != next.Type || prior.GroupSize != next.GroupSize {
		out = append(out, domain.ActionEditGuest)
	}
	return out
}

func dedupeSorted(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func orNone(s string) string {
	if s == "" {
		return domain.NoneLabel
	}
	return s
}

func ptr(s string) *string { return &s }
