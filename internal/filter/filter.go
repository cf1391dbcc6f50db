// Package filter derives the faceted views shown on the guests, dorms and
// updates pages. Every function is pure: inputs are never modified and the
// result is always a fresh, non-nil slice.
//
// Facets combine with AND; values inside one facet combine with OR. An empty
// facet does not restrict, so the zero value of each criteria type is the
// "reset all filters" state.
package filter

import (
	"slices"
	"strings"

	"github.com/pkordes/guestdesk/internal/domain"
)

// GuestCriteria selects guests.
type GuestCriteria struct {
	// Search is a case-insensitive substring of the guest name.
	Search   string
	Types    []domain.GuestType
	Statuses []domain.GuestStatus
	// Dorms holds dorm IDs. domain.NoneLabel matches guests with no dorm.
	Dorms []string
	// Volunteers matches guests assigned to at least one of these user IDs.
	Volunteers []string
}

// IsZero reports whether c applies no restriction.
func (c GuestCriteria) IsZero() bool {
	return c.Search == "" && len(c.Types) == 0 && len(c.Statuses) == 0 &&
		len(c.Dorms) == 0 && len(c.Volunteers) == 0
}

// Match reports whether g satisfies every facet of c.
func (c GuestCriteria) Match(g domain.Guest) bool {
	if !containsFold(g.Name, c.Search) {
		return false
	}
	if len(c.Types) > 0 && !slices.Contains(c.Types, g.Type) {
		return false
	}
	if len(c.Statuses) > 0 && !slices.Contains(c.Statuses, g.Status) {
		return false
	}
	if len(c.Dorms) > 0 && !matchDorm(c.Dorms, g.DormID) {
		return false
	}
	if len(c.Volunteers) > 0 && !intersects(c.Volunteers, g.AssignedVolunteers) {
		return false
	}
	return true
}

// Guests returns the guests matching c, in input order.
func Guests(guests []domain.Guest, c GuestCriteria) []domain.Guest {
	out := []domain.Guest{}
	for _, g := range guests {
		if c.Match(g) {
			out = append(out, g.Clone())
		}
	}
	return out
}

// DormCriteria selects dorms.
type DormCriteria struct {
	Search       string
	Availability []domain.Availability
}

// IsZero reports whether c applies no restriction.
func (c DormCriteria) IsZero() bool {
	return c.Search == "" && len(c.Availability) == 0
}

// Match reports whether d satisfies every facet of c.
func (c DormCriteria) Match(d domain.Dorm) bool {
	if !containsFold(d.Name, c.Search) {
		return false
	}
	if len(c.Availability) > 0 && !slices.Contains(c.Availability, d.Availability()) {
		return false
	}
	return true
}

// Dorms returns the dorms matching c, in input order.
func Dorms(dorms []domain.Dorm, c DormCriteria) []domain.Dorm {
	out := []domain.Dorm{}
	for _, d := range dorms {
		if c.Match(d) {
			out = append(out, d.Clone())
		}
	}
	return out
}

// UpdateCriteria selects audit records.
type UpdateCriteria struct {
	// Search matches the entity's display name, the actor's name or the
	// update type, case-insensitively.
	Search   string
	Types    []domain.UpdateType
	Users    []string
	Entities []domain.EntityType
}

// IsZero reports whether c applies no restriction.
func (c UpdateCriteria) IsZero() bool {
	return c.Search == "" && len(c.Types) == 0 && len(c.Users) == 0 && len(c.Entities) == 0
}

// EntityNameFunc resolves an audit record's entity to its display name.
type EntityNameFunc func(t domain.EntityType, id string) string

// Updates returns the records matching c, in input order. entityName may be
// nil, in which case search falls back to the raw entity ID.
func Updates(updates []domain.Update, c UpdateCriteria, entityName EntityNameFunc) []domain.Update {
	out := []domain.Update{}
	for _, u := range updates {
		if len(c.Types) > 0 && !slices.Contains(c.Types, u.UpdateType) {
			continue
		}
		if len(c.Users) > 0 && !slices.Contains(c.Users, u.UpdatedBy) {
			continue
		}
		if len(c.Entities) > 0 && !slices.Contains(c.Entities, u.EntityType) {
			continue
		}
		if c.Search != "" && !searchUpdate(u, c.Search, entityName) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func searchUpdate(u domain.Update, q string, entityName EntityNameFunc) bool {
	name := u.EntityID
	if entityName != nil {
		name = entityName(u.EntityType, u.EntityID)
	}
	return containsFold(name, q) ||
		containsFold(u.UpdatedByName, q) ||
		containsFold(string(u.UpdateType), q)
}

func matchDorm(want []string, dormID string) bool {
	if dormID == "" {
		return slices.Contains(want, domain.NoneLabel)
	}
	return slices.Contains(want, dormID)
}

func intersects(a, b []string) bool {
	for _, v := range a {
		if slices.Contains(b, v) {
			return true
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	if sub == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
