// Package domain contains the core data types for the guestdesk dashboard.
// It has no dependencies on other internal packages and is imported by every
// layer above it (store, audit, filter, service, handler).
package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// GuestType classifies why a guest is attending the event.
type GuestType string

const (
	GuestTypeSpecial GuestType = "Special"
	GuestTypeForeign GuestType = "Foreign"
	GuestTypeNormal  GuestType = "Normal"
	GuestTypeEvents  GuestType = "Events"
	GuestTypeWorkers GuestType = "Workers"
	GuestTypeVITians GuestType = "VITians"
)

// GuestTypes lists every GuestType in display order.
var GuestTypes = []GuestType{
	GuestTypeSpecial, GuestTypeForeign, GuestTypeNormal,
	GuestTypeEvents, GuestTypeWorkers, GuestTypeVITians,
}

// Valid reports whether t is one of the known guest types.
func (t GuestType) Valid() bool { return slices.Contains(GuestTypes, t) }

// GuestStatus is the lifecycle state of a guest. Guests are never deleted;
// Checked-out, No-show and Cancelled model the end of their lifecycle.
type GuestStatus string

const (
	StatusRegistered GuestStatus = "Registered"
	StatusCheckedIn  GuestStatus = "Checked-in"
	StatusCheckedOut GuestStatus = "Checked-out"
	StatusNoShow     GuestStatus = "No-show"
	StatusCancelled  GuestStatus = "Cancelled"
)

// GuestStatuses lists every GuestStatus in lifecycle order.
var GuestStatuses = []GuestStatus{
	StatusRegistered, StatusCheckedIn, StatusCheckedOut, StatusNoShow, StatusCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s GuestStatus) Valid() bool { return slices.Contains(GuestStatuses, s) }

// PaymentStatus records whether a guest's stay has been paid for.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
	PaymentNA      PaymentStatus = "NA"
)

// Valid reports whether p is one of the known payment statuses.
func (p PaymentStatus) Valid() bool {
	return p == PaymentPaid || p == PaymentPending || p == PaymentNA
}

// NoneLabel is the display value for an empty optional field (no dorm, no
// location, no volunteers). It doubles as the "unassigned" dorm facet.
const NoneLabel = "None"

// Guest is a single registration: a person or a group sharing one record.
// DormID is empty when the guest has no bed assigned. When set, the
// referenced Dorm lists this guest's ID in its Guests slice.
type Guest struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Type               GuestType     `json:"type"`
	Status             GuestStatus   `json:"status"`
	DormID             string        `json:"dorm_id,omitempty"`
	GroupSize          int           `json:"group_size"`
	AssignedVolunteers []string      `json:"assigned_volunteers"`
	PaymentStatus      PaymentStatus `json:"payment_status"`
	Location           string        `json:"location,omitempty"`
	CheckInTime        *time.Time    `json:"check_in_time,omitempty"`
	CheckOutTime       *time.Time    `json:"check_out_time,omitempty"`
	LastUpdated        time.Time     `json:"last_updated"`
	LastUpdatedBy      string        `json:"last_updated_by"`
}

// EntityType implements Entity.
func (g Guest) EntityType() EntityType { return EntityGuest }

// EntityID implements Entity.
func (g Guest) EntityID() string { return g.ID }

// IsAssigned reports whether userID is one of the guest's volunteers.
func (g Guest) IsAssigned(userID string) bool {
	return slices.Contains(g.AssignedVolunteers, userID)
}

// Clone returns a copy of g that shares no slices with the original.
func (g Guest) Clone() Guest {
	g.AssignedVolunteers = slices.Clone(g.AssignedVolunteers)
	return g
}

// Validate enforces the field rules shared by add and update.
func (g Guest) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !g.Type.Valid() {
		return fmt.Errorf("%w: unknown guest type %q", ErrValidation, g.Type)
	}
	if !g.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, g.Status)
	}
	if !g.PaymentStatus.Valid() {
		return fmt.Errorf("%w: unknown payment status %q", ErrValidation, g.PaymentStatus)
	}
	if g.GroupSize < 1 {
		return fmt.Errorf("%w: group_size must be at least 1", ErrValidation)
	}
	return nil
}
