package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Availability classifies a dorm by whether it still has a free bed.
type Availability string

const (
	Available Availability = "Available"
	Full      Availability = "Full"
)

// Dorm is a room with a fixed number of beds. OccupiedBeds always equals
// len(Guests); both are maintained by guest dorm (re)assignment.
type Dorm struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Capacity      int       `json:"capacity"`
	OccupiedBeds  int       `json:"occupied_beds"`
	Guests        []string  `json:"guests"`
	LastUpdated   time.Time `json:"last_updated"`
	LastUpdatedBy string    `json:"last_updated_by"`
}

// EntityType implements Entity.
func (d Dorm) EntityType() EntityType { return EntityDorm }

// EntityID implements Entity.
func (d Dorm) EntityID() string { return d.ID }

// Availability derives the dorm's classification from its occupancy.
func (d Dorm) Availability() Availability {
	if d.OccupiedBeds < d.Capacity {
		return Available
	}
	return Full
}

// FreeBeds returns the number of unoccupied beds.
func (d Dorm) FreeBeds() int { return d.Capacity - d.OccupiedBeds }

// Occupancy renders the dorm as "occupied/capacity".
func (d Dorm) Occupancy() string {
	return fmt.Sprintf("%d/%d", d.OccupiedBeds, d.Capacity)
}

// Clone returns a copy of d that shares no slices with the original.
func (d Dorm) Clone() Dorm {
	d.Guests = slices.Clone(d.Guests)
	return d
}

// Validate enforces the field rules shared by add and update.
func (d Dorm) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if d.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrValidation)
	}
	return nil
}
