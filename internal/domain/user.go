package domain

import (
	"slices"
	"time"
)

// Role is a user's position in the event team. It drives CanPerformAction.
type Role string

const (
	RoleVolunteer   Role = "Volunteer"
	RoleDesk        Role = "Desk"
	RoleCoordinator Role = "Coordinator"
	RoleManager     Role = "Manager"
)

// Roles lists every Role from most to least privileged.
var Roles = []Role{RoleManager, RoleCoordinator, RoleDesk, RoleVolunteer}

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return slices.Contains(Roles, r) }

// User is a member of the event team. Users are seeded at startup and never
// deleted during a session.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	IsActive   bool      `json:"is_active"`
	LastActive time.Time `json:"last_active"`
}
