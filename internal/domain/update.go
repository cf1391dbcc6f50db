package domain

import "time"

// UpdateType is the closed set of audit record kinds.
type UpdateType string

const (
	UpdateGuestStatus         UpdateType = "Guest Status"
	UpdateGuestLocation       UpdateType = "Guest Location"
	UpdateDormAssignment      UpdateType = "Dorm Assignment"
	UpdateVolunteerAssignment UpdateType = "Volunteer Assignment"
	UpdatePayment             UpdateType = "Payment Update"
	UpdateCheckIn             UpdateType = "Check In"
	UpdateCheckOut            UpdateType = "Check Out"
	UpdateGuestAdded          UpdateType = "Guest Added"
	UpdateGuestEdited         UpdateType = "Guest Edited"
	UpdateDormAdded           UpdateType = "Dorm Added"
	UpdateDormEdited          UpdateType = "Dorm Edited"
)

// EntityType names the kind of entity an audit record refers to.
type EntityType string

const (
	EntityGuest EntityType = "Guest"
	EntityDorm  EntityType = "Dorm"
)

// Entity is implemented by Guest and Dorm, the two auditable domain objects.
type Entity interface {
	EntityType() EntityType
	EntityID() string
}

// Update is an immutable audit record describing one change.
// OldValue and NewValue are display strings, not raw field values.
// The actor's name and role are copied in so the log renders without a join.
type Update struct {
	ID            string     `json:"id"`
	Timestamp     time.Time  `json:"timestamp"`
	UpdateType    UpdateType `json:"update_type"`
	EntityID      string     `json:"entity_id"`
	EntityType    EntityType `json:"entity_type"`
	OldValue      *string    `json:"old_value,omitempty"`
	NewValue      string     `json:"new_value"`
	UpdatedBy     string     `json:"updated_by"`
	UpdatedByName string     `json:"updated_by_name"`
	UpdatedByRole Role       `json:"updated_by_role"`
}
