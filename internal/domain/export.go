package domain

import "time"

// ExportRow is a single row in the audit export.
// It is a flat, denormalized view of one Update with the entity's current
// display name resolved, so spreadsheets need no lookups.
type ExportRow struct {
	UpdateID   string
	Timestamp  time.Time
	UpdateType UpdateType

	// Entity fields. EntityName is empty when the entity no longer resolves.
	EntityType EntityType
	EntityID   string
	EntityName string

	OldValue string // empty when the record has no old value
	NewValue string

	// Actor fields, copied from the record.
	UpdatedBy     string
	UpdatedByName string
	UpdatedByRole Role
}
