package domain

// DashboardSummary is the at-a-glance view shown on the landing page.
// Guest counts are scoped to the viewer: volunteers only see guests they are
// assigned to. Bed counts always cover every dorm.
type DashboardSummary struct {
	TotalGuests     int     `json:"total_guests"`
	CheckedInGuests int     `json:"checked_in_guests"`
	PendingGuests   int     `json:"pending_guests"`
	TotalBeds       int     `json:"total_beds"`
	OccupiedBeds    int     `json:"occupied_beds"`
	RecentGuests    []Guest `json:"recent_guests"`
	AvailableDorms  []Dorm  `json:"available_dorms"`
}
