package domain

// EventStatistics is the aggregate view served by events/{id}/statistics/.
// A zero value is the documented fallback when the fetch fails.
type EventStatistics struct {
	RegisteredCount int     `json:"registered_count"`
	AttendedCount   int     `json:"attended_count"`
	SelectedCount   int     `json:"selected_count"`
	AverageNote     float64 `json:"average_note"`
	SlotsBooked     int     `json:"slots_booked"`
}
