package domain

import "time"

// Event is a recruitment event. Description carries rich-text HTML as
// served by the API; the client renders it opaquely.
type Event struct {
	ID                uint      `json:"id"`
	Title             string    `json:"title"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	Location          string    `json:"location"`
	Description       string    `json:"description"`
	IsTimeSlotEnabled bool      `json:"is_timeSlot_enabled"`
}

type TimeSlot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}
