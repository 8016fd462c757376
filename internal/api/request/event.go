package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/20mouhcine/jobgate-client/internal/domain"
)

type CreateEventRequest struct {
	Title             string    `json:"title"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	Location          string    `json:"location"`
	Description       string    `json:"description"`
	IsTimeSlotEnabled bool      `json:"is_timeSlot_enabled"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required, validation.By(func(interface{}) error {
			if req.EndDate.Before(req.StartDate) {
				return validation.NewError("end_before_start", "end date is before start date")
			}
			return nil
		})),
		validation.Field(&req.Location, validation.Required),
	)
}

type CreateTimeSlotRequest struct {
	EventID   uint      `json:"event_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func (req *CreateTimeSlotRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.StartTime, validation.Required),
		validation.Field(&req.EndTime, validation.Required),
	)
}

// EvaluationUpdate guards the participations-details PUT payload.
type EvaluationUpdate struct {
	domain.Evaluation
}

func (req *EvaluationUpdate) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Note, validation.Min(0), validation.Max(5)),
		validation.Field(&req.Comment, validation.Length(0, 2000)),
	)
}
