package domain

import "time"

// NoteUnrated is the server-side zero value of a participation note.
// User-facing rating controls only accept 1..5.
const NoteUnrated = 0

// Participation joins a talent to an event.
type Participation struct {
	ID              uint       `json:"id"`
	Talent          Identity   `json:"talent"`
	HasAttended     bool       `json:"has_attended"`
	DateInscription time.Time  `json:"date_inscription"`
	Note            int        `json:"note"`
	Comment         string     `json:"comment"`
	Rdv             *time.Time `json:"rdv"`
	IsSelected      bool       `json:"is_selected"`
	EventTimeSlot   *TimeSlot  `json:"event_time_slot"`
}

// Evaluation is the recruiter-mutable subset of a participation.
type Evaluation struct {
	Note        int    `json:"note"`
	Comment     string `json:"comment"`
	HasAttended bool   `json:"has_attended"`
	IsSelected  bool   `json:"is_selected"`
}

func (e Evaluation) Equal(other Evaluation) bool {
	return e == other
}

// EvaluationOf extracts the mutable fields of a participation.
func EvaluationOf(p Participation) Evaluation {
	return Evaluation{
		Note:        p.Note,
		Comment:     p.Comment,
		HasAttended: p.HasAttended,
		IsSelected:  p.IsSelected,
	}
}

func ValidNote(note int) bool {
	return note >= 0 && note <= 5
}
