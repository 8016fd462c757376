package request

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ResumeMode selects how the resume reaches the server on registration.
type ResumeMode string

const (
	// ResumeKeep asks the server to attach the resume already on file.
	ResumeKeep ResumeMode = "keep"
	// ResumeImport uploads a new file as a multipart part.
	ResumeImport ResumeMode = "import"
)

var (
	phoneExp = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

	errMissingResumeFile = errors.New("a resume file is required")
	errInvalidResumeMode = errors.New("invalid resume mode")
)

// RegistrationRequest is the talents/ payload. Anonymous visitors fill
// the whole form and import a file; an authenticated talent may keep the
// resume on file instead.
type RegistrationRequest struct {
	EventID   uint   `json:"event_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	ResumeMode     ResumeMode `json:"resume_mode"`
	ResumeFilename string     `json:"-"`
}

func (req *RegistrationRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.FirstName, validation.Required),
		validation.Field(&req.LastName, validation.Required),
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Phone, validation.Required, validation.Match(phoneExp)),
	)
	if err != nil {
		return err
	}

	switch req.ResumeMode {
	case ResumeKeep:
		// Nothing to upload.
	case ResumeImport:
		if req.ResumeFilename == "" {
			return errMissingResumeFile
		}
	default:
		return errInvalidResumeMode
	}

	return nil
}
