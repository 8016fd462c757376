package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/20mouhcine/jobgate-client/internal/domain"
)

const (
	// Lookaheads require regexp2; the stdlib engine rejects them.
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`
)

var (
	passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

	errInvalidPassword         = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")
	errMissingCompanyName      = errors.New("company name is required for recruiter signup")
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Password, validation.Required),
	)
}

type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Role            string `json:"role"`
	Phone           string `json:"phone,omitempty"`

	// Talent only.
	Etablissement string `json:"etablissement,omitempty"`
	Filiere       string `json:"filiere,omitempty"`

	// Recruiter only.
	CompanyName string `json:"company_name,omitempty"`
}

func (req *SignupRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.ConfirmPassword, validation.Required),
		validation.Field(&req.FirstName, validation.Required),
		validation.Field(&req.LastName, validation.Required),
		validation.Field(&req.Role, validation.Required, validation.In(domain.RoleTalent, domain.RoleRecruiter)),
	)
	if err != nil {
		return err
	}

	if ok, _ := passwordExp.MatchString(req.Password); !ok {
		return errInvalidPassword
	}

	if req.Password != req.ConfirmPassword {
		return errConfirmPasswordMismatch
	}

	if req.Role == domain.RoleRecruiter && req.CompanyName == "" {
		return errMissingCompanyName
	}

	return nil
}

type ProfileUpdateRequest struct {
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Etablissement string `json:"etablissement,omitempty"`
	Filiere       string `json:"filiere,omitempty"`
	CompanyName   string `json:"company_name,omitempty"`
}

func (req *ProfileUpdateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.Length(0, 100)),
		validation.Field(&req.LastName, validation.Length(0, 100)),
	)
}
