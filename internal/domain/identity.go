package domain

import "strings"

const (
	RoleTalent    = "talent"
	RoleRecruiter = "recruiter"
)

// Identity is the authenticated user as returned by auth/profile/ and
// auth/login/. Role-specific fields are empty for the other role.
type Identity struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	Phone     string `json:"phone,omitempty"`

	// Talent only.
	Etablissement string `json:"etablissement,omitempty"`
	Filiere       string `json:"filiere,omitempty"`

	// Recruiter only.
	CompanyName string `json:"company_name,omitempty"`
}

func (i Identity) FullName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

func (i Identity) IsRecruiter() bool {
	return i.Role == RoleRecruiter
}

func (i Identity) IsTalent() bool {
	return i.Role == RoleTalent
}
