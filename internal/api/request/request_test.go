package request_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/20mouhcine/jobgate-client/internal/api/request"
	"github.com/20mouhcine/jobgate-client/internal/domain"
)

func TestLoginRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		req     request.LoginRequest
		wantErr bool
	}{
		{"valid", request.LoginRequest{Email: "a@b.com", Password: "pw"}, false},
		{"missing email", request.LoginRequest{Password: "pw"}, true},
		{"bad email", request.LoginRequest{Email: "not-an-email", Password: "pw"}, true},
		{"missing password", request.LoginRequest{Email: "a@b.com"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSignupRequestValidate(t *testing.T) {
	valid := func() request.SignupRequest {
		return request.SignupRequest{
			Email:           "sara@example.com",
			Password:        "passw0rd1",
			ConfirmPassword: "passw0rd1",
			FirstName:       "Sara",
			LastName:        "El Amrani",
			Role:            domain.RoleTalent,
		}
	}

	t.Run("valid talent", func(t *testing.T) {
		req := valid()
		assert.NoError(t, req.Validate())
	})

	t.Run("password needs a letter and a number", func(t *testing.T) {
		req := valid()
		req.Password = "lettersonly"
		req.ConfirmPassword = "lettersonly"
		assert.Error(t, req.Validate())

		req.Password = "12345678"
		req.ConfirmPassword = "12345678"
		assert.Error(t, req.Validate())

		req.Password = "short1"
		req.ConfirmPassword = "short1"
		assert.Error(t, req.Validate())
	})

	t.Run("confirmation must match", func(t *testing.T) {
		req := valid()
		req.ConfirmPassword = "passw0rd2"
		assert.Error(t, req.Validate())
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		req := valid()
		req.Role = "admin"
		assert.Error(t, req.Validate())
	})

	t.Run("recruiter needs a company name", func(t *testing.T) {
		req := valid()
		req.Role = domain.RoleRecruiter
		assert.Error(t, req.Validate())

		req.CompanyName = "Corp"
		assert.NoError(t, req.Validate())
	})
}

func TestRegistrationRequestValidate(t *testing.T) {
	valid := func() request.RegistrationRequest {
		return request.RegistrationRequest{
			EventID:        5,
			FirstName:      "Sara",
			LastName:       "El Amrani",
			Email:          "sara@example.com",
			Phone:          "+212612345678",
			ResumeMode:     request.ResumeImport,
			ResumeFilename: "cv.pdf",
		}
	}

	t.Run("valid import", func(t *testing.T) {
		req := valid()
		assert.NoError(t, req.Validate())
	})

	t.Run("keep needs no file", func(t *testing.T) {
		req := valid()
		req.ResumeMode = request.ResumeKeep
		req.ResumeFilename = ""
		assert.NoError(t, req.Validate())
	})

	t.Run("import without a file is rejected", func(t *testing.T) {
		req := valid()
		req.ResumeFilename = ""
		assert.Error(t, req.Validate())
	})

	t.Run("a resume mode must be chosen", func(t *testing.T) {
		req := valid()
		req.ResumeMode = ""
		assert.Error(t, req.Validate())
	})

	t.Run("every contact field is required", func(t *testing.T) {
		for _, mutate := range []func(*request.RegistrationRequest){
			func(r *request.RegistrationRequest) { r.EventID = 0 },
			func(r *request.RegistrationRequest) { r.FirstName = "" },
			func(r *request.RegistrationRequest) { r.LastName = "" },
			func(r *request.RegistrationRequest) { r.Email = "nope" },
			func(r *request.RegistrationRequest) { r.Phone = "not a phone" },
		} {
			req := valid()
			mutate(&req)
			assert.Error(t, req.Validate())
		}
	})
}

func TestCreateEventRequestValidate(t *testing.T) {
	start := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		req := request.CreateEventRequest{
			Title:     "Spring Career Fair",
			StartDate: start,
			EndDate:   start.Add(8 * time.Hour),
			Location:  "Casablanca",
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		req := request.CreateEventRequest{
			Title:     "Spring Career Fair",
			StartDate: start,
			EndDate:   start.Add(-time.Hour),
			Location:  "Casablanca",
		}
		assert.Error(t, req.Validate())
	})
}

func TestEvaluationUpdateValidate(t *testing.T) {
	t.Run("note within 0..5 passes", func(t *testing.T) {
		for note := 0; note <= 5; note++ {
			req := request.EvaluationUpdate{Evaluation: domain.Evaluation{Note: note}}
			assert.NoError(t, req.Validate())
		}
	})

	t.Run("note outside the scale is rejected", func(t *testing.T) {
		req := request.EvaluationUpdate{Evaluation: domain.Evaluation{Note: 6}}
		assert.Error(t, req.Validate())

		req = request.EvaluationUpdate{Evaluation: domain.Evaluation{Note: -1}}
		assert.Error(t, req.Validate())
	})
}
