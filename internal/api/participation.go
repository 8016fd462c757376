package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/20mouhcine/jobgate-client/internal/api/apierror"
	"github.com/20mouhcine/jobgate-client/internal/api/request"
	"github.com/20mouhcine/jobgate-client/internal/domain"
)

func (c *Client) Participations(ctx context.Context) ([]domain.Participation, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("participations"), nil, "")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("c.Participations -> %w", err)
	}
	defer resp.Body.Close()

	participations := make([]domain.Participation, 0)
	if err := c.decodeJSONResponse(resp, &participations); err != nil {
		return nil, err
	}

	return participations, nil
}

func (c *Client) ParticipationDetails(ctx context.Context, eventID, talentID uint) (domain.Participation, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.detailsURL(eventID, talentID), nil, "")
	if err != nil {
		return domain.Participation{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Participation{}, fmt.Errorf("c.ParticipationDetails -> %w", err)
	}
	defer resp.Body.Close()

	var participation domain.Participation
	if err := c.decodeJSONResponse(resp, &participation); err != nil {
		return domain.Participation{}, err
	}

	return participation, nil
}

// UpdateParticipationDetails PUTs the full evaluation and returns the
// server's echo of it.
func (c *Client) UpdateParticipationDetails(ctx context.Context, eventID, talentID uint, eval domain.Evaluation) (domain.Evaluation, error) {
	payload := request.EvaluationUpdate{Evaluation: eval}
	if err := payload.Validate(); err != nil {
		return domain.Evaluation{}, apierror.New(apierror.KindValidation, err.Error(), err)
	}

	req, err := c.newJSONRequest(ctx, http.MethodPut, c.detailsURL(eventID, talentID), payload)
	if err != nil {
		return domain.Evaluation{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Evaluation{}, fmt.Errorf("c.UpdateParticipationDetails -> %w", err)
	}
	defer resp.Body.Close()

	var updated domain.Participation
	if err := c.decodeJSONResponse(resp, &updated); err != nil {
		return domain.Evaluation{}, err
	}

	return domain.EvaluationOf(updated), nil
}

// RegisterTalent submits an event registration. With ResumeImport the
// payload is multipart and resume must be non-nil; with ResumeKeep the
// payload is JSON asking the server to attach the resume on file.
func (c *Client) RegisterTalent(ctx context.Context, payload request.RegistrationRequest, resume io.Reader) error {
	if err := payload.Validate(); err != nil {
		return apierror.New(apierror.KindValidation, err.Error(), err)
	}

	var req *http.Request
	var err error

	switch payload.ResumeMode {
	case request.ResumeImport:
		fields := map[string]string{
			"event_id":   strconv.FormatUint(uint64(payload.EventID), 10),
			"first_name": payload.FirstName,
			"last_name":  payload.LastName,
			"email":      payload.Email,
			"phone":      payload.Phone,
		}
		body, contentType, merr := multipartBody(fields, "resume", payload.ResumeFilename, resume)
		if merr != nil {
			return merr
		}
		req, err = c.newRequest(ctx, http.MethodPost, c.apipath("talents"), body, contentType)
	default:
		body := struct {
			request.RegistrationRequest
			KeepExistingResume bool `json:"keep_existing_resume"`
		}{RegistrationRequest: payload, KeepExistingResume: true}
		req, err = c.newJSONRequest(ctx, http.MethodPost, c.apipath("talents"), body)
	}
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("c.RegisterTalent -> %w", err)
	}
	defer resp.Body.Close()

	return c.discardResponse(resp)
}

func (c *Client) detailsURL(eventID, talentID uint) string {
	query := url.Values{}
	query.Set("event_id", strconv.FormatUint(uint64(eventID), 10))
	query.Set("talent_id", strconv.FormatUint(uint64(talentID), 10))

	return c.apipath("participations-details") + "?" + query.Encode()
}
