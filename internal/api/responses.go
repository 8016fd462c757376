package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/20mouhcine/jobgate-client/internal/api/apierror"
)

// decodeJSONResponse maps resp to the error taxonomy and, on success,
// decodes the body into v. Decode failures on a 2xx are Transient: a
// payload the client cannot read is as useless as no payload.
func (c *Client) decodeJSONResponse(resp *http.Response, v interface{}) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return apierror.New(apierror.KindTransient,
				fmt.Sprintf("malformed response (status code = %d)", resp.StatusCode), err)
		}

		return nil
	}

	return c.errorFromResponse(resp)
}

// discardResponse maps resp to the error taxonomy, ignoring any success
// payload.
func (c *Client) discardResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil
	}

	return c.errorFromResponse(resp)
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	apiErr := apierror.FromStatus(resp.StatusCode, serverMessage(resp.Body))

	if apiErr.Kind == apierror.KindUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	zap.L().Debug("api call failed",
		zap.Int("status", resp.StatusCode),
		zap.String("kind", apiErr.Kind.String()),
		zap.String("url", resp.Request.URL.Path),
	)

	return apiErr
}

// serverMessage pulls the human-readable detail out of an error body.
// The API answers either {"detail": "..."} or {"message": "..."}.
func serverMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64*1024))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}

	return payload.Message
}
