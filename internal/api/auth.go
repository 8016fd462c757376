package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/20mouhcine/jobgate-client/internal/api/apierror"
	"github.com/20mouhcine/jobgate-client/internal/api/request"
	"github.com/20mouhcine/jobgate-client/internal/domain"
)

// LoginResult is the auth/login/ payload: the bearer credential plus
// the authenticated identity.
type LoginResult struct {
	AccessToken string          `json:"access"`
	Identity    domain.Identity `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	payload := request.LoginRequest{Email: email, Password: password}
	if err := payload.Validate(); err != nil {
		return LoginResult{}, apierror.New(apierror.KindValidation, err.Error(), err)
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, c.apipath("auth", "login"), payload)
	if err != nil {
		return LoginResult{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return LoginResult{}, fmt.Errorf("c.Login -> %w", err)
	}
	defer resp.Body.Close()

	var result LoginResult
	if err := c.decodeJSONResponse(resp, &result); err != nil {
		return LoginResult{}, err
	}

	// A success without both halves is unusable; treat it like a
	// malformed response.
	if result.AccessToken == "" || result.Identity.ID == 0 {
		return LoginResult{}, apierror.New(apierror.KindTransient, "login response is missing token or user", nil)
	}

	return result, nil
}

func (c *Client) Signup(ctx context.Context, payload request.SignupRequest) (domain.Identity, error) {
	if err := payload.Validate(); err != nil {
		return domain.Identity{}, apierror.New(apierror.KindValidation, err.Error(), err)
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, c.apipath("auth", "register"), payload)
	if err != nil {
		return domain.Identity{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("c.Signup -> %w", err)
	}
	defer resp.Body.Close()

	var identity domain.Identity
	if err := c.decodeJSONResponse(resp, &identity); err != nil {
		return domain.Identity{}, err
	}

	return identity, nil
}

func (c *Client) Profile(ctx context.Context) (domain.Identity, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("auth", "profile"), nil, "")
	if err != nil {
		return domain.Identity{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("c.Profile -> %w", err)
	}
	defer resp.Body.Close()

	var identity domain.Identity
	if err := c.decodeJSONResponse(resp, &identity); err != nil {
		return domain.Identity{}, err
	}

	return identity, nil
}

func (c *Client) UpdateProfile(ctx context.Context, payload request.ProfileUpdateRequest) (domain.Identity, error) {
	if err := payload.Validate(); err != nil {
		return domain.Identity{}, apierror.New(apierror.KindValidation, err.Error(), err)
	}

	req, err := c.newJSONRequest(ctx, http.MethodPut, c.apipath("auth", "profile"), payload)
	if err != nil {
		return domain.Identity{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("c.UpdateProfile -> %w", err)
	}
	defer resp.Body.Close()

	var identity domain.Identity
	if err := c.decodeJSONResponse(resp, &identity); err != nil {
		return domain.Identity{}, err
	}

	return identity, nil
}

// UploadAvatar posts the avatar image as a multipart body.
func (c *Client) UploadAvatar(ctx context.Context, filename string, content io.Reader) (domain.Identity, error) {
	body, contentType, err := multipartBody(nil, "avatar", filename, content)
	if err != nil {
		return domain.Identity{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.apipath("auth", "profile", "avatar"), body, contentType)
	if err != nil {
		return domain.Identity{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("c.UploadAvatar -> %w", err)
	}
	defer resp.Body.Close()

	var identity domain.Identity
	if err := c.decodeJSONResponse(resp, &identity); err != nil {
		return domain.Identity{}, err
	}

	return identity, nil
}

// multipartBody assembles fields plus one file part into a multipart
// payload and returns its content type.
func multipartBody(fields map[string]string, fileField, filename string, content io.Reader) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("api.multipartBody -> w.WriteField -> %w", err)
		}
	}

	if fileField != "" {
		part, err := w.CreateFormFile(fileField, filename)
		if err != nil {
			return nil, "", fmt.Errorf("api.multipartBody -> w.CreateFormFile -> %w", err)
		}
		if _, err := io.Copy(part, content); err != nil {
			return nil, "", fmt.Errorf("api.multipartBody -> io.Copy -> %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("api.multipartBody -> w.Close -> %w", err)
	}

	return buf, w.FormDataContentType(), nil
}
