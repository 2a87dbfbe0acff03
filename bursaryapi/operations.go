package bursaryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/bursary-portal/users"
)

type loginResponse struct {
	Message     string          `json:"message"`
	AccessToken string          `json:"access_token"`
	UserData    json.RawMessage `json:"user_data"`
}

// Login exchanges credentials for an access token and the user snapshot to cache.
func (c *Client) Login(ctx context.Context, email, password string) (users.Snapshot, string, error) {
	req, err := jsonRequest(http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return users.Snapshot{}, "", err
	}

	var resp loginResponse
	if err := c.do(ctx, req, &resp); err != nil {
		return users.Snapshot{}, "", err
	}
	if resp.AccessToken == "" {
		return users.Snapshot{}, "", fmt.Errorf("[bursaryapi Login] response has no access token")
	}

	var user users.Snapshot
	if err := json.Unmarshal(resp.UserData, &user); err != nil {
		return users.Snapshot{}, "", fmt.Errorf("[bursaryapi Login] decode user_data: %w", err)
	}
	return user, resp.AccessToken, nil
}

func (c *Client) Register(ctx context.Context, reg users.Registration) error {
	req, err := jsonRequest(http.MethodPost, "/register", "", reg)
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}

func (c *Client) CurrentUser(ctx context.Context, token string) (Profile, error) {
	var p Profile
	err := c.do(ctx, request{method: http.MethodGet, path: "/auth/user", token: token}, &p)
	return p, err
}

// ApplicationStatus returns the status and history for an admission number. The
// API only answers for the token's own admission number.
func (c *Client) ApplicationStatus(ctx context.Context, token, admissionNumber string) (StatusReport, error) {
	var report StatusReport
	path := "/get-bursary-status/" + url.PathEscape(admissionNumber)
	if err := c.do(ctx, request{method: http.MethodGet, path: path, token: token}, &report); err != nil {
		return StatusReport{}, err
	}

	st, err := ParseApplicationStatus(string(report.Status))
	if err != nil {
		return StatusReport{}, fmt.Errorf("[bursaryapi ApplicationStatus] %w", err)
	}
	report.Status = st
	return report, nil
}

// Apply starts an application for the signed-in applicant.
func (c *Client) Apply(ctx context.Context, token string) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/bursary/apply", token: token}, nil)
}

// SubmitApplication sends the full application form with its optional documents.
func (c *Client) SubmitApplication(ctx context.Context, token string, form ApplicationForm) (Applicant, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, kv := range form.fields() {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return Applicant{}, fmt.Errorf("[bursaryapi SubmitApplication] write %s: %w", kv[0], err)
		}
	}
	for _, f := range []struct {
		field string
		up    *Upload
	}{
		{"idDocument", form.IDDocument},
		{"birthCertificate", form.BirthCertificate},
	} {
		field, up := f.field, f.up
		if up == nil || up.Content == nil {
			continue
		}
		part, err := mw.CreateFormFile(field, up.Filename)
		if err != nil {
			return Applicant{}, fmt.Errorf("[bursaryapi SubmitApplication] create %s: %w", field, err)
		}
		if _, err := io.Copy(part, up.Content); err != nil {
			return Applicant{}, fmt.Errorf("[bursaryapi SubmitApplication] copy %s: %w", field, err)
		}
	}
	if err := mw.Close(); err != nil {
		return Applicant{}, fmt.Errorf("[bursaryapi SubmitApplication] close form: %w", err)
	}

	var applicant Applicant
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/apply",
		token:       token,
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}, &applicant)
	return applicant, err
}

func (c *Client) ListApplicants(ctx context.Context, token string) ([]Applicant, error) {
	var applicants []Applicant
	if err := c.do(ctx, request{method: http.MethodGet, path: "/applicants", token: token}, &applicants); err != nil {
		return nil, err
	}
	return applicants, nil
}

func (c *Client) UpdateApplicantStatus(ctx context.Context, token string, id int, status ApplicationStatus) (Applicant, error) {
	req, err := jsonRequest(http.MethodPut, "/applicants/"+strconv.Itoa(id), token, map[string]string{"status": string(status)})
	if err != nil {
		return Applicant{}, err
	}
	var applicant Applicant
	err = c.do(ctx, req, &applicant)
	return applicant, err
}

func (c *Client) DeleteApplicant(ctx context.Context, token string, id int) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/applicants/" + strconv.Itoa(id), token: token}, nil)
}
