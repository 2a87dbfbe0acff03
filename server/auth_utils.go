package server

import (
	"net/http"
	"net/url"

	"github.com/jrsteele09/bursary-portal/auth"
	"github.com/jrsteele09/bursary-portal/bursaryapi"
	perrors "github.com/jrsteele09/bursary-portal/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"
)

// redirectSuccess helper for htmx-aware redirects. The target replaces the
// current page in history.
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError helper for htmx-aware error redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	redirectSuccess(w, r, path+"?error="+url.QueryEscape(errorMsg))
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// handleRemoteUnauthorized logs the user out and sends them to the login page
// when the API rejected their token. It reports whether it wrote a response.
func handleRemoteUnauthorized(w http.ResponseWriter, r *http.Request, ac *auth.Context, err error) bool {
	if !perrors.Is(err, bursaryapi.ErrUnauthorized) {
		return false
	}
	log.Ctx(r.Context()).Info().Str("path", r.URL.Path).Msg("api rejected token, logging out")
	ac.Logout(r.Context())
	redirectWithError(w, r, RouteLogin, "Your session has expired, please log in again")
	return true
}

// apiErrorMessage turns an API error into text fit for the page.
func apiErrorMessage(err error) string {
	var apiErr *bursaryapi.APIError
	switch {
	case perrors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case perrors.Is(err, bursaryapi.ErrForbidden):
		return "You are not allowed to do that"
	case perrors.Is(err, bursaryapi.ErrUnavailable):
		return "The bursary service is unavailable, please try again later"
	default:
		return "Something went wrong, please try again"
	}
}
