package server

import (
	"net/http"

	"github.com/jrsteele09/bursary-portal/auth"
	"github.com/jrsteele09/bursary-portal/guard"
	"github.com/jrsteele09/bursary-portal/session"
	"github.com/rs/zerolog/log"
)

// HydrateMiddleware starts the page session: it binds the browser's storage,
// hydrates a fresh auth.Context from it and attaches it to the request.
func (s *Server) HydrateMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := session.NewStore(s.storage.For(w, r))
		ac := auth.New(store, auth.WithClock(s.now))
		ac.Hydrate(r.Context())

		next(w, r.WithContext(auth.NewContext(r.Context(), ac)))
	}
}

// RequireMiddleware applies the route guard for req. Must run after HydrateMiddleware.
func (s *Server) RequireMiddleware(req guard.Requirement) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ac, err := auth.FromContext(r.Context())
			if err != nil {
				log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("route guard without auth context")
				http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
				return
			}

			if req != guard.None && ac.IsAuthenticated() {
				ac.ValidateToken(r.Context())
			}

			decision := guard.Decide(ac.State(), req)
			switch decision.Action {
			case guard.Render:
				next(w, r)
			case guard.Redirect:
				log.Ctx(r.Context()).Debug().
					Str("path", r.URL.Path).
					Stringer("requirement", req).
					Str("target", decision.Target).
					Msg("route guard redirect")
				redirectSuccess(w, r, decision.Target)
			case guard.Wait:
				w.Header().Set("Retry-After", "1")
				http.Error(w, "503 - Loading", http.StatusServiceUnavailable)
			default:
				http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			}
		}
	}
}

// authContext returns the page session's auth.Context. Handlers are only
// registered behind HydrateMiddleware, so a missing context is a wiring bug.
func authContext(r *http.Request) *auth.Context {
	ac, err := auth.FromContext(r.Context())
	if err != nil {
		panic(err)
	}
	return ac
}
