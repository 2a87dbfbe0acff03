package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// IndexHandler renders the home page
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ac := authContext(r)
		s.render(w, r, view{
			Template: "index.html",
			Title:    "Home",
			Data: map[string]any{
				"IsAuthenticated": ac.IsAuthenticated(),
				"IsAdmin":         ac.User().IsAdmin(),
			},
		})
	}
}

func (s *Server) AboutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, view{Template: "about.html", Title: "About Us"})
	}
}

// AchievementsHandler lists the programme highlights.
func (s *Server) AchievementsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.achievements.List()
		if err != nil {
			log.Ctx(r.Context()).Err(err).Msg("listing achievements failed")
		}
		s.render(w, r, view{
			Template: "achievements.html",
			Title:    "Key Achievements",
			Data:     map[string]any{"Achievements": list},
		})
	}
}
