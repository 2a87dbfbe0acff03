package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jrsteele09/bursary-portal/achievements"
	"github.com/jrsteele09/bursary-portal/bursaryapi"
	"github.com/rs/zerolog/log"
)

// ApplicantRow is one line of the admin applicants table.
type ApplicantRow struct {
	bursaryapi.Applicant
	Status      bursaryapi.ApplicationStatus
	StatusLabel string
}

type AdminDashboardData struct {
	Applicants []ApplicantRow
	Counts     map[bursaryapi.ApplicationStatus]int
	Total      int
	Statuses   []bursaryapi.ApplicationStatus
}

func applicantRow(a bursaryapi.Applicant) ApplicantRow {
	st, err := bursaryapi.ParseApplicationStatus(a.Status)
	if err != nil {
		return ApplicantRow{Applicant: a, Status: bursaryapi.ApplicationStatus(a.Status), StatusLabel: a.Status}
	}
	return ApplicantRow{Applicant: a, Status: st, StatusLabel: st.Label()}
}

// AdminDashboardHandler lists every application with counts per status.
func (s *Server) AdminDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ac := authContext(r)
		token, _ := ac.Token()

		data := AdminDashboardData{
			Counts:   make(map[bursaryapi.ApplicationStatus]int),
			Statuses: []bursaryapi.ApplicationStatus{bursaryapi.StatusPending, bursaryapi.StatusApproved, bursaryapi.StatusRejected},
		}

		var problem string
		list, err := s.api.ListApplicants(r.Context(), token)
		switch {
		case handleRemoteUnauthorized(w, r, ac, err):
			return
		case err != nil:
			log.Ctx(r.Context()).Warn().Err(err).Msg("listing applicants failed")
			problem = apiErrorMessage(err)
		}

		for _, a := range list {
			row := applicantRow(a)
			data.Applicants = append(data.Applicants, row)
			data.Counts[row.Status]++
		}
		data.Total = len(data.Applicants)

		s.render(w, r, view{
			Template: "admin_dashboard.html",
			Title:    "Admin Dashboard",
			Error:    problem,
			Data:     data,
		})
	}
}

func applicantID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	return id, err == nil && id > 0
}

// AdminApplicantStatusHandler sets an application's status.
func (s *Server) AdminApplicantStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := applicantID(r)
		if !ok {
			http.Error(w, "Invalid applicant id", http.StatusBadRequest)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		status, err := bursaryapi.ParseApplicationStatus(r.FormValue("status"))
		if err != nil || status == bursaryapi.StatusNotApplied {
			redirectWithError(w, r, RouteAdminDashboard, "Choose pending, approved or rejected")
			return
		}

		ac := authContext(r)
		token, _ := ac.Token()
		_, err = s.api.UpdateApplicantStatus(r.Context(), token, id, status)
		if handleRemoteUnauthorized(w, r, ac, err) {
			return
		}
		if err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Int("applicant", id).Msg("updating applicant status failed")
			redirectWithError(w, r, RouteAdminDashboard, apiErrorMessage(err))
			return
		}
		redirectSuccess(w, r, RouteAdminDashboard+"?notice="+url.QueryEscape("Application status set to "+status.Label()))
	}
}

// AdminApplicantDeleteHandler removes an application.
func (s *Server) AdminApplicantDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := applicantID(r)
		if !ok {
			http.Error(w, "Invalid applicant id", http.StatusBadRequest)
			return
		}

		ac := authContext(r)
		token, _ := ac.Token()
		err := s.api.DeleteApplicant(r.Context(), token, id)
		if handleRemoteUnauthorized(w, r, ac, err) {
			return
		}
		if err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Int("applicant", id).Msg("deleting applicant failed")
			redirectWithError(w, r, RouteAdminDashboard, apiErrorMessage(err))
			return
		}
		redirectSuccess(w, r, RouteAdminDashboard+"?notice="+url.QueryEscape("Applicant deleted"))
	}
}

type AdminAchievementsData struct {
	Achievements []achievements.Achievement
	Form         achievements.Achievement
}

// AdminAchievementsHandler lists achievements with add and delete controls.
func (s *Server) AdminAchievementsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderAdminAchievements(w, r, http.StatusOK, "", achievements.Achievement{})
	}
}

func (s *Server) renderAdminAchievements(w http.ResponseWriter, r *http.Request, status int, problem string, form achievements.Achievement) {
	list, err := s.achievements.List()
	if err != nil {
		log.Ctx(r.Context()).Err(err).Msg("listing achievements failed")
	}
	s.render(w, r, view{
		Template: "admin_achievements.html",
		Title:    "Manage Achievements",
		Status:   status,
		Error:    problem,
		Data:     AdminAchievementsData{Achievements: list, Form: form},
	})
}

func (s *Server) AdminAchievementCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		year, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("year")))
		a := achievements.Achievement{
			Title:       strings.TrimSpace(r.FormValue("title")),
			Year:        year,
			Description: strings.TrimSpace(r.FormValue("description")),
		}
		if _, err := s.achievements.Add(a); err != nil {
			s.renderAdminAchievements(w, r, http.StatusUnprocessableEntity, err.Error(), a)
			return
		}
		redirectSuccess(w, r, RouteAdminAchievements+"?notice="+url.QueryEscape("Achievement added"))
	}
}

func (s *Server) AdminAchievementDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.achievements.Delete(r.PathValue("id")); err != nil {
			redirectWithError(w, r, RouteAdminAchievements, err.Error())
			return
		}
		redirectSuccess(w, r, RouteAdminAchievements+"?notice="+url.QueryEscape("Achievement removed"))
	}
}
